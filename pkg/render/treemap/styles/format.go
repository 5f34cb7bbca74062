package styles

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatValue renders v with thousands separators, e.g. 1234567 → "1,234,567".
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprint(number.Decimal(v))
}

// Tooltip returns the hover text for a node: its name and its value in unit.
func Tooltip(name string, value float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%s\n%s", name, FormatValue(value))
	}
	return fmt.Sprintf("%s\n%s %s", name, FormatValue(value), unit)
}
