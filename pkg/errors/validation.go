package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxCanvasSide bounds each canvas dimension accepted from user input.
const MaxCanvasSide = 16384

// ValidateFocusPath validates a slash-separated focus path such as
// "Arts/Music". The empty path denotes the root and is always valid.
//
// Validation rules:
//   - Maximum length of 1024 characters
//   - No control characters or null bytes
//   - No empty segments ("a//b", leading or trailing slash)
func ValidateFocusPath(path string) error {
	if path == "" {
		return nil
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "focus path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "focus path contains invalid characters")
		}
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			return New(ErrCodeInvalidPath, "focus path %q contains an empty segment", path)
		}
	}

	return nil
}

// ValidateCanvas checks that a canvas size is finite, positive and bounded.
func ValidateCanvas(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidSize, "canvas size must be positive, got %gx%g", width, height)
		}
		if v > MaxCanvasSide {
			return New(ErrCodeInvalidSize, "canvas side %g exceeds maximum %d", v, MaxCanvasSide)
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
