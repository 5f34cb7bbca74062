package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treezoom/pkg/errors"
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/pipeline"
	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
)

// inspectCommand prints the children of a node with their values and shares.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		focus   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [source]",
		Short: "List the groups of a dataset with values and shares",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFocusPath(focus); err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), cmd.OutOrStdout(), args[0], focus, noCache)
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "slash-separated path of the node to list (default: root)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, w io.Writer, location, focus string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ds, cached, err := runner.LoadWithCacheInfo(ctx, pipeline.Options{Source: location, Logger: c.Logger})
	if err != nil {
		return err
	}
	root, err := hierarchy.Build(ds.Raw)
	if err != nil {
		return err
	}
	node, ok := root.Find(focus)
	if !ok {
		return errors.New(errors.ErrCodeFocusNotFound, "no node at path %q", focus)
	}

	palette := styles.NewOrdinal(styles.TolPalette)
	palette.Seed(root)

	title := root.Name
	if !node.IsRoot() {
		title += " / " + node.Path()
	}
	fmt.Fprintln(w, StyleTitle.Render(title)+" "+StyleDim.Render(styles.FormatValue(node.Value)))
	fmt.Fprintln(w, inspectTable(node, palette))
	fmt.Fprintln(w, "  "+statsLine(root.Count(), len(node.Children), cached))
	return nil
}

// inspectTable renders one row per child: color swatch, name, value, share of
// the parent and number of children.
func inspectTable(n *hierarchy.Node, palette *styles.Ordinal) string {
	rows := make([][]string, 0, len(n.Children))
	for _, child := range n.Children {
		share := 0.0
		if n.Value > 0 {
			share = 100 * child.Value / n.Value
		}
		rows = append(rows, []string{
			"██",
			child.Name,
			styles.FormatValue(child.Value),
			strconv.FormatFloat(share, 'f', 1, 64) + "%",
			strconv.Itoa(len(child.Children)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "Value", "Share", "Groups").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return cellStyle.Foreground(lipgloss.Color(palette.Color(styles.ColorKey(n.Children[row]))))
			case 2, 3, 4:
				return cellStyle.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return cellStyle
		}).
		Render()
}

