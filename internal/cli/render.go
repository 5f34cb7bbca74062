package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treezoom/pkg/pipeline"
)

// renderCommand creates the render command: load, zoom, render, write.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{Header: true}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render a treemap to SVG, JSON, PNG, PDF or DOT",
		Long: `Render a treemap of a hierarchical dataset.

The source is a local JSON file, an http(s) URL serving the same JSON, or a
MongoDB document (mongodb://host/db#collection/id). Use --focus to render the
view after drilling into a group, e.g. --focus "World/Europe".

Remote datasets and rendered artifacts are cached; local files are always
re-read.`,
		Example: `  treezoom render archive.json
  treezoom render archive.json --focus Sports -f svg,png
  treezoom render https://example.com/archive.json -f dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyRenderConfig(cmd, &opts, c.config.Render)
			opts.Source = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.Style); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf, dot (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-fetch remote datasets even if cached")
	cmd.Flags().StringVar(&opts.Focus, "focus", "", "slash-separated path of the group to zoom into")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include values in DOT labels")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "limit DOT output to this many levels below the focus (0 = all)")
	addRenderFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, c.out, "Rendering treemap...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %s as %s", opts.Source, strings.Join(opts.Formats, ", ")))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Source, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.Source)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.CellCount, result.CacheInfo.LoadHit || result.CacheInfo.RenderHit)
	printNextStep("Explore", appName+" explore "+opts.Source)
	return nil
}

// writeArtifacts writes one file per format and returns the paths in format
// order. A single format with an explicit output goes exactly there;
// otherwise output (or the source's base name) gets a ".<format>" suffix.
func writeArtifacts(artifacts map[string][]byte, formats []string, source, output string) ([]string, error) {
	base := output
	if len(formats) == 1 && output != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", output, err)
		}
		return []string{output}, nil
	}
	if base == "" {
		base = outputBase(source)
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		p := base + "." + f
		if err := os.WriteFile(p, artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// outputBase derives a file base name from a dataset location.
func outputBase(source string) string {
	if strings.Contains(source, "://") {
		name := source[strings.LastIndexAny(source, "/#")+1:]
		name = strings.TrimSuffix(name, filepath.Ext(name))
		if name == "" {
			return "treemap"
		}
		return name
	}
	name := filepath.Base(source)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
