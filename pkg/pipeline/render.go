package pipeline

import (
	"fmt"

	"github.com/matzehuels/treezoom/pkg/render/nodelink"
	"github.com/matzehuels/treezoom/pkg/render/treemap/sink"
	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
	"github.com/matzehuels/treezoom/pkg/view"
)

// Render generates output artifacts in the requested formats from a settled
// session.
func Render(s *view.Session, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if !s.Loaded() {
		return nil, fmt.Errorf("render: session has no dataset")
	}

	frame := s.Frame()
	svgOpts, err := buildSVGOptions(s, opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(frame, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(frame,
				sink.WithJSONStyle(opts.Style),
				sink.WithJSONUnit(opts.Unit),
				sink.WithJSONPalette(s.Palette()))
		case FormatPNG:
			data, err = sink.RenderPNG(frame, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(frame, sink.WithPDFSVGOptions(svgOpts...))
		case FormatDOT:
			data = []byte(nodelink.ToDOT(s.State().Focus, nodelink.Options{
				Detailed: opts.Detailed,
				MaxDepth: opts.MaxDepth,
				Unit:     opts.Unit,
				Palette:  s.Palette(),
			}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(s *view.Session, opts Options) ([]sink.SVGOption, error) {
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithUnit(opts.Unit),
		sink.WithPalette(s.Palette()),
	}
	if opts.Header {
		svgOpts = append(svgOpts, sink.WithHeader())
	}
	return svgOpts, nil
}
