// Package pipeline provides the load → layout → render pipeline for treezoom.
//
// The CLI, the terminal explorer and the HTTP server all produce treemaps
// through this package, so defaults, validation and caching behave the same
// everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: fetch the dataset from a file, URL or MongoDB document
//  2. Layout: build the hierarchy, zoom to the requested focus and settle
//  3. Render: produce SVG, JSON, PNG, PDF or DOT output
//
// Each stage can be run on its own or as part of [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "data/nyt.json",
//	    Focus:   "World",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treezoom/pkg/cache"
	"github.com/matzehuels/treezoom/pkg/errors"
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/httputil"
	"github.com/matzehuels/treezoom/pkg/render/treemap/layout"
	"github.com/matzehuels/treezoom/pkg/render/treemap/sink"
	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
	"github.com/matzehuels/treezoom/pkg/view"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI, and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = float64(view.DefaultWidth)

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = float64(view.DefaultHeight)

	// DefaultDuration is the default zoom transition length.
	DefaultDuration = view.DefaultDuration

	// DefaultTitle is the breadcrumb title shown at the root.
	DefaultTitle = view.DefaultTitle

	// DefaultStyle is the default visual style.
	DefaultStyle = "tol"

	// DefaultUnit is the unit appended to tooltip values.
	DefaultUnit = "articles"

	// DefaultTiling is the default tiling algorithm.
	DefaultTiling = layout.TilingSquarify

	// DefaultScale is the PNG rasterization scale.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options
	Source  string `json:"source"`
	Refresh bool   `json:"refresh,omitempty"`

	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Focus  string  `json:"focus,omitempty"`
	Tiling string  `json:"tiling,omitempty"`
	Title  string  `json:"title,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Header   bool     `json:"header,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // DOT labels include values
	MaxDepth int      `json:"max_depth,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger      `json:"-"`
	HTTPClient *httputil.Client `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Root is the built hierarchy. Nil when every artifact came from cache.
	Root *hierarchy.Node

	// DatasetHash is the content hash of the raw dataset bytes.
	DatasetHash string

	// LayoutKey identifies the settled layout; artifact keys derive from it.
	LayoutKey string

	// Frame is the settled frame. Zero when every artifact came from cache.
	Frame sink.Frame

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LeafCount  int
	CellCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether dataset bytes came from cache
	RenderHit bool // Whether all artifacts came from cache (layout skipped)
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, png, pdf, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is registered.
func ValidateStyle(style string) error {
	_, err := styles.Lookup(style)
	return err
}

// ValidateTiling checks that a tiling algorithm exists.
func ValidateTiling(tiling string) error {
	if _, ok := layout.ByName(tiling); !ok {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid tiling: %q (must be one of: %s)", tiling, strings.Join(layout.TilingNames(), ", "))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Tiling == "" {
		o.Tiling = DefaultTiling
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateFocusPath(o.Focus); err != nil {
		return err
	}
	return ValidateTiling(o.Tiling)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Unit == "" {
		o.Unit = DefaultUnit
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

// ViewConfig returns the session configuration for these options. Pipeline
// sessions never animate.
func (o *Options) ViewConfig() view.Config {
	tiler, _ := layout.ByName(o.Tiling)
	return view.Config{
		Width:    o.Width,
		Height:   o.Height,
		Duration: -1,
		Title:    o.Title,
		Tiler:    tiler,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Focus:  o.Focus,
		Tiling: o.Tiling,
		Title:  o.Title,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Unit:   o.Unit,
		Header: o.Header,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	if format == FormatDOT {
		opts.Detailed = o.Detailed
		opts.MaxDepth = o.MaxDepth
	}
	return opts
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
