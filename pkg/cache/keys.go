package cache

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// DatasetKey keys raw dataset bytes by where they came from.
	DatasetKey(source string) string
	// LayoutKey keys a settled frame by dataset content and view options.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys rendered output by layout content and render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a layout.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Focus  string  `json:"focus"`
	Tiling string  `json:"tiling"`
	Title  string  `json:"title"`
}

// ArtifactKeyOpts are the options that change rendered output.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Style  string  `json:"style"`
	Unit   string  `json:"unit"`
	Header bool    `json:"header"`
	Scale  float64 `json:"scale,omitempty"`

	// Tree diagram options, only set for DOT output.
	Detailed bool `json:"detailed,omitempty"`
	MaxDepth int  `json:"max_depth,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DatasetKey(source string) string {
	return hashKey("dataset", source)
}

func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
