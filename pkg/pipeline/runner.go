package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/treezoom/pkg/cache"
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/observability"
	"github.com/matzehuels/treezoom/pkg/source"
	"github.com/matzehuels/treezoom/pkg/view"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the explorer and the server share it to avoid duplicating
// caching logic.
//
// The Runner does not store pipeline results. Multiple goroutines can use
// the same Runner with different options; concurrent loads of the same
// remote dataset are collapsed into one fetch.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	loads singleflight.Group
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Dataset is a loaded, decoded dataset.
type Dataset struct {
	// Location is the canonical source location.
	Location string
	// Raw is the decoded record tree.
	Raw hierarchy.RawRecord
	// Hash is the content hash of the raw bytes.
	Hash string
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	ds, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.DatasetHash = ds.Hash
	result.Stats.LoadTime = time.Since(loadStart)
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded dataset",
		"source", ds.Location,
		"cached", loadHit,
		"duration", result.Stats.LoadTime)

	// Stages 2 and 3 share the layout key: when every artifact for it is
	// cached, the hierarchy is never built.
	result.LayoutKey = r.Keyer.LayoutKey(ds.Hash, opts.LayoutKeyOpts())
	if artifacts, ok := r.cachedArtifacts(ctx, result.LayoutKey, opts); ok {
		result.Artifacts = artifacts
		result.CacheInfo.RenderHit = true
		r.Logger.Info("rendered outputs", "formats", opts.Formats, "cached", true)
		return result, nil
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	s, err := r.Layout(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Root = s.Root()
	result.Frame = s.Frame()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = s.Root().Count()
	result.Stats.LeafCount = len(s.Root().Leaves())
	result.Stats.CellCount = len(result.Frame.Sprites)

	r.Logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"cells", result.Stats.CellCount,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, s, result.LayoutKey, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo fetches and decodes the dataset and reports whether the
// bytes came from cache. Only remote sources are cached; local files are
// always read fresh.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*Dataset, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	src, err := source.Open(opts.Source, source.WithHTTPClient(opts.HTTPClient))
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, src.Location())
	start := time.Now()

	ds, hit, err := r.load(ctx, src, opts.Refresh)
	nodes := 0
	if err == nil {
		nodes = countRecords(ds.Raw)
	}
	hooks.OnLoadComplete(ctx, src.Location(), nodes, time.Since(start), err)
	return ds, hit, err
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*Dataset, error) {
	ds, _, err := r.LoadWithCacheInfo(ctx, opts)
	return ds, err
}

type loadResult struct {
	ds  *Dataset
	hit bool
}

func (r *Runner) load(ctx context.Context, src source.Source, refresh bool) (*Dataset, bool, error) {
	cacheable := src.Kind() != "file"
	key := r.Keyer.DatasetKey(src.Location())

	v, err, _ := r.loads.Do(key, func() (any, error) {
		if cacheable && !refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				if raw, err := source.Decode(data); err == nil {
					observability.Cache().OnCacheHit(ctx, "dataset")
					return loadResult{ds: &Dataset{Location: src.Location(), Raw: raw, Hash: cache.Hash(data)}, hit: true}, nil
				}
			}
			observability.Cache().OnCacheMiss(ctx, "dataset")
		}

		raw, data, err := source.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		if cacheable {
			if err := r.Cache.Set(ctx, key, data, cache.DatasetTTL); err != nil {
				r.Logger.Warn("cache dataset", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "dataset", len(data))
			}
		}
		return loadResult{ds: &Dataset{Location: src.Location(), Raw: raw, Hash: cache.Hash(data)}}, nil
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(loadResult)
	return res.ds, res.hit, nil
}

// Layout runs the layout stage with pipeline hooks.
func (r *Runner) Layout(ctx context.Context, ds *Dataset, opts Options) (*view.Session, error) {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Focus, countRecords(ds.Raw))
	start := time.Now()

	s, err := Layout(ds.Raw, opts)
	hooks.OnLayoutComplete(ctx, opts.Focus, time.Since(start), err)
	return s, err
}

// Render generates artifacts from a settled session, serving and filling
// the artifact cache under layoutKey. An empty layoutKey disables caching.
func (r *Runner) Render(ctx context.Context, s *view.Session, layoutKey string, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := Render(s, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if layoutKey != "" {
		for format, data := range artifacts {
			key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
				r.Logger.Warn("cache artifact", "format", format, "error", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, nil
}

// cachedArtifacts returns every requested format from cache, or false if
// any is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, layoutKey string, opts Options) (map[string][]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		artifacts[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func countRecords(raw hierarchy.RawRecord) int {
	n := 1
	for _, c := range raw.Children {
		n += countRecords(c)
	}
	return n
}
