package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treezoom/pkg/pipeline"
)

const configFile = "config.toml"

// Config is the optional TOML config file:
//
//	[render]
//	width = 1200
//	style = "plain"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	session_ttl = "15m"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig supplies defaults for the render, explore and serve commands.
type RenderConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Title  string  `toml:"title"`
	Style  string  `toml:"style"`
	Unit   string  `toml:"unit"`
	Tiling string  `toml:"tiling"`
	Header *bool   `toml:"header"`
}

// CacheConfig selects the cache backend: "file" (default), "redis" or "none".
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

type ServerConfig struct {
	Addr           string        `toml:"addr"`
	SessionTTL     time.Duration `toml:"session_ttl"`
	MaxSessions    int           `toml:"max_sessions"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

// loadConfig reads path, or the default config file when path is empty. A
// missing default file yields the zero Config; a missing explicit file is an
// error. Unknown keys are logged and ignored.
func loadConfig(path string, logger *log.Logger) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("unknown config key", "key", key.String(), "file", path)
	}
	logger.Debug("loaded config", "file", path)
	return cfg, nil
}

// applyRenderConfig copies config values onto opts for every flag the user
// did not set explicitly.
func applyRenderConfig(cmd *cobra.Command, opts *pipeline.Options, rc RenderConfig) {
	unset := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f == nil || !f.Changed
	}
	if rc.Width > 0 && unset("width") {
		opts.Width = rc.Width
	}
	if rc.Height > 0 && unset("height") {
		opts.Height = rc.Height
	}
	if rc.Title != "" && unset("title") {
		opts.Title = rc.Title
	}
	if rc.Style != "" && unset("style") {
		opts.Style = rc.Style
	}
	if rc.Unit != "" && unset("unit") {
		opts.Unit = rc.Unit
	}
	if rc.Tiling != "" && unset("tiling") {
		opts.Tiling = rc.Tiling
	}
	if rc.Header != nil && unset("header") {
		opts.Header = *rc.Header
	}
}

// addRenderFlags registers the presentation flags shared by render, explore
// and serve.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().StringVar(&opts.Title, "title", opts.Title, "title shown in the header at the root")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: tol (default), plain")
	cmd.Flags().StringVar(&opts.Unit, "unit", opts.Unit, "unit shown in tooltips")
	cmd.Flags().StringVar(&opts.Tiling, "tiling", opts.Tiling, "tiling: squarify (default), slicedice, slice, dice")
	cmd.Flags().BoolVar(&opts.Header, "header", opts.Header, "draw the breadcrumb header")
}
