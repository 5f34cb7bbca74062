package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treezoom/pkg/pipeline"
	"github.com/matzehuels/treezoom/pkg/server"
)

const (
	defaultAddr     = ":8080"
	cleanupInterval = time.Minute
	shutdownTimeout = 10 * time.Second
)

// serveCommand runs the HTTP frame server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		noCache bool
		cfg     server.Config
		addr    string
	)
	opts := pipeline.Options{Header: true}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve treemap renders and interactive zoom sessions over HTTP",
		Long: `Serve treemap renders and interactive zoom sessions over HTTP.

  GET  /api/render?source=...&focus=...&format=svg
  POST /api/sessions                {"source": "..."}
  POST /api/sessions/{id}/drill-in  {"path": "World"}
  GET  /api/sessions/{id}/frame?format=svg

Render flags set the defaults for every request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyRenderConfig(cmd, &opts, c.config.Render)
			applyServerConfig(cmd, &addr, &cfg, c.config.Server)
			cfg.Defaults = opts
			return c.runServe(cmd.Context(), addr, cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&cfg.SessionTTL, "session-ttl", 0, "idle session lifetime (default 30m)")
	cmd.Flags().IntVar(&cfg.MaxSessions, "max-sessions", 0, "maximum concurrent sessions (default 1000, negative for no limit)")
	cmd.Flags().DurationVar(&cfg.RequestTimeout, "request-timeout", 0, "per-request timeout (default 60s)")
	addRenderFlags(cmd, &opts)

	return cmd
}

func applyServerConfig(cmd *cobra.Command, addr *string, cfg *server.Config, sc ServerConfig) {
	unset := func(name string) bool { return !cmd.Flags().Changed(name) }
	if sc.Addr != "" && unset("addr") {
		*addr = sc.Addr
	}
	if sc.SessionTTL > 0 && unset("session-ttl") {
		cfg.SessionTTL = sc.SessionTTL
	}
	if sc.MaxSessions != 0 && unset("max-sessions") {
		cfg.MaxSessions = sc.MaxSessions
	}
	if sc.RequestTimeout > 0 && unset("request-timeout") {
		cfg.RequestTimeout = sc.RequestTimeout
	}
}

func (c *CLI) runServe(ctx context.Context, addr string, cfg server.Config, noCache bool) error {
	if err := cfg.Defaults.ValidateForRender(); err != nil {
		return err
	}
	if err := pipeline.ValidateTiling(cfg.Defaults.Tiling); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(runner, c.Logger, cfg)
	go srv.RunCleanup(ctx, cleanupInterval)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
