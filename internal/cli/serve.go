package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/plotline/pkg/cache"
	"github.com/matzehuels/plotline/pkg/chart/meta"
	perrors "github.com/matzehuels/plotline/pkg/errors"
	"github.com/matzehuels/plotline/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string  // listen address
	redisAddr  string  // redis address for a shared cache (empty = file cache)
	width      float64 // plot width for charts without an explicit x length
	height     float64 // plot height for charts without an explicit y length
	background string  // background fill color
	noCache    bool    // disable caching
}

// serveCommand creates the serve command for previewing a chart over HTTP.
//
// The server re-reads the chart document on every request, so edits to
// the file show up on reload. Layout and artifacts are cached by
// content hash, so unchanged documents render from cache.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:   ":8080",
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
	}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Preview a chart over HTTP with hover hints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for a shared cache (default: file cache)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "plot width for charts without an explicit x length")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "plot height for charts without an explicit y length")
	cmd.Flags().StringVar(&opts.background, "background", "", "background fill color")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the preview server and blocks until the context is
// canceled.
func (c *CLI) runServe(ctx context.Context, input string, opts *serveOpts) error {
	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := &server{
		runner: runner,
		input:  input,
		opts:   opts,
		logger: c.Logger,
	}

	httpSrv := &http.Server{
		Addr:         opts.addr,
		Handler:      srv.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()
	c.Logger.Info("serving chart", "input", input, "addr", opts.addr)
	printInfo("Preview at http://localhost%s/", opts.addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// serveCache picks the cache backend: redis when an address is given,
// otherwise the per-user file cache.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return store, nil
	}
	return newCache(false)
}

// =============================================================================
// Server - HTTP Handlers
// =============================================================================

// server holds the preview server state.
type server struct {
	runner *pipeline.Runner
	input  string
	opts   *serveOpts
	logger *log.Logger
}

// routes builds the router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if s.logger != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(withLogger(req.Context(), s.logger)))
			})
		})
	}

	r.Get("/", s.handleIndex)
	r.Get("/chart.svg", s.handleSVG)
	r.Get("/layout.json", s.handleLayout)
	r.Get("/hint", s.handleHint)

	return r
}

// pipelineOptions builds the per-request pipeline options.
func (s *server) pipelineOptions(formats ...string) pipeline.Options {
	return pipeline.Options{
		Input:      s.input,
		Width:      s.opts.width,
		Height:     s.opts.height,
		Formats:    formats,
		Hover:      true,
		Background: s.opts.background,
	}
}

// handleIndex serves a minimal page embedding the chart.
func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>plotline</title></head>
<body style="margin:2rem;font-family:sans-serif">
<object type="image/svg+xml" data="/chart.svg"></object>
</body>
</html>
`)
}

// handleSVG renders the chart document as SVG.
func (s *server) handleSVG(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.Execute(r.Context(), s.pipelineOptions(pipeline.FormatSVG))
	if err != nil {
		loggerFromContext(r.Context()).Error("render failed", "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

// handleLayout serves the layout snapshot as JSON.
func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	result, err := s.runner.Execute(r.Context(), s.pipelineOptions(pipeline.FormatJSON))
	if err != nil {
		loggerFromContext(r.Context()).Error("layout failed", "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

// handleHint resolves a hover pixel position to the per-series hint.
// The px query parameter is the pixel x position within the plot.
func (s *server) handleHint(w http.ResponseWriter, r *http.Request) {
	px, err := strconv.ParseFloat(r.URL.Query().Get("px"), 64)
	if err != nil {
		writeError(w, fmt.Errorf("invalid px parameter: %w", err))
		return
	}

	def, err := s.runner.Decode(pipeline.Options{
		Input:  s.input,
		Width:  s.opts.width,
		Height: s.opts.height,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	hint := meta.Assemble(def).HintAtPixel(px)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(hint)
}

// writeError reports a request failure as a JSON body. Chart decode
// and validation failures are the client's problem; everything else is
// a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch perrors.GetCode(err) {
	case perrors.ErrCodeInvalidChart, perrors.ErrCodeInvalidScale,
		perrors.ErrCodeInvalidOrientation, perrors.ErrCodeInvalidTicks,
		perrors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case perrors.ErrCodeNotFound, perrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": perrors.UserMessage(err)})
}
