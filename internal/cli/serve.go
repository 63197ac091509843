package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"htmlsearch/internal/adapter/httpapi"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr   string
	serveWarmup bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search over HTTP",
	Long: `Start an HTTP server answering GET and POST /search and serving the raw
documents under /files/. The corpus is loaded on the first query unless
--warmup is given.

Examples:
  htmlsearch serve
  htmlsearch serve --addr 127.0.0.1:9000 --warmup`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveWarmup, "warmup", false, "load the corpus before accepting requests")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	search, cache, closeFn, err := newSearch(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWarmup {
		if _, err := cache.Ensure(ctx); err != nil {
			// Queries retry the load, so the server still starts.
			logger.Warn("warmup failed", "error", err)
		}
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(search, cfg.Corpus.Dir, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "corpus", cfg.Corpus.Dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
