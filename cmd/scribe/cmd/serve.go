package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/f3rmion/scribe/internal/api"
	"github.com/f3rmion/scribe/internal/store"
)

const shutdownTimeout = 5 * time.Second

var (
	serveListen string
	serveDB     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the known-words store",
	Long: `Serve the known-words API backed by a local SQLite database.

Endpoints:
  POST /api/add-known-words     {"words": [...]}
  GET  /api/get-known-words
  POST /api/remove-known-word   {"word": "..."}
  GET  /health

Example:
  scribe serve --listen 127.0.0.1:5000 --db ~/.config/scribe/known_words.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from store.listen)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path (default from store.path)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveListen != "" {
		cfg.Store.Listen = serveListen
	}
	if serveDB != "" {
		cfg.Store.Path = serveDB
	}
	logger := stderrLogger(cfg)

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := &http.Server{
		Addr:              cfg.Store.Listen,
		Handler:           api.NewServer(db, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("known-words store listening",
			slog.String("addr", cfg.Store.Listen),
			slog.String("db", cfg.Store.Path),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
