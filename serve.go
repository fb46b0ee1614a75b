package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultServeAddr = "localhost:9999"

func newPreviewServer(dir, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           http.FileServer(http.Dir(dir)),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// serveSite serves dir until ctx is done or the process is interrupted.
func serveSite(ctx context.Context, dir, addr string, logger *slog.Logger) error {
	srv := newPreviewServer(dir, addr)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Serving site", slog.String("dir", dir), slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("preview server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Preview server shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	return g.Wait()
}
