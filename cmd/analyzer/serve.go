package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"bigcompany-analysis/internal/config"
	"bigcompany-analysis/internal/httpapi"
)

func newServeCmd(cfg *config.Config, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "serve [employees.csv]",
		Short: "Analyze once and serve the report over HTTP",
		Args:  maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfg, log.New(stderr, "", log.LstdFlags))
		},
	}
}

func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Printf("%s %s %s", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

func healthcheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func newMux(handler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/report", handler)
	mux.Handle("/report/", handler)
	mux.HandleFunc("/healthcheck", healthcheck)
	return mux
}

func runServe(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	analyzer, closeSource, err := newAnalyzer(cfg, logger)
	if err != nil {
		return err
	}
	result, err := analyzer.Analyze(ctx)
	closeSource()
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           loggingMiddleware(logger, newMux(httpapi.NewHandler(result))),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("starting server, listening to port %s...", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Printf("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
