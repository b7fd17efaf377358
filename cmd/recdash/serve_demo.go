package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/recdash/internal/analytics"
	"github.com/Veraticus/recdash/internal/demoapi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func serveDemoCmd() *cobra.Command {
	var (
		addr  string
		fail  []string
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve-demo",
		Short: "Serve a demo analytics API with sample data",
		Long: `Serve the four analytics endpoints and /health with deterministic sample
data, so the dashboard can be tried without the recommendation engine.

Use --fail to make endpoints answer 500 and --delay to slow every response.`,
		Example: `  recdash serve-demo --addr :8000
  recdash serve-demo --fail summary --fail weekly-engagement --delay 2s`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			failing := make(map[analytics.Endpoint]bool, len(fail))
			for _, name := range fail {
				endpoint, err := analytics.ParseEndpoint(name)
				if err != nil {
					return err
				}
				failing[endpoint] = true
			}

			server := demoapi.NewServer(demoapi.SampleDataset(time.Now()), demoapi.Options{
				Fail:  failing,
				Delay: delay,
			})

			return serveUntilDone(cmd.Context(), &http.Server{
				Addr:              addr,
				Handler:           server.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")
	cmd.Flags().StringSliceVar(&fail, "fail", nil, "endpoint to answer with 500 (repeatable)")
	cmd.Flags().DurationVar(&delay, "delay", 0, "delay added before every analytics response")

	return cmd
}

// serveUntilDone runs srv until ctx is cancelled, then shuts it down gracefully.
func serveUntilDone(ctx context.Context, srv *http.Server) error {
	errChan := make(chan error, 1)
	go func() {
		slog.Info("Starting demo analytics API", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("failed to serve demo API: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down demo analytics API...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down demo API: %w", err)
	}
	slog.Info("Demo analytics API stopped")
	return nil
}
