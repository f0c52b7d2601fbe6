package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/semtoken/internal/cli"
	httpAdapter "github.com/aretw0/semtoken/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves render, vocabulary, draft and publish operations as a JSON API.
Requests are validated against the OpenAPI document served at /openapi.yaml.
Prometheus metrics are exposed at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, logger, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		port := rt.Config.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(rt.Metrics.Handler()),
			httpAdapter.WithCORSOrigin(rt.Config.Server.CORSOrigin),
		}
		if gzip, _ := cmd.Flags().GetBool("gzip"); gzip {
			opts = append(opts, httpAdapter.WithCompression())
		}
		handler, err := httpAdapter.NewHandler(rt.Studio, opts...)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		interrupt := cli.OnInterrupt(cmd.Context())
		defer interrupt.Stop()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("semtoken server listening", "address", srv.Addr,
				"store", rt.Config.Store.Driver, "publisher", rt.Config.Publisher.Driver)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-interrupt.Done():
			logger.Info("shutting down", "signal", interrupt.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if cerr := srv.Close(); cerr != nil && !errors.Is(cerr, http.ErrServerClosed) {
					return cerr
				}
			}
			logger.Info("semtoken server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
	serveCmd.Flags().Bool("gzip", false, "Compress responses")
}
