package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisbackend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/makebuild-code/slidenav/internal/logging"
	httpadapter "github.com/makebuild-code/slidenav/pkg/adapters/http"
	"github.com/makebuild-code/slidenav/pkg/adapters/memory"
	redisadapter "github.com/makebuild-code/slidenav/pkg/adapters/redis"
	"github.com/makebuild-code/slidenav/pkg/deck"
	"github.com/makebuild-code/slidenav/pkg/observability"
	"github.com/makebuild-code/slidenav/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long:  `Starts the wizard engine in stateless server mode, exposing a JSON API over HTTP. Positions live in memory by default, or in Redis when --redis is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath, _ := cmd.Flags().GetString("deck")
		levelRaw, _ := cmd.Flags().GetString("log-level")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		logger := logging.New(logging.ParseLevel(levelRaw))

		d, err := deck.Load(deckPath)
		if err != nil {
			return err
		}

		sessionOpts := []session.Option{session.WithLogger(logger)}
		if redisAddr != "" {
			client := redisbackend.NewClient(&redisbackend.Options{Addr: redisAddr})
			if err := client.Ping(cmd.Context()).Err(); err != nil {
				return fmt.Errorf("redis ping %s: %w", redisAddr, err)
			}
			store := redisadapter.NewFromClient(client)
			sessionOpts = append(sessionOpts,
				session.WithLocker(redisadapter.NewLocker(client, "slidenav:")))
			sessions := session.NewManager(store, sessionOpts...)
			logger.Info("using redis position store", "addr", redisAddr)
			return serve(d, sessions, port, logger)
		}

		sessions := session.NewManager(memory.NewStore(), sessionOpts...)
		return serve(d, sessions, port, logger)
	},
}

func serve(d *deck.Deck, sessions *session.Manager, port string, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	handler := httpadapter.NewHandler(d, sessions,
		httpadapter.WithLogger(logger),
		httpadapter.WithLifecycleHooks(metrics.Hooks()),
	)

	mux := http.NewServeMux()
	mux.Handle("/", handler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("starting server", "addr", srv.Addr, "slides", len(d.Slides))
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("starting shutdown", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("killing server: %w", err)
			}
		}
		logger.Info("server stopped gracefully")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for position storage (host:port)")
}
