package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/b/tabdeck/pkg/daemon"
	"github.com/b/tabdeck/pkg/perf"
	"github.com/b/tabdeck/pkg/tabs"
)

var metricsAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the session daemon that shares one tab store over a unix socket",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address (e.g. 127.0.0.1:9464)")
}

func runServe(ctx context.Context) error {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	var opts []tabs.Option
	var metrics *perf.Metrics
	if cfg.Metrics.Enabled || metricsAddr != "" {
		metrics = perf.NewMetrics()
		opts = append(opts, tabs.WithRecorder(metrics))
	}
	store := tabs.NewStore(opts...)

	srv := daemon.NewServer(session, daemon.NewDispatcher(store, cat), log.Logger)
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Stop()

	if metrics != nil && metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
		httpSrv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "addr", metricsAddr, "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()
		log.Info("serving metrics", "addr", metricsAddr)
	}

	<-ctx.Done()
	return nil
}
