package app

import (
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/chainstamp/chainstamp/cmd/chainstamp/services"
	"github.com/chainstamp/chainstamp/config"
	chainstampLogger "github.com/chainstamp/chainstamp/internal/logger"
	"github.com/chainstamp/chainstamp/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chainstamp API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		configDir, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}

		return serve(configDir)
	},
}

func init() {
	serveCmd.Flags().String("config", "", "path to the directory containing config.yaml")
}

func serve(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}

	logger, err := chainstampLogger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to create logger: %v", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("failed to get host name: %v", err)
	}

	logger = logger.With(slog.String("host", hostname))

	logger.Info("Starting chainstamp",
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
		slog.String("environment", cfg.Environment),
	)

	go func() {
		if cfg.ProfilerAddr != "" {
			logger.Info(fmt.Sprintf("Starting profiler on http://%s/debug/pprof", cfg.ProfilerAddr))

			err := http.ListenAndServe(cfg.ProfilerAddr, nil)
			if err != nil {
				logger.Error("failed to start profiler server", slog.String("err", err.Error()))
			}
		}
	}()

	go func() {
		if cfg.Prometheus.IsEnabled() {
			logger.Info("Starting prometheus", slog.String("endpoint", cfg.Prometheus.Endpoint))
			mux := http.NewServeMux()
			mux.Handle(cfg.Prometheus.Endpoint, promhttp.Handler())
			err := http.ListenAndServe(cfg.Prometheus.Addr, mux)
			if err != nil {
				logger.Error("failed to start prometheus server", slog.String("err", err.Error()))
			}
		}
	}()

	shutdown, err := services.StartAPIServer(logger, cfg)
	if err != nil {
		return fmt.Errorf("failed to start api: %v", err)
	}

	// setup signal catching
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-signalChan
	logger.Info("Received shutdown signal", slog.String("reason", sig.String()))

	shutdown()

	return nil
}
