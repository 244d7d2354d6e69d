package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/yourusername/ytdl-gateway/api"
	"github.com/yourusername/ytdl-gateway/internal/app"
	"github.com/yourusername/ytdl-gateway/internal/infrastructure"
	"github.com/yourusername/ytdl-gateway/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

var (
	configPath  = flag.String("config", "", "Path to config file (default: ./configs/config.yaml)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := app.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	base, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Categorized log files are optional
	var logAdapter *logger.LoggerAdapter
	if config.Logging.LogsDir != "" {
		multiLog, err := logger.NewMultiLogger(logger.MultiLoggerConfig{
			Level:   config.Logging.Level,
			LogsDir: config.Logging.LogsDir,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize log files: %w", err)
		}
		defer multiLog.Close()
		logAdapter = logger.NewLoggerAdapter(base, multiLog)
	} else {
		logAdapter = logger.NewSingleLoggerAdapter(base)
	}
	defer logAdapter.Sync()

	log := logAdapter.General()
	log.Info("Starting ytdl gateway",
		zap.String("version", version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("base_path", config.Server.BasePath),
		zap.String("logs_dir", config.Logging.LogsDir))

	extractor, err := infrastructure.NewYouTubeExtractor(&config.Extractor, logAdapter.Gateway())
	if err != nil {
		return fmt.Errorf("failed to initialize extractor: %w", err)
	}

	service := app.NewGatewayService(extractor, logAdapter.Gateway())
	router := api.SetupRouter(service, config, logAdapter, version)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: config.Server.ReadHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logAdapter.LogAppError("HTTP server failed", zap.Error(err))
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...", zap.Duration("timeout", config.Server.ShutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()

	// Open streams are cut off when the timeout expires
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		server.Close()
	}

	log.Info("Server exited")
	return nil
}
