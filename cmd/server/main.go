package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/mediascraper-go/api"
	"github.com/yourusername/mediascraper-go/api/handlers"
	"github.com/yourusername/mediascraper-go/internal/app"
	"github.com/yourusername/mediascraper-go/internal/domain"
	"github.com/yourusername/mediascraper-go/internal/infrastructure"
	"github.com/yourusername/mediascraper-go/pkg/logger"
)

var configPath = flag.String("config", "", "Path to config file (default: ./configs/config.yaml or ~/.mediascraper/config.yaml)")

const shutdownTimeout = 30 * time.Second

func main() {
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := createDirectories(config); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Initialize multi-logger (3 categories: submit, download, error)
	var multiLog *logger.MultiLogger
	if config.Logging.LogsDir != "" {
		multiLog, err = logger.NewMultiLogger(logger.MultiLoggerConfig{
			Level:   config.Logging.Level,
			LogsDir: config.Logging.LogsDir,
		})
		if err != nil {
			log.Fatal("Failed to initialize category logs", zap.Error(err))
		}
		defer multiLog.Close()
	}

	log.Info("Starting MediaScraper server",
		zap.String("version", handlers.Version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("backend", config.Backend.BaseURL),
		zap.String("relay", config.Relay.BaseURL))

	repo, err := infrastructure.NewSQLiteCardRepository(config.History.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize card history", zap.Error(err))
	}
	defer repo.Close()

	application := app.New(config,
		infrastructure.NewHTTPScrapeClient(&config.Backend, log),
		infrastructure.NewHTTPMediaFetcher(nil),
		repo,
		log,
		multiLog,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go application.Labels.Run(ctx)

	router := api.SetupRouter(application, log, multiLog)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight submissions finish writing their cards.
	done := make(chan struct{})
	go func() {
		application.Submitter.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		log.Warn("Submissions still in flight at exit")
	}

	log.Info("Server exited")
}

func createDirectories(config *domain.Config) error {
	dirs := []string{config.Logging.LogsDir}
	if config.History.DatabasePath != ":memory:" {
		dirs = append(dirs, filepath.Dir(config.History.DatabasePath))
	}
	if out := config.Logging.OutputPath; out != "" && out != "stdout" && out != "stderr" {
		dirs = append(dirs, filepath.Dir(out))
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
