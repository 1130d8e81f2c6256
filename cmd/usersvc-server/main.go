package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/usersvc/usersvc/internal/config"
	"github.com/usersvc/usersvc/internal/server"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := newLogger(config.Logger().Level, config.Logger().Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	usersCfg := config.Users()
	logger.Info("Configuration loaded",
		zap.String("log_level", config.Logger().Level),
		zap.String("seed_name", usersCfg.SeedName),
		zap.String("id_strategy", usersCfg.IDStrategy))

	gin.SetMode(gin.ReleaseMode)

	as := server.NewAppState(config.Get(), logger)
	router := server.SetupRouter(as)
	srv := server.NewHTTPServer(as, router)

	done := setupSignalHandler(srv, logger)

	logger.Info("Starting user service",
		zap.String("address", srv.Addr),
		zap.Int("port", config.Http().Port))

	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newLogger builds the process logger. level and format have already been
// checked by config.Validate, so a parse failure here means a config bug.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if format == "json" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named("usersvc"), nil
}

func setupSignalHandler(srv *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		timeout := time.Duration(config.Http().ShutdownTimeout) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}
