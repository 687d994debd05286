// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamelna-apps/plangen/internal/api"
	"github.com/jamelna-apps/plangen/internal/app"
	"github.com/jamelna-apps/plangen/internal/config"
	"github.com/jamelna-apps/plangen/internal/logger"

	// Register LLM providers.
	_ "github.com/jamelna-apps/plangen/internal/llm/providers/anthropic"
	_ "github.com/jamelna-apps/plangen/internal/llm/providers/openai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zl.Sync()

	createDirectories(cfg, zl)

	if err := app.InitServices(cfg, zl); err != nil {
		zl.Fatal("failed to initialize services", zap.Error(err))
	}

	router, err := api.SetupRouter(cfg, zl)
	if err != nil {
		zl.Fatal("failed to set up router", zap.Error(err))
	}

	zl.Info("server starting", zap.String("port", cfg.Port))
	runWithGracefulShutdown(router, cfg.Port, zl)
}

func createDirectories(cfg *config.Config, zl *zap.Logger) {
	dirs := []string{
		cfg.DataDir,
		filepath.Join(cfg.DataDir, "store"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			zl.Fatal("failed to create directory", zap.String("dir", dir), zap.Error(err))
		}
	}
}

func runWithGracefulShutdown(router *gin.Engine, port string, zl *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")

	// In-flight generation streams get a grace period to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Fatal("forced server shutdown", zap.Error(err))
	}

	zl.Info("server stopped")
}
