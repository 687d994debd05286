// internal/app/app.go
package app

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jamelna-apps/plangen/internal/config"
	"github.com/jamelna-apps/plangen/internal/di"
	"github.com/jamelna-apps/plangen/internal/llm"
	"github.com/jamelna-apps/plangen/internal/services"
	"github.com/jamelna-apps/plangen/internal/storage"
)

// InitServices constructs the pipeline services in dependency order and
// registers them in the container. Call once at startup.
func InitServices(cfg *config.Config, logger *zap.Logger) error {
	container := di.GetContainer()

	store, err := storage.NewFileStore(filepath.Join(cfg.DataDir, "store"))
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}
	container.Register("store", store)

	var retriever services.Retriever
	if cfg.RetrievalURL != "" {
		retriever = services.NewHTTPRetriever(cfg.RetrievalURL)
		container.Register("retriever", retriever)
	} else {
		logger.Warn("RETRIEVAL_URL not set, plans will be generated without reference text")
	}

	provider, err := llm.GetProvider(cfg.LLMProvider, cfg.LLMConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize LLM provider %q: %w", cfg.LLMProvider, err)
	}
	container.Register("llm", provider)

	planService := services.NewPlanService(
		provider,
		retriever,
		store,
		logger,
		cfg.StreamTimeout,
		cfg.MaxOutputTokens,
	)
	container.Register("plan", planService)

	logger.Info("services initialized",
		zap.String("llm_provider", provider.GetName()),
		zap.Strings("registered", container.GetNames()))

	return nil
}
