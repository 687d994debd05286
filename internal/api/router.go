// internal/api/router.go
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamelna-apps/plangen/internal/config"
	"github.com/jamelna-apps/plangen/internal/di"
	"github.com/jamelna-apps/plangen/internal/services"
)

// SetupRouter wires the HTTP surface. Services come from the container;
// nothing is constructed here.
func SetupRouter(cfg *config.Config, logger *zap.Logger) (*gin.Engine, error) {
	container := di.GetContainer()

	planService, ok := container.Get("plan").(*services.PlanService)
	if !ok {
		return nil, fmt.Errorf("plan service not initialized")
	}

	handler := NewHandler(planService, logger)

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware(), corsMiddleware())

	// One limiter instance shared by both generation transports, so a
	// caller cannot double its budget by mixing SSE and websocket.
	generateLimit := GenerateRateLimit(cfg.GenerateRateLimit, cfg.GenerateRateWindow)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", handler.Health)
		apiGroup.POST("/plans/generate", generateLimit, handler.GeneratePlan)
		apiGroup.GET("/plans", handler.ListPlans)
		apiGroup.GET("/plans/:id", handler.GetPlan)
	}

	r.GET("/ws/plans/generate", generateLimit, handler.GeneratePlanWS)

	return r, nil
}
