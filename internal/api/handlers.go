// internal/api/handlers.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/jamelna-apps/plangen/internal/errors"
	"github.com/jamelna-apps/plangen/internal/models"
	"github.com/jamelna-apps/plangen/internal/services"
)

// Handler exposes the plan pipeline over HTTP.
type Handler struct {
	PlanService *services.PlanService
	Logger      *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(planService *services.PlanService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		PlanService: planService,
		Logger:      logger,
	}
}

// GeneratePlan runs the generation pipeline over an SSE stream. Validation
// happens before the stream opens: a structurally invalid request gets a
// plain JSON rejection, never a stream.
func (h *Handler) GeneratePlan(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, string(apperrors.ErrorTypeInvalidInput), "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, string(apperrors.ErrorTypeInvalidInput), err.Error())
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")

	clientGone := c.Request.Context().Done()

	emit := func(event models.StreamEvent) error {
		select {
		case <-clientGone:
			return c.Request.Context().Err()
		default:
		}

		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	}

	h.PlanService.GeneratePlan(c.Request.Context(), req, emit)

	// End-of-stream sentinel, after the terminal event.
	fmt.Fprintf(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}

// GetPlan returns one persisted plan.
func (h *Handler) GetPlan(c *gin.Context) {
	plan, err := h.PlanService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			respondError(c, http.StatusNotFound, string(apperrors.ErrorTypeNotFound), "plan not found")
			return
		}
		h.Logger.Error("failed to load plan", zap.Error(err))
		respondError(c, http.StatusInternalServerError, string(apperrors.ErrorTypePersistence), "failed to load plan")
		return
	}

	respondSuccess(c, plan)
}

// ListPlans returns summaries of all persisted plans.
func (h *Handler) ListPlans(c *gin.Context) {
	summaries, err := h.PlanService.ListPlans(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list plans", zap.Error(err))
		respondError(c, http.StatusInternalServerError, string(apperrors.ErrorTypePersistence), "failed to list plans")
		return
	}

	respondSuccess(c, summaries)
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
