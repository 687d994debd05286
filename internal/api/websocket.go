// internal/api/websocket.go
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	apperrors "github.com/jamelna-apps/plangen/internal/errors"
	"github.com/jamelna-apps/plangen/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// GeneratePlanWS is the websocket variant of the generation stream. The
// client sends a single GenerationRequest frame and receives the same
// StreamEvent sequence the SSE endpoint carries, then a normal close.
func (h *Handler) GeneratePlanWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var req models.GenerationRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(models.ErrorEvent(string(apperrors.ErrorTypeInvalidInput), "invalid request payload"))
		return
	}
	if err := req.Validate(); err != nil {
		conn.WriteJSON(models.ErrorEvent(string(apperrors.ErrorTypeInvalidInput), err.Error()))
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// The client sends nothing after the request frame, so the read loop
	// exists only to observe the connection closing.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	emit := func(event models.StreamEvent) error {
		return conn.WriteJSON(event)
	}

	h.PlanService.GeneratePlan(ctx, req, emit)

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
