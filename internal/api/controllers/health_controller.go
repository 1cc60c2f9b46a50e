package controllers

import (
	"context"
	"net/http"
	"time"

	"datecourse/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Pinger is anything the health check can probe, such as the database.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health godoc
// @Summary Liveness and database check
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			_ = c.Error(err)
			utils.RespondError(c, http.StatusServiceUnavailable, "Database unreachable")
			return
		}
	}

	utils.RespondSuccess(c, gin.H{"status": "ok"}, "Service is healthy")
}
