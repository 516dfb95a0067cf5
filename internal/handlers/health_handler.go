package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/dto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger проверяет соединение (БД, redis).
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	deps map[string]Pinger
	log  *zap.Logger
}

func NewHealthHandler(deps map[string]Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{deps: deps, log: log}
}

// Health godoc
// @Summary Проверка живости
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for name, p := range h.deps {
		if err := p.PingContext(ctx); err != nil {
			h.log.Warn("health check failed", zap.String("dep", name), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
