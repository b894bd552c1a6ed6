package public

import (
	"context"
	"strings"
	"time"

	"github.com/cfc-orderdesk/internal/cache"
	"github.com/cfc-orderdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// HealthView 健康检查结果
type HealthView struct {
	Status            string `json:"status"`
	RedisEnabled      bool   `json:"redis_enabled"`
	RedisOK           bool   `json:"redis_ok"`
	QueueEnabled      bool   `json:"queue_enabled"`
	BackendConfigured bool   `json:"backend_configured"`
}

// Health 健康检查，不访问订单后端
func (h *Handler) Health(c *gin.Context) {
	view := HealthView{
		Status:       "ok",
		RedisEnabled: cache.Enabled(),
		QueueEnabled: h.QueueClient.Enabled(),
	}
	if h.Config != nil {
		view.BackendConfigured = strings.TrimSpace(h.Config.Backend.BaseURL) != ""
	}
	if view.RedisEnabled {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := cache.Ping(ctx); err != nil {
			view.Status = "degraded"
		} else {
			view.RedisOK = true
		}
	}
	response.Success(c, view)
}
