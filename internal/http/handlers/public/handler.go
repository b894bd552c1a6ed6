package public

import (
	handlershared "github.com/cfc-orderdesk/internal/http/handlers/shared"
	"github.com/cfc-orderdesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 免登录接口处理器（健康检查与登录）
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}
