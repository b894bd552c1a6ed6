package shared

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextKeyRequestID = "request_id"
	ContextKeyRole      = "role"
	ContextKeyTokenID   = "token_id"
)

// RequestID 读取当前请求 ID
func RequestID(c *gin.Context) string {
	return contextString(c, ContextKeyRequestID)
}

// StaffRole 读取 JWT 中的角色
func StaffRole(c *gin.Context) string {
	return contextString(c, ContextKeyRole)
}

func contextString(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	value, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return strings.TrimSpace(s)
}
