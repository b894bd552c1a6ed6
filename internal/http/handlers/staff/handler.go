package staff

import (
	handlershared "github.com/cfc-orderdesk/internal/http/handlers/shared"
	"github.com/cfc-orderdesk/internal/http/response"
	"github.com/cfc-orderdesk/internal/provider"

	"github.com/gin-gonic/gin"
)

// Handler 登录后工作台接口处理器
// 说明：所有写操作通过服务层转为一次更新意图并写入审计。
type Handler struct {
	*provider.Container
}

// New 创建工作台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

var (
	readErrorRules = handlershared.ConcatMappedErrors(
		handlershared.LookupRules,
		handlershared.BackendErrorRules,
	)
	writeErrorRules = handlershared.ConcatMappedErrors(
		handlershared.LookupRules,
		handlershared.ValidationRules,
		handlershared.SaveRules,
		handlershared.BackendErrorRules,
	)
)

func requestID(c *gin.Context) string {
	return handlershared.RequestID(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondReadError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, readErrorRules, response.CodeInternal, "error.internal")
}

func respondWriteError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, writeErrorRules, response.CodeBadGateway, "error.update_intent_failed")
}

// bindOptionalJSON 请求体为空时保留默认值
func bindOptionalJSON(c *gin.Context, dest interface{}) bool {
	if c.Request == nil || c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return false
	}
	return true
}
