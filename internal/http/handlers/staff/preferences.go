package staff

import (
	"time"

	"github.com/cfc-orderdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetSnapTip 读取截图提示状态
func (h *Handler) GetSnapTip(c *gin.Context) {
	state, err := h.PreferenceService.GetSnapTip(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.preference_fetch_failed", err)
		return
	}
	response.Success(c, state)
}

// DismissSnapTip 永久关闭截图提示
func (h *Handler) DismissSnapTip(c *gin.Context) {
	state, err := h.PreferenceService.DismissSnapTip(time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "error.preference_save_failed", err)
		return
	}
	response.Success(c, state)
}
