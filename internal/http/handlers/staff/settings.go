package staff

import (
	"github.com/cfc-orderdesk/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetShippingSettings 读取发货定价参数
func (h *Handler) GetShippingSettings(c *gin.Context) {
	setting, err := h.SettingService.GetShippingPricing()
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_fetch_failed", err)
		return
	}
	response.Success(c, setting)
}

// UpdateShippingSettings 更新发货定价参数，缺失或非法字段回退为默认值
func (h *Handler) UpdateShippingSettings(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	setting, err := h.SettingService.UpdateShippingPricing(req)
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_save_failed", err)
		return
	}
	response.Success(c, setting)
}
