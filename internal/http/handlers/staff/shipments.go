package staff

import (
	"strings"

	"github.com/cfc-orderdesk/internal/http/response"
	"github.com/cfc-orderdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// ShipmentStatusRequest 发货单状态更新请求
type ShipmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// TrackingRequest 运单号保存请求
type TrackingRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

// ShipMethodRequest 发货方式选择请求
type ShipMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// UpdateShipmentStatus 修改发货单状态
func (h *Handler) UpdateShipmentStatus(c *gin.Context) {
	var req ShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	shipmentID := c.Param("id")
	status := strings.TrimSpace(req.Status)
	if err := h.ShipmentService.SetStatus(c.Request.Context(), shipmentID, status, requestID(c)); err != nil {
		respondWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"shipment_id": shipmentID, "status": status})
}

// SaveTracking 保存运单号，返回可复制的追踪通知
func (h *Handler) SaveTracking(c *gin.Context) {
	var req TrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.ShipmentService.SaveTracking(c.Request.Context(), c.Param("id"), req.TrackingNumber, requestID(c))
	if err != nil {
		respondWriteError(c, err)
		return
	}
	response.Success(c, result)
}

// GetTrackingNotice 按已保存运单号重新生成追踪通知
func (h *Handler) GetTrackingNotice(c *gin.Context) {
	notice, err := h.ShipmentService.TrackingNotice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWriteError(c, err)
		return
	}
	response.Success(c, notice)
}

// GetShipMethod 发货方式面板当前状态
func (h *Handler) GetShipMethod(c *gin.Context) {
	view, err := h.ShipmentService.MethodView(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReadError(c, err)
		return
	}
	response.Success(c, view)
}

// SelectShipMethod 选择并保存发货方式
func (h *Handler) SelectShipMethod(c *gin.Context) {
	var req ShipMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	view, err := h.ShipmentService.SelectMethod(c.Request.Context(), c.Param("id"), req.Method, requestID(c))
	if err != nil {
		respondWriteError(c, err)
		return
	}
	response.Success(c, view)
}

// ChangeShipMethod 回到方式选择，不写入后端
func (h *Handler) ChangeShipMethod(c *gin.Context) {
	view, err := h.ShipmentService.ChangeMethod(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReadError(c, err)
		return
	}
	response.Success(c, view)
}

// SaveShipmentQuote 保存当前方式的报价字段
func (h *Handler) SaveShipmentQuote(c *gin.Context) {
	var req service.QuoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.ShipmentService.SaveQuote(c.Request.Context(), c.Param("id"), req, requestID(c))
	if err != nil {
		respondWriteError(c, err)
		return
	}
	response.Success(c, result)
}

// GetRLQuote RL 询价辅助数据
func (h *Handler) GetRLQuote(c *gin.Context) {
	view, err := h.ShipmentService.RLQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReadError(c, err)
		return
	}
	response.Success(c, view)
}
