package staff

import (
	"strconv"
	"strings"
	"time"

	"github.com/cfc-orderdesk/internal/http/response"
	"github.com/cfc-orderdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderNotesRequest 订单备注更新请求（允许清空）
type OrderNotesRequest struct {
	Notes *string `json:"notes" binding:"required"`
}

// ClipboardView 地址复制内容
type ClipboardView struct {
	Address service.FormattedAddress `json:"address"`
	Text    string                   `json:"text"`
}

// RefreshView 手动刷新结果
type RefreshView struct {
	FetchedAt time.Time `json:"fetched_at"`
	Total     int       `json:"total"`
}

// ListOrders 订单看板
func (h *Handler) ListOrders(c *gin.Context) {
	archived, _ := strconv.ParseBool(strings.TrimSpace(c.DefaultQuery("archived", "false")))
	board, err := h.OrderService.Board(c.Request.Context(), service.OrderBoardQuery{
		Status:   strings.TrimSpace(c.Query("status")),
		Archived: archived,
	}, time.Now())
	if err != nil {
		respondReadError(c, err)
		return
	}
	response.Success(c, board)
}

// RefreshOrders 立即重新拉取订单快照
func (h *Handler) RefreshOrders(c *gin.Context) {
	snapshot, err := h.OrderService.Refresh(c.Request.Context())
	if err != nil {
		respondReadError(c, err)
		return
	}
	response.Success(c, RefreshView{
		FetchedAt: snapshot.FetchedAt,
		Total:     len(snapshot.Orders),
	})
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	view, err := h.OrderService.GetOrder(c.Request.Context(), c.Param("id"), time.Now())
	if err != nil {
		respondReadError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateOrderStatus 修改订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	orderID := c.Param("id")
	status := strings.TrimSpace(req.Status)
	if err := h.OrderService.SetStatus(c.Request.Context(), orderID, status, requestID(c)); err != nil {
		respondWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"order_id": orderID, "status": status})
}

// UpdateOrderNotes 修改订单备注
func (h *Handler) UpdateOrderNotes(c *gin.Context) {
	var req OrderNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	orderID := c.Param("id")
	if err := h.OrderService.UpdateNotes(c.Request.Context(), orderID, *req.Notes, requestID(c)); err != nil {
		respondWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"order_id": orderID, "notes": *req.Notes})
}

// CancelOrder 取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")
	if err := h.OrderService.Cancel(c.Request.Context(), orderID, requestID(c)); err != nil {
		respondWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"order_id": orderID, "status": "canceled"})
}

// RegenerateOrderSummary 重建单个订单的 AI 摘要
func (h *Handler) RegenerateOrderSummary(c *gin.Context) {
	result, err := h.SyncService.RegenerateOrderSummary(c.Request.Context(), c.Param("id"), requestID(c))
	if err != nil {
		respondSyncError(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrderClipboard 返回格式化的收货地址
func (h *Handler) GetOrderClipboard(c *gin.Context) {
	address, text, err := h.OrderService.ClipboardAddress(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondReadError(c, err)
		return
	}
	response.Success(c, ClipboardView{Address: address, Text: text})
}
