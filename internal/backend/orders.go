package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
)

// CancelNote 取消订单时追加的备注
const CancelNote = "\n[CANCELED via UI]"

// FetchOrdersInput 拉取订单参数
type FetchOrdersInput struct {
	Limit           int
	IncludeComplete bool
}

// FetchOrders 拉取订单列表（GET /orders）
// 响应中 orders 缺失或格式异常时返回空列表而非错误。
func (c *Client) FetchOrders(ctx context.Context, input FetchOrdersInput) ([]*models.Order, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 200
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("include_complete", strconv.FormatBool(input.IncludeComplete))

	body, err := c.do(ctx, http.MethodGet, "/orders", query, nil)
	if err != nil {
		return nil, err
	}
	return models.DecodeOrderList(body), nil
}

// SetOrderStatus 更新订单状态（PATCH /orders/{id}/set-status）
func (c *Client) SetOrderStatus(ctx context.Context, orderID, status string) error {
	query := url.Values{}
	query.Set("status", status)
	query.Set("source", constants.UpdateSourceWebUI)
	_, err := c.do(ctx, http.MethodPatch, "/orders/"+escapeID(orderID)+"/set-status", query, nil)
	return err
}

// PatchOrder 按字段更新订单（PATCH /orders/{id}，JSON 请求体）
func (c *Client) PatchOrder(ctx context.Context, orderID string, fields map[string]interface{}) error {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	_, err := c.do(ctx, http.MethodPatch, "/orders/"+escapeID(orderID), nil, fields)
	return err
}

// PatchOrderNotes 更新内部备注
func (c *Client) PatchOrderNotes(ctx context.Context, orderID, notes string) error {
	return c.PatchOrder(ctx, orderID, map[string]interface{}{"notes": notes})
}

// CancelOrder 取消订单：先将状态置为 canceled，再标记完成并追加备注
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	if err := c.SetOrderStatus(ctx, orderID, constants.OrderStatusCanceled); err != nil {
		return err
	}
	return c.PatchOrder(ctx, orderID, map[string]interface{}{
		"is_complete":  true,
		"is_canceled":  true,
		"notes_append": CancelNote,
	})
}
