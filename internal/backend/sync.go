package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cfc-orderdesk/internal/models"
)

// SummaryBatchResult 批量重建摘要结果
type SummaryBatchResult struct {
	Success int `json:"success"`
	Total   int `json:"total"`
}

// OrderSummaryResult 单个订单摘要结果
type OrderSummaryResult struct {
	Summary          string        `json:"summary"`
	HasCritical      bool          `json:"has_critical"`
	CriticalComments []interface{} `json:"critical_comments"`
}

// RegenerateSummaries 重建所有订单 AI 摘要（POST /orders/regenerate-summaries）
func (c *Client) RegenerateSummaries(ctx context.Context, includeArchived bool) (*SummaryBatchResult, error) {
	query := url.Values{}
	query.Set("include_archived", strconv.FormatBool(includeArchived))
	body, err := c.do(ctx, http.MethodPost, "/orders/regenerate-summaries", query, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Results SummaryBatchResult `json:"results"`
	}
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// RegenerateOrderSummary 重建单个订单摘要（POST /orders/{id}/regenerate-summary）
func (c *Client) RegenerateOrderSummary(ctx context.Context, orderID string) (*OrderSummaryResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/orders/"+escapeID(orderID)+"/regenerate-summary", nil, nil)
	if err != nil {
		return nil, err
	}
	var result OrderSummaryResult
	if err := decodeJSON(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateSummary 重新生成订单 AI 摘要与关键备注（POST /orders/{id}/generate-summary）
func (c *Client) GenerateSummary(ctx context.Context, orderID string, force bool) error {
	query := url.Values{}
	query.Set("force", strconv.FormatBool(force))
	_, err := c.do(ctx, http.MethodPost, "/orders/"+escapeID(orderID)+"/generate-summary", query, nil)
	return err
}

// SyncGmail 触发邮件同步（POST /gmail/sync）
func (c *Client) SyncGmail(ctx context.Context, hoursBack int) (models.JSON, error) {
	query := url.Values{}
	query.Set("hours_back", strconv.Itoa(hoursBack))
	body, err := c.do(ctx, http.MethodPost, "/gmail/sync", query, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Results models.JSON `json:"results"`
	}
	if err := decodeJSON(body, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SyncB2BWave 触发 B2BWave 订单同步（POST /b2bwave/sync）
func (c *Client) SyncB2BWave(ctx context.Context, daysBack int) (models.JSON, error) {
	query := url.Values{}
	query.Set("days_back", strconv.Itoa(daysBack))
	body, err := c.do(ctx, http.MethodPost, "/b2bwave/sync", query, nil)
	if err != nil {
		return nil, err
	}
	result := models.JSON{}
	if err := decodeJSON(body, &result); err != nil {
		return nil, err
	}
	return result, nil
}
