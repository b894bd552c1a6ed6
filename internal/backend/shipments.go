package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
)

// RLDestination RL 询价目的地信息
type RLDestination struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// UnmarshalJSON 邮编、电话等字段兼容数字写法
func (d *RLDestination) UnmarshalJSON(b []byte) error {
	type plain RLDestination
	return models.UnmarshalLenient(b, (*plain)(d))
}

// RLWeight 重量估算
type RLWeight struct {
	Value models.FlexFloat `json:"value"`
	Note  string           `json:"note"`
}

// RLOversized 超尺寸检测结果
type RLOversized struct {
	Detected bool     `json:"detected"`
	Items    []string `json:"items"`
}

// RLExistingQuote 已保存的报价
type RLExistingQuote struct {
	QuoteNumber string       `json:"quote_number"`
	QuotePrice  models.Money `json:"quote_price"`
	QuoteURL    string       `json:"quote_url"`
}

// UnmarshalJSON 报价单号兼容数字写法
func (q *RLExistingQuote) UnmarshalJSON(b []byte) error {
	type plain RLExistingQuote
	return models.UnmarshalLenient(b, (*plain)(q))
}

// RLQuoteData RL 询价所需数据（GET /shipments/{id}/rl-quote-data）
type RLQuoteData struct {
	Status        string           `json:"status"`
	Message       string           `json:"message,omitempty"`
	OriginZip     string           `json:"origin_zip"`
	Destination   RLDestination    `json:"destination"`
	Weight        RLWeight         `json:"weight"`
	Oversized     RLOversized      `json:"oversized"`
	ExistingQuote *RLExistingQuote `json:"existing_quote,omitempty"`
}

// UnmarshalJSON 起运邮编兼容数字写法
func (d *RLQuoteData) UnmarshalJSON(b []byte) error {
	type plain RLQuoteData
	return models.UnmarshalLenient(b, (*plain)(d))
}

// OK 后端是否返回成功
func (d *RLQuoteData) OK() bool {
	return d != nil && d.Status == "ok"
}

// PatchShipment 按字段更新发货单（PATCH /shipments/{id}?field=value）
func (c *Client) PatchShipment(ctx context.Context, shipmentID string, fields url.Values) error {
	_, err := c.do(ctx, http.MethodPatch, "/shipments/"+escapeID(shipmentID), fields, nil)
	return err
}

// SetShipmentStatus 更新发货单状态
func (c *Client) SetShipmentStatus(ctx context.Context, shipmentID, status string) error {
	return c.PatchShipment(ctx, shipmentID, url.Values{"status": {status}})
}

// SaveTracking 保存运单号后将发货单置为已发货
func (c *Client) SaveTracking(ctx context.Context, shipmentID, trackingNumber string) error {
	if err := c.PatchShipment(ctx, shipmentID, url.Values{"tracking_number": {trackingNumber}}); err != nil {
		return err
	}
	return c.SetShipmentStatus(ctx, shipmentID, constants.ShipmentStatusShipped)
}

// RLQuoteData 获取 RL 询价数据
func (c *Client) RLQuoteData(ctx context.Context, shipmentID string) (*RLQuoteData, error) {
	body, err := c.do(ctx, http.MethodGet, "/shipments/"+escapeID(shipmentID)+"/rl-quote-data", nil, nil)
	if err != nil {
		return nil, err
	}
	var data RLQuoteData
	if err := decodeJSON(body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
