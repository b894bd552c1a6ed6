package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Order 远端后端返回的订单快照
// 所有可选字段均可能缺失，解码时宽松处理，不因单个字段类型异常整体失败。
type Order struct {
	OrderID           FlexString      `json:"order_id"`
	CustomerName      string          `json:"customer_name"`
	CompanyName       string          `json:"company_name"`
	Street            string          `json:"street"`
	Unit              string          `json:"unit,omitempty"`
	Suite             string          `json:"suite,omitempty"`
	City              string          `json:"city"`
	State             string          `json:"state"`
	ZipCode           string          `json:"zip_code"`
	Phone             string          `json:"phone"`
	Email             string          `json:"email"`
	OrderDate         string          `json:"order_date"`
	OrderTotal        Money           `json:"order_total"`
	DaysOpen          FlexInt         `json:"days_open"`
	CurrentStatus     string          `json:"current_status"`
	Comments          string          `json:"comments"`
	Notes             string          `json:"notes"`
	AISummary         string          `json:"ai_summary,omitempty"`
	AISummaryCritical json.RawMessage `json:"ai_summary_critical,omitempty"`
	Shipments         ShipmentList    `json:"shipments"`
}

// UnitLine 返回单元号（unit 优先，其次 suite）
func (o *Order) UnitLine() string {
	if o == nil {
		return ""
	}
	if unit := strings.TrimSpace(o.Unit); unit != "" {
		return unit
	}
	return strings.TrimSpace(o.Suite)
}

// UnmarshalJSON 字符串字段兼容数字写法
func (o *Order) UnmarshalJSON(b []byte) error {
	type plain Order
	return UnmarshalLenient(b, (*plain)(o))
}

// FindShipment 按发货单 ID 查找
func (o *Order) FindShipment(shipmentID string) *Shipment {
	if o == nil {
		return nil
	}
	for _, shipment := range o.Shipments {
		if shipment != nil && shipment.ShipmentID.String() == shipmentID {
			return shipment
		}
	}
	return nil
}

// Shipment 订单下的单个发货单（一个仓库到目的地的一段）
type Shipment struct {
	ShipmentID      FlexString `json:"shipment_id"`
	OrderID         FlexString `json:"order_id"`
	Warehouse       string     `json:"warehouse"`
	Status          string     `json:"status"`
	ShipMethod      string     `json:"ship_method"`
	Weight          FlexFloat  `json:"weight"`
	TrackingNumber  string     `json:"tracking_number"`
	RLQuoteNumber   string     `json:"rl_quote_number"`
	RLQuotePrice    Money      `json:"rl_quote_price"`
	RLCustomerPrice Money      `json:"rl_customer_price"`
	LiQuotePrice    Money      `json:"li_quote_price"`
	LiCustomerPrice Money      `json:"li_customer_price"`
	QuotePrice      Money      `json:"quote_price"`
	CustomerPrice   Money      `json:"customer_price"`
	QuoteURL        string     `json:"quote_url"`
	PSQuotePrice    Money      `json:"ps_quote_price"`
	PSQuoteURL      string     `json:"ps_quote_url"`
}

// UnmarshalJSON 字符串字段兼容数字写法
func (s *Shipment) UnmarshalJSON(b []byte) error {
	type plain Shipment
	return UnmarshalLenient(b, (*plain)(s))
}

// ShipmentList 宽松解码的发货单列表，跳过 null 与无法解析的条目
type ShipmentList []*Shipment

// UnmarshalJSON 非数组时视为空列表
func (l *ShipmentList) UnmarshalJSON(b []byte) error {
	*l = decodeObjectList[Shipment](b)
	return nil
}

// DecodeOrderList 解析后端 {orders: [...]} 响应
// orders 缺失、为 null 或不是数组时返回空列表；单条异常记录被跳过。
func DecodeOrderList(body []byte) []*Order {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return []*Order{}
	}
	raw, ok := envelope["orders"]
	if !ok {
		return []*Order{}
	}
	return decodeObjectList[Order](raw)
}

func decodeObjectList[T any](raw []byte) []*T {
	result := make([]*T, 0)
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return result
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return result
	}
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		var value T
		if err := json.Unmarshal(item, &value); err != nil {
			continue
		}
		result = append(result, &value)
	}
	return result
}
