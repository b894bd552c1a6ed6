package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"

	"github.com/shopspring/decimal"
)

// RouterState 发货方式面板状态
type RouterState string

const (
	StateSelectMethod      RouterState = "select_method"
	StateLTLQuote          RouterState = "ltl_quote"
	StatePirateshipQuote   RouterState = "pirateship_quote"
	StatePickupConfirm     RouterState = "pickup_confirm"
	StateBoxTruckPricing   RouterState = "boxtruck_pricing"
	StateLiDeliveryPricing RouterState = "lidelivery_pricing"
)

// ShipmentPatcher 发货单字段写入
type ShipmentPatcher interface {
	PatchShipment(ctx context.Context, shipmentID string, fields url.Values) error
}

// RouterOptions 报价与外链配置
type RouterOptions struct {
	Markup          models.Money
	LiDefaultCost   models.Money
	LiDefaultCharge models.Money
	RLQuoteURL      string
	PirateshipURL   string
}

// QuoteInput 报价表单输入（价格为字符串，允许 $ 与千分位）
type QuoteInput struct {
	QuoteNumber   string `json:"quote_number"`
	QuotePrice    string `json:"quote_price"`
	CustomerPrice string `json:"customer_price"`
	QuoteURL      string `json:"quote_url"`
}

// SaveResult 保存结果，Refresh/Close 提示前端刷新快照并关闭面板
type SaveResult struct {
	State   RouterState       `json:"state"`
	Fields  map[string]string `json:"fields"`
	Refresh bool              `json:"refresh"`
	Close   bool              `json:"close"`
}

// RouterDefaults 面板预填值
type RouterDefaults struct {
	QuoteNumber   string `json:"quote_number,omitempty"`
	QuotePrice    string `json:"quote_price,omitempty"`
	CustomerPrice string `json:"customer_price,omitempty"`
	QuoteURL      string `json:"quote_url,omitempty"`
}

// RouterView 面板当前视图
type RouterView struct {
	ShipmentID     string           `json:"shipment_id"`
	State          RouterState      `json:"state"`
	Method         string           `json:"method"`
	Methods        []ShipMethodInfo `json:"methods"`
	RequiredFields []string         `json:"required_fields"`
	DeepLink       string           `json:"deep_link,omitempty"`
	Defaults       RouterDefaults   `json:"defaults"`
}

var methodStates = map[string]RouterState{
	constants.ShipMethodLTL:        StateLTLQuote,
	constants.ShipMethodPirateship: StatePirateshipQuote,
	constants.ShipMethodPickup:     StatePickupConfirm,
	constants.ShipMethodBoxTruck:   StateBoxTruckPricing,
	constants.ShipMethodLiDelivery: StateLiDeliveryPricing,
}

var stateFields = map[RouterState][]string{
	StateSelectMethod:      {"ship_method"},
	StateLTLQuote:          {"rl_quote_number", "rl_quote_price", "rl_customer_price", "quote_url"},
	StatePirateshipQuote:   {"ps_quote_url", "ps_quote_price"},
	StatePickupConfirm:     {"ship_method"},
	StateBoxTruckPricing:   {"quote_price", "customer_price"},
	StateLiDeliveryPricing: {"li_quote_price", "li_customer_price"},
}

// StateForMethod 由发货方式推导面板状态，未知或为空时回到选择状态
func StateForMethod(method string) RouterState {
	if state, ok := methodStates[strings.TrimSpace(method)]; ok {
		return state
	}
	return StateSelectMethod
}

// ShippingMethodRouter 单个发货单的发货方式面板状态机
type ShippingMethodRouter struct {
	shipment *models.Shipment
	patcher  ShipmentPatcher
	options  RouterOptions
	state    RouterState
	method   string
}

// NewShippingMethodRouter 根据已保存的发货方式创建状态机
func NewShippingMethodRouter(shipment *models.Shipment, patcher ShipmentPatcher, options RouterOptions) *ShippingMethodRouter {
	if shipment == nil {
		shipment = &models.Shipment{}
	}
	method := strings.TrimSpace(shipment.ShipMethod)
	state := StateForMethod(method)
	if state == StateSelectMethod {
		method = constants.ShipMethodNone
	}
	return &ShippingMethodRouter{
		shipment: shipment,
		patcher:  patcher,
		options:  options,
		state:    state,
		method:   method,
	}
}

// State 当前状态
func (r *ShippingMethodRouter) State() RouterState {
	return r.state
}

// Method 当前发货方式
func (r *ShippingMethodRouter) Method() string {
	return r.method
}

// SelectMethod 先写入 ship_method，成功后进入对应子状态；写入失败时停留在方式选择
func (r *ShippingMethodRouter) SelectMethod(ctx context.Context, method string) error {
	method = strings.TrimSpace(method)
	if !IsKnownShipMethod(method) {
		return ErrInvalidShipMethod
	}
	r.state = StateSelectMethod
	r.method = constants.ShipMethodNone
	if err := r.patch(ctx, url.Values{"ship_method": {method}}); err != nil {
		return fmt.Errorf("%w: %w", ErrMethodSaveFailed, err)
	}
	r.method = method
	r.shipment.ShipMethod = method
	r.state = StateForMethod(method)
	return nil
}

// ChangeMethod 返回选择状态，不写入任何字段
func (r *ShippingMethodRouter) ChangeMethod() {
	r.state = StateSelectMethod
}

// RequiredFields 当前状态写入的字段
func (r *ShippingMethodRouter) RequiredFields() []string {
	fields := stateFields[r.state]
	return append([]string(nil), fields...)
}

// DeepLink 当前状态对应的外部页面
func (r *ShippingMethodRouter) DeepLink() string {
	switch r.state {
	case StateLTLQuote:
		return r.options.RLQuoteURL
	case StatePirateshipQuote:
		return r.options.PirateshipURL
	default:
		return ""
	}
}

// SuggestedCustomerPrice 建议客户价 = 报价 + 加价，仅作提示
func (r *ShippingMethodRouter) SuggestedCustomerPrice(quote models.Money) models.Money {
	return SuggestCustomerPrice(quote, r.options.Markup)
}

// SuggestCustomerPrice 报价加价
func SuggestCustomerPrice(quote, markup models.Money) models.Money {
	return quote.Add(markup)
}

// Save 写入当前子状态的报价字段；失败时状态不变
func (r *ShippingMethodRouter) Save(ctx context.Context, input QuoteInput) (*SaveResult, error) {
	if r.state == StateSelectMethod {
		return nil, ErrMethodNotSelected
	}
	fields, err := r.quoteFields(input)
	if err != nil {
		return nil, err
	}
	if err := r.patch(ctx, fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuoteSaveFailed, err)
	}

	flat := make(map[string]string, len(fields))
	for key := range fields {
		flat[key] = fields.Get(key)
	}
	return &SaveResult{State: r.state, Fields: flat, Refresh: true, Close: true}, nil
}

// View 当前面板视图（含预填值）
func (r *ShippingMethodRouter) View() RouterView {
	return RouterView{
		ShipmentID:     r.shipment.ShipmentID.String(),
		State:          r.state,
		Method:         r.method,
		Methods:        ShipMethods(),
		RequiredFields: r.RequiredFields(),
		DeepLink:       r.DeepLink(),
		Defaults:       r.defaults(),
	}
}

func (r *ShippingMethodRouter) defaults() RouterDefaults {
	s := r.shipment
	switch r.state {
	case StateLTLQuote:
		d := RouterDefaults{QuoteNumber: s.RLQuoteNumber, QuoteURL: s.QuoteURL}
		if s.RLQuotePrice.IsSet() {
			d.QuotePrice = s.RLQuotePrice.String()
			d.CustomerPrice = r.SuggestedCustomerPrice(s.RLQuotePrice).String()
		}
		if s.RLCustomerPrice.IsSet() {
			d.CustomerPrice = s.RLCustomerPrice.String()
		}
		return d
	case StatePirateshipQuote:
		d := RouterDefaults{QuoteURL: s.PSQuoteURL}
		if s.PSQuotePrice.IsSet() {
			d.QuotePrice = s.PSQuotePrice.String()
		}
		return d
	case StateBoxTruckPricing:
		d := RouterDefaults{}
		if s.QuotePrice.IsSet() {
			d.QuotePrice = s.QuotePrice.String()
		}
		if s.CustomerPrice.IsSet() {
			d.CustomerPrice = s.CustomerPrice.String()
		}
		return d
	case StateLiDeliveryPricing:
		cost, charge := r.options.LiDefaultCost, r.options.LiDefaultCharge
		if s.LiQuotePrice.IsSet() {
			cost = s.LiQuotePrice
		}
		if s.LiCustomerPrice.IsSet() {
			charge = s.LiCustomerPrice
		}
		return RouterDefaults{QuotePrice: cost.String(), CustomerPrice: charge.String()}
	default:
		return RouterDefaults{}
	}
}

func (r *ShippingMethodRouter) quoteFields(input QuoteInput) (url.Values, error) {
	fields := url.Values{}
	switch r.state {
	case StateLTLQuote:
		setIfPresent(fields, "rl_quote_number", input.QuoteNumber)
		if err := setPriceIfPresent(fields, "rl_quote_price", input.QuotePrice); err != nil {
			return nil, err
		}
		if err := setPriceIfPresent(fields, "rl_customer_price", input.CustomerPrice); err != nil {
			return nil, err
		}
		// 未填客户价时按报价加价自动补齐
		if fields.Get("rl_customer_price") == "" && fields.Get("rl_quote_price") != "" {
			quote := models.ParseMoney(fields.Get("rl_quote_price"))
			fields.Set("rl_customer_price", r.SuggestedCustomerPrice(quote).String())
		}
		setIfPresent(fields, "quote_url", input.QuoteURL)
	case StatePirateshipQuote:
		setIfPresent(fields, "ps_quote_url", input.QuoteURL)
		if err := setPriceIfPresent(fields, "ps_quote_price", input.QuotePrice); err != nil {
			return nil, err
		}
	case StatePickupConfirm:
		fields.Set("ship_method", constants.ShipMethodPickup)
	case StateBoxTruckPricing:
		if err := setPriceIfPresent(fields, "quote_price", input.QuotePrice); err != nil {
			return nil, err
		}
		if err := setPriceIfPresent(fields, "customer_price", input.CustomerPrice); err != nil {
			return nil, err
		}
	case StateLiDeliveryPricing:
		cost, err := priceOrDefault(input.QuotePrice, r.options.LiDefaultCost)
		if err != nil {
			return nil, err
		}
		charge, err := priceOrDefault(input.CustomerPrice, r.options.LiDefaultCharge)
		if err != nil {
			return nil, err
		}
		fields.Set("li_quote_price", cost.String())
		fields.Set("li_customer_price", charge.String())
	}
	if len(fields) == 0 {
		return nil, ErrQuoteEmpty
	}
	return fields, nil
}

func (r *ShippingMethodRouter) patch(ctx context.Context, fields url.Values) error {
	if r.patcher == nil {
		return ErrUpdateIntentFailed
	}
	return r.patcher.PatchShipment(ctx, r.shipment.ShipmentID.String(), fields)
}

func setIfPresent(fields url.Values, key, value string) {
	if value = strings.TrimSpace(value); value != "" {
		fields.Set(key, value)
	}
}

func setPriceIfPresent(fields url.Values, key, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	price, err := parseQuotePrice(raw)
	if err != nil {
		return err
	}
	fields.Set(key, price.String())
	return nil
}

func priceOrDefault(raw string, fallback models.Money) (models.Money, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return parseQuotePrice(raw)
}

func parseQuotePrice(raw string) (models.Money, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return models.Money{}, fmt.Errorf("%w: %q", ErrInvalidQuotePrice, raw)
	}
	return models.NewMoneyFromDecimal(d), nil
}
