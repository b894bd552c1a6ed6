package service

import (
	"strconv"
	"strings"

	"github.com/cfc-orderdesk/internal/backend"
	"github.com/cfc-orderdesk/internal/models"
)

// BillTo 运费账单抬头
type BillTo struct {
	Company string `json:"company"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Text 账单抬头整块复制文本
func (b BillTo) Text() string {
	return b.Company + "\n" + b.Street + "\n" + b.City + ", " + b.State + " " + b.Zip + "\n" + b.Phone + "\n" + b.Email
}

// RLQuoteOptions RL 询价辅助配置
type RLQuoteOptions struct {
	Markup            models.Money
	RLQuoteURL        string
	NotificationEmail string
	FreightClass      string
	Commodity         string
	BillTo            BillTo
}

// ClipboardBlock 可一键复制的文本块
type ClipboardBlock struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// RLQuoteView RL 询价辅助视图
type RLQuoteView struct {
	ShipmentID             string               `json:"shipment_id"`
	Data                   *backend.RLQuoteData `json:"data"`
	RateQuoteURL           string               `json:"rate_quote_url"`
	SuggestedCustomerPrice string               `json:"suggested_customer_price,omitempty"`
	CombinedEmails         string               `json:"combined_emails"`
	OversizedWarning       bool                 `json:"oversized_warning"`
	Saved                  bool                 `json:"saved"`
	Blocks                 []ClipboardBlock     `json:"blocks"`
	BillTo                 BillTo               `json:"bill_to"`
}

// CombinedNotificationEmails 目的地邮箱与公司通知邮箱合并
func CombinedNotificationEmails(destinationEmail, notificationEmail string) string {
	destinationEmail = strings.TrimSpace(destinationEmail)
	if destinationEmail == "" {
		return notificationEmail
	}
	return destinationEmail + ", " + notificationEmail
}

// BuildRLQuoteView 组装 RL 询价辅助视图
func BuildRLQuoteView(shipmentID string, data *backend.RLQuoteData, options RLQuoteOptions) RLQuoteView {
	if data == nil {
		data = &backend.RLQuoteData{}
	}
	view := RLQuoteView{
		ShipmentID:       shipmentID,
		Data:             data,
		RateQuoteURL:     options.RLQuoteURL,
		CombinedEmails:   CombinedNotificationEmails(data.Destination.Email, options.NotificationEmail),
		OversizedWarning: data.Oversized.Detected,
		BillTo:           options.BillTo,
	}
	if existing := data.ExistingQuote; existing != nil {
		if existing.QuotePrice.IsSet() {
			view.SuggestedCustomerPrice = SuggestCustomerPrice(existing.QuotePrice, options.Markup).String()
		}
		view.Saved = strings.TrimSpace(existing.QuoteURL) != ""
	}

	blocks := []ClipboardBlock{
		{Key: "origin_zip", Label: "Origin ZIP", Text: data.OriginZip},
		{Key: "dest_zip", Label: "Dest ZIP", Text: data.Destination.Zip},
		{Key: "weight", Label: "Weight", Text: formatWeight(float64(data.Weight.Value))},
		{Key: "freight_class", Label: "Class", Text: options.FreightClass},
		{Key: "commodity", Label: "Commodity", Text: options.Commodity},
		{Key: "notification_emails", Label: "Notification Emails", Text: view.CombinedEmails},
		{Key: "ship_to", Label: "Ship To", Text: destinationText(data.Destination)},
		{Key: "bill_to", Label: "Bill To", Text: options.BillTo.Text()},
	}
	view.Blocks = make([]ClipboardBlock, 0, len(blocks))
	for _, block := range blocks {
		if strings.TrimSpace(block.Text) == "" {
			continue
		}
		view.Blocks = append(view.Blocks, block)
	}
	return view
}

func destinationText(d backend.RLDestination) string {
	cityLine := ""
	if d.City != "" || d.State != "" || d.Zip != "" {
		cityLine = strings.TrimSpace(d.City + ", " + d.State + " " + d.Zip)
	}
	return joinNonEmpty("\n", d.Name, d.Street, d.Street2, cityLine, d.Phone, d.Email)
}

func formatWeight(value float64) string {
	if value <= 0 {
		return ""
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
