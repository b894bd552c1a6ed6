package service

import (
	"net/url"
	"strings"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
)

const (
	carrierRL      = "RL Carriers"
	carrierUPS     = "UPS"
	carrierUSPS    = "USPS"
	carrierFreight = "Freight"

	upsTrackingURL  = "https://www.ups.com/track?tracknum="
	uspsTrackingURL = "https://tools.usps.com/go/TrackConfirmAction?tLabels="
)

// TrackingNoticeOptions 追踪通知配置
type TrackingNoticeOptions struct {
	RLTrackingURL string
	TeamSignature string
}

// TrackingNotice 客户追踪通知（mailto 草稿）
type TrackingNotice struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url,omitempty"`
	To             string `json:"to"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	MailtoURL      string `json:"mailto_url"`
}

// DetectCarrier 根据发货方式与运单号推断承运商及追踪链接
func DetectCarrier(method, trackingNumber, rlTrackingURL string) (string, string) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	switch method {
	case constants.ShipMethodLTL:
		return carrierRL, rlTrackingURL + trackingNumber
	case constants.ShipMethodPirateship, constants.ShipMethodBoxTruck:
		if strings.HasPrefix(trackingNumber, "1Z") {
			return carrierUPS, upsTrackingURL + trackingNumber
		}
		if n := len(trackingNumber); n == 22 || n == 26 {
			return carrierUSPS, uspsTrackingURL + trackingNumber
		}
	}
	return carrierFreight, ""
}

// BuildTrackingNotice 生成发货追踪通知；Pickup 与 LiDelivery 不适用
func BuildTrackingNotice(order *models.Order, shipment *models.Shipment, trackingNumber string, options TrackingNoticeOptions) (*TrackingNotice, error) {
	if shipment == nil {
		return nil, ErrShipmentNotFound
	}
	if shipment.ShipMethod == constants.ShipMethodPickup || shipment.ShipMethod == constants.ShipMethodLiDelivery {
		return nil, ErrTrackingUnsupported
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		trackingNumber = strings.TrimSpace(shipment.TrackingNumber)
	}
	if trackingNumber == "" {
		return nil, ErrTrackingRequired
	}
	if order == nil {
		order = &models.Order{}
	}

	customerName := strings.TrimSpace(order.CustomerName)
	if customerName == "" {
		customerName = "Valued Customer"
	}
	companyName := strings.TrimSpace(order.CompanyName)
	if companyName == "" {
		companyName = customerName
	}
	orderID := order.OrderID.String()
	if orderID == "" {
		orderID = shipment.OrderID.String()
	}
	firstName := strings.Fields(customerName)[0]
	signature := options.TeamSignature
	if strings.TrimSpace(signature) == "" {
		signature = "The Cabinets For Contractors Team"
	}

	carrier, trackingURL := DetectCarrier(shipment.ShipMethod, trackingNumber, options.RLTrackingURL)
	trackLine := ""
	if trackingURL != "" {
		trackLine = "Track your shipment: " + trackingURL
	}

	subject := companyName + ", please see tracking information for order " + orderID
	var body strings.Builder
	body.WriteString("Hey " + firstName + ",\n\n")
	body.WriteString("Thank you for your business! Your order " + orderID + " has been shipped.\n\n")
	body.WriteString(carrier + " Tracking Number: " + trackingNumber + "\n")
	body.WriteString(trackLine + "\n\n")
	body.WriteString("Thank you for your business,\n")
	body.WriteString(signature)

	to := strings.TrimSpace(order.Email)
	return &TrackingNotice{
		Carrier:        carrier,
		TrackingNumber: trackingNumber,
		TrackingURL:    trackingURL,
		To:             to,
		Subject:        subject,
		Body:           body.String(),
		MailtoURL:      "mailto:" + to + "?subject=" + encodeURIComponent(subject) + "&body=" + encodeURIComponent(body.String()),
	}, nil
}

func encodeURIComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}
