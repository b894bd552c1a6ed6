package service

import (
	"context"
	"net/url"

	"github.com/cfc-orderdesk/internal/backend"
	"github.com/cfc-orderdesk/internal/models"
)

// OrderBackend 订单与发货单相关的远端接口
type OrderBackend interface {
	FetchOrders(ctx context.Context, input backend.FetchOrdersInput) ([]*models.Order, error)
	SetOrderStatus(ctx context.Context, orderID, status string) error
	PatchOrderNotes(ctx context.Context, orderID, notes string) error
	GenerateSummary(ctx context.Context, orderID string, force bool) error
	CancelOrder(ctx context.Context, orderID string) error
	PatchShipment(ctx context.Context, shipmentID string, fields url.Values) error
	SetShipmentStatus(ctx context.Context, shipmentID, status string) error
	SaveTracking(ctx context.Context, shipmentID, trackingNumber string) error
	RLQuoteData(ctx context.Context, shipmentID string) (*backend.RLQuoteData, error)
}

// SyncBackend 摘要与外部同步相关的远端接口
type SyncBackend interface {
	RegenerateSummaries(ctx context.Context, includeArchived bool) (*backend.SummaryBatchResult, error)
	RegenerateOrderSummary(ctx context.Context, orderID string) (*backend.OrderSummaryResult, error)
	SyncGmail(ctx context.Context, hoursBack int) (models.JSON, error)
	SyncB2BWave(ctx context.Context, daysBack int) (models.JSON, error)
}

var (
	_ OrderBackend = (*backend.Client)(nil)
	_ SyncBackend  = (*backend.Client)(nil)
)
