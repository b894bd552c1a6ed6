package service

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/cfc-orderdesk/internal/backend"
	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/models"
	"github.com/cfc-orderdesk/internal/repository"
)

type backendCall struct {
	Method string
	ID     string
	Value  string
	Fields url.Values
}

type stubBackend struct {
	mu         sync.Mutex
	orders     []*models.Order
	fetchErr   error
	writeErr   error
	gmailErr   error
	summaryErr error
	rlQuote    *backend.RLQuoteData
	fetchCalls int
	calls      []backendCall
}

func (s *stubBackend) record(call backendCall) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	return s.writeErr
}

func (s *stubBackend) recorded() []backendCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]backendCall(nil), s.calls...)
}

func (s *stubBackend) fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchCalls
}

func (s *stubBackend) FetchOrders(_ context.Context, _ backend.FetchOrdersInput) ([]*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchCalls++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.orders, nil
}

func (s *stubBackend) SetOrderStatus(_ context.Context, orderID, status string) error {
	return s.record(backendCall{Method: "SetOrderStatus", ID: orderID, Value: status})
}

func (s *stubBackend) PatchOrderNotes(_ context.Context, orderID, notes string) error {
	return s.record(backendCall{Method: "PatchOrderNotes", ID: orderID, Value: notes})
}

func (s *stubBackend) GenerateSummary(_ context.Context, orderID string, force bool) error {
	if err := s.record(backendCall{Method: "GenerateSummary", ID: orderID, Value: strconv.FormatBool(force)}); err != nil {
		return err
	}
	return s.summaryErr
}

func (s *stubBackend) CancelOrder(_ context.Context, orderID string) error {
	return s.record(backendCall{Method: "CancelOrder", ID: orderID})
}

func (s *stubBackend) PatchShipment(_ context.Context, shipmentID string, fields url.Values) error {
	return s.record(backendCall{Method: "PatchShipment", ID: shipmentID, Fields: fields})
}

func (s *stubBackend) SetShipmentStatus(_ context.Context, shipmentID, status string) error {
	return s.record(backendCall{Method: "SetShipmentStatus", ID: shipmentID, Value: status})
}

func (s *stubBackend) SaveTracking(_ context.Context, shipmentID, trackingNumber string) error {
	return s.record(backendCall{Method: "SaveTracking", ID: shipmentID, Value: trackingNumber})
}

func (s *stubBackend) RLQuoteData(_ context.Context, shipmentID string) (*backend.RLQuoteData, error) {
	if err := s.record(backendCall{Method: "RLQuoteData", ID: shipmentID}); err != nil {
		return nil, err
	}
	return s.rlQuote, nil
}

func (s *stubBackend) RegenerateSummaries(_ context.Context, includeArchived bool) (*backend.SummaryBatchResult, error) {
	value := "false"
	if includeArchived {
		value = "true"
	}
	if err := s.record(backendCall{Method: "RegenerateSummaries", Value: value}); err != nil {
		return nil, err
	}
	return &backend.SummaryBatchResult{Success: 3, Total: 3}, nil
}

func (s *stubBackend) RegenerateOrderSummary(_ context.Context, orderID string) (*backend.OrderSummaryResult, error) {
	if err := s.record(backendCall{Method: "RegenerateOrderSummary", ID: orderID}); err != nil {
		return nil, err
	}
	return &backend.OrderSummaryResult{Summary: "ok"}, nil
}

func (s *stubBackend) SyncGmail(_ context.Context, hoursBack int) (models.JSON, error) {
	_ = s.record(backendCall{Method: "SyncGmail", Value: strconv.Itoa(hoursBack)})
	if s.gmailErr != nil {
		return nil, s.gmailErr
	}
	return models.JSON{"processed": 2}, nil
}

func (s *stubBackend) SyncB2BWave(_ context.Context, daysBack int) (models.JSON, error) {
	if err := s.record(backendCall{Method: "SyncB2BWave", Value: strconv.Itoa(daysBack)}); err != nil {
		return nil, err
	}
	return models.JSON{"synced": 5}, nil
}

func callsByMethod(calls []backendCall, method string) []backendCall {
	result := make([]backendCall, 0)
	for _, call := range calls {
		if call.Method == method {
			result = append(result, call)
		}
	}
	return result
}

type serviceFixture struct {
	backend   *stubBackend
	intents   *IntentService
	intentDB  *repository.GormUpdateIntentRepository
	settings  *SettingService
	orders    *OrderService
	shipments *ShipmentService
	sync      *SyncService
}

func newServiceFixture(t *testing.T, orders []*models.Order) *serviceFixture {
	t.Helper()
	db := setupServiceTestDB(t)
	stub := &stubBackend{orders: orders}
	intentRepo := repository.NewUpdateIntentRepository(db)
	intents := NewIntentService(intentRepo)
	settings := NewSettingService(repository.NewSettingRepository(db), testShippingConfig())
	orderSvc := NewOrderService(stub, intents, config.BackendConfig{OrderLimit: 200, SnapshotTTL: 300}, time.UTC)
	return &serviceFixture{
		backend:   stub,
		intents:   intents,
		intentDB:  intentRepo,
		settings:  settings,
		orders:    orderSvc,
		shipments: NewShipmentService(orderSvc, stub, settings, intents),
		sync:      NewSyncService(stub, nil, intents, orderSvc),
	}
}

func fixtureOrders() []*models.Order {
	return []*models.Order{
		{
			OrderID:       "42",
			CustomerName:  "Jane Smith",
			CompanyName:   "Smith Builders",
			Street:        "12 Oak Rd",
			Unit:          "4",
			City:          "Austin",
			State:         "TX",
			ZipCode:       "78701",
			Phone:         "5125550100",
			Email:         "jane@example.com",
			OrderDate:     "2024-01-01",
			OrderTotal:    models.NewMoneyFromInt(1000),
			CurrentStatus: "needs_bol",
			Comments:      "Please call before delivery",
			Shipments: models.ShipmentList{
				{
					ShipmentID:      "s1",
					OrderID:         "42",
					Warehouse:       "LI",
					Status:          "needs_bol",
					ShipMethod:      "LTL",
					RLQuotePrice:    models.NewMoneyFromInt(100),
					RLCustomerPrice: models.NewMoneyFromInt(150),
				},
				{
					ShipmentID: "s2",
					OrderID:    "42",
					Status:     "needs_order",
					ShipMethod: "Pickup",
				},
			},
		},
		{OrderID: "43", CurrentStatus: "complete", OrderDate: "2024-01-02"},
		{OrderID: "44", CurrentStatus: "canceled", OrderDate: "2024-01-02"},
	}
}
