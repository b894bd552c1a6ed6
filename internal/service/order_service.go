package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cfc-orderdesk/internal/backend"
	"github.com/cfc-orderdesk/internal/cache"
	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/logger"
	"github.com/cfc-orderdesk/internal/models"
)

const (
	defaultSnapshotTTL     = 5 * time.Minute
	snapshotCacheRetention = 24 * time.Hour
	defaultOrderFetchLimit = 200
)

// OrderBoardQuery 看板筛选参数
type OrderBoardQuery struct {
	Status   string
	Archived bool
}

// OrderBoard 订单看板
type OrderBoard struct {
	Orders        []OrderView    `json:"orders"`
	Counts        map[string]int `json:"counts"`
	ActiveCount   int            `json:"active_count"`
	ArchivedCount int            `json:"archived_count"`
	Total         int            `json:"total"`
	StatusFilter  string         `json:"status_filter"`
	Archived      bool           `json:"archived"`
	FetchedAt     time.Time      `json:"fetched_at"`
	Stale         bool           `json:"stale"`
}

// OrderView 订单及其派生展示字段
type OrderView struct {
	*models.Order
	StatusInfo      StatusInfo       `json:"status_info"`
	DisplayName     string           `json:"display_name"`
	AgeLabel        string           `json:"age_label"`
	CriticalFlags   []CriticalFlag   `json:"critical_flags"`
	CriticalSource  string           `json:"critical_source"`
	CriticalBadges  []string         `json:"critical_badges"`
	CommentSegments []TextSegment    `json:"comment_segments"`
	NoteSegments    []TextSegment    `json:"note_segments"`
	Shipping        ShippingSummary  `json:"shipping"`
	GrandTotal      models.Money     `json:"grand_total"`
	Address         FormattedAddress `json:"address"`
	Shipments       []ShipmentView   `json:"shipments"`
}

// ShipmentView 发货单及其派生展示字段
type ShipmentView struct {
	*models.Shipment
	StatusInfo      StatusInfo     `json:"status_info"`
	MethodInfo      ShipMethodInfo `json:"method_info"`
	RouterState     RouterState    `json:"router_state"`
	CustomerCharge  models.Money   `json:"customer_charge"`
	Cost            models.Money   `json:"cost"`
	NoticeAvailable bool           `json:"notice_available"`
}

// OrderService 订单快照与订单更新意图
type OrderService struct {
	backend OrderBackend
	intents *IntentService
	limit   int
	ttl     time.Duration
	loc     *time.Location

	mu       sync.RWMutex
	snapshot *cache.OrderSnapshot
	dirty    bool
}

// NewOrderService 创建订单服务
func NewOrderService(orderBackend OrderBackend, intents *IntentService, cfg config.BackendConfig, loc *time.Location) *OrderService {
	limit := cfg.OrderLimit
	if limit <= 0 {
		limit = defaultOrderFetchLimit
	}
	ttl := time.Duration(cfg.SnapshotTTL) * time.Second
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	if loc == nil {
		loc = time.Local
	}
	return &OrderService{
		backend: orderBackend,
		intents: intents,
		limit:   limit,
		ttl:     ttl,
		loc:     loc,
	}
}

// Location 业务时区
func (s *OrderService) Location() *time.Location {
	return s.loc
}

// Snapshot 返回当前订单快照；过期时优先采用 Redis 中更新的快照，否则重新拉取
// 拉取失败但已有旧快照时返回旧快照并标记 stale。
func (s *OrderService) Snapshot(ctx context.Context) (*cache.OrderSnapshot, bool, error) {
	current, dirty := s.current()
	if current != nil && !dirty && time.Since(current.FetchedAt) < s.ttl {
		return current, false, nil
	}

	if shared, ok, err := cache.GetOrderSnapshot(ctx); err != nil {
		logger.Warnw("order_snapshot_cache_read_failed", "error", err)
	} else if ok && !dirty && time.Since(shared.FetchedAt) < s.ttl && (current == nil || shared.FetchedAt.After(current.FetchedAt)) {
		s.swap(shared)
		return shared, false, nil
	}

	fresh, err := s.Refresh(ctx)
	if err == nil {
		return fresh, false, nil
	}
	if current != nil {
		logger.Warnw("order_snapshot_serving_stale", "fetched_at", current.FetchedAt, "error", err)
		return current, true, nil
	}
	return nil, false, err
}

// Refresh 重新拉取全部订单并整体替换快照
func (s *OrderService) Refresh(ctx context.Context) (*cache.OrderSnapshot, error) {
	if s.backend == nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, backend.ErrNotConfigured)
	}
	orders, err := s.backend.FetchOrders(ctx, backend.FetchOrdersInput{Limit: s.limit, IncludeComplete: true})
	if err != nil {
		logger.Warnw("order_snapshot_fetch_failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSnapshotUnavailable, err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	snapshot := &cache.OrderSnapshot{
		FetchedAt:       time.Now(),
		IncludeComplete: true,
		Orders:          orders,
	}
	s.swap(snapshot)
	if err := cache.SetOrderSnapshot(ctx, snapshot, snapshotCacheRetention); err != nil {
		logger.Warnw("order_snapshot_cache_failed", "error", err)
	}
	logger.Debugw("order_snapshot_refreshed", "count", len(orders))
	return snapshot, nil
}

// Invalidate 标记快照待刷新，下次读取时重新拉取，拉取失败仍可回退到旧快照
func (s *OrderService) Invalidate() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

// Board 生成订单看板
func (s *OrderService) Board(ctx context.Context, query OrderBoardQuery, now time.Time) (*OrderBoard, error) {
	snapshot, stale, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	statusFilter := strings.TrimSpace(query.Status)
	filtered := FilterOrders(snapshot.Orders, statusFilter, query.Archived)
	views := make([]OrderView, 0, len(filtered))
	for _, order := range filtered {
		views = append(views, s.BuildOrderView(order, now))
	}
	return &OrderBoard{
		Orders:        views,
		Counts:        CountsByStatus(snapshot.Orders),
		ActiveCount:   ActiveCount(snapshot.Orders),
		ArchivedCount: ArchivedCount(snapshot.Orders),
		Total:         len(views),
		StatusFilter:  statusFilter,
		Archived:      query.Archived,
		FetchedAt:     snapshot.FetchedAt,
		Stale:         stale,
	}, nil
}

// GetOrder 获取单个订单视图
func (s *OrderService) GetOrder(ctx context.Context, orderID string, now time.Time) (*OrderView, error) {
	order, err := s.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	view := s.BuildOrderView(order, now)
	return &view, nil
}

// FindOrder 在快照中查找订单
func (s *OrderService) FindOrder(ctx context.Context, orderID string) (*models.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, ErrOrderNotFound
	}
	snapshot, _, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, order := range snapshot.Orders {
		if order != nil && order.OrderID.String() == orderID {
			return order, nil
		}
	}
	return nil, ErrOrderNotFound
}

// FindShipment 在快照中查找发货单及其所属订单
func (s *OrderService) FindShipment(ctx context.Context, shipmentID string) (*models.Order, *models.Shipment, error) {
	shipmentID = strings.TrimSpace(shipmentID)
	if shipmentID == "" {
		return nil, nil, ErrShipmentNotFound
	}
	snapshot, _, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, order := range snapshot.Orders {
		if shipment := order.FindShipment(shipmentID); shipment != nil {
			return order, shipment, nil
		}
	}
	return nil, nil, ErrShipmentNotFound
}

// ClipboardAddress 订单收货地址的剪贴板文本
func (s *OrderService) ClipboardAddress(ctx context.Context, orderID string) (FormattedAddress, string, error) {
	order, err := s.FindOrder(ctx, orderID)
	if err != nil {
		return FormattedAddress{}, "", err
	}
	address := FormatOrderAddress(order)
	return address, AddressClipboardText(address), nil
}

// SetStatus 更新订单状态
func (s *OrderService) SetStatus(ctx context.Context, orderID, status, requestID string) error {
	status = strings.TrimSpace(status)
	if !IsKnownOrderStatus(status) {
		return ErrInvalidOrderStatus
	}
	order, err := s.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.runIntent(ctx, IntentRecord{
		Action:     constants.IntentSetOrderStatus,
		TargetType: models.IntentTargetOrder,
		TargetID:   order.OrderID.String(),
		Payload:    models.JSON{"status": status, "previous_status": order.CurrentStatus},
		RequestID:  requestID,
	}, func(ctx context.Context) error {
		return s.backend.SetOrderStatus(ctx, order.OrderID.String(), status)
	})
}

// UpdateNotes 覆盖订单备注，随后强制重建 AI 摘要使关键备注跟随新备注
// 摘要重建失败只记录日志，备注写入仍视为成功。
func (s *OrderService) UpdateNotes(ctx context.Context, orderID, notes, requestID string) error {
	order, err := s.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}
	id := order.OrderID.String()
	return s.runIntent(ctx, IntentRecord{
		Action:     constants.IntentPatchOrderNotes,
		TargetType: models.IntentTargetOrder,
		TargetID:   id,
		Payload:    models.JSON{"notes": notes, "regenerate_summary": true},
		RequestID:  requestID,
	}, func(ctx context.Context) error {
		if err := s.backend.PatchOrderNotes(ctx, id, notes); err != nil {
			return err
		}
		if err := s.backend.GenerateSummary(ctx, id, true); err != nil {
			logger.WithRequest(requestID).Warnw("order_summary_regenerate_failed", "order_id", id, "error", err)
		}
		return nil
	})
}

// Cancel 取消订单
func (s *OrderService) Cancel(ctx context.Context, orderID, requestID string) error {
	order, err := s.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.runStagedIntent(ctx, IntentRecord{
		Action:     constants.IntentCancelOrder,
		TargetType: models.IntentTargetOrder,
		TargetID:   order.OrderID.String(),
		Payload:    models.JSON{"status": constants.OrderStatusCanceled, "previous_status": order.CurrentStatus},
		RequestID:  requestID,
	}, func(ctx context.Context) error {
		return s.backend.CancelOrder(ctx, order.OrderID.String())
	})
}

// BuildOrderView 计算订单派生字段
func (s *OrderService) BuildOrderView(order *models.Order, now time.Time) OrderView {
	flags, source := OrderCriticalFlags(order)
	shipments := make([]ShipmentView, 0, len(order.Shipments))
	for _, shipment := range order.Shipments {
		if shipment == nil {
			continue
		}
		shipments = append(shipments, BuildShipmentView(shipment))
	}
	return OrderView{
		Order:           order,
		StatusInfo:      LookupOrderStatus(order.CurrentStatus),
		DisplayName:     DisplayName(order),
		AgeLabel:        OrderAgeLabel(order.OrderDate, now.In(s.loc)),
		CriticalFlags:   flags,
		CriticalSource:  source,
		CriticalBadges:  UniqueCriticalLabels(flags),
		CommentSegments: HighlightCritical(order.Comments),
		NoteSegments:    HighlightCritical(order.Notes),
		Shipping:        AggregateShipping(order.Shipments),
		GrandTotal:      OrderGrandTotal(order),
		Address:         FormatOrderAddress(order),
		Shipments:       shipments,
	}
}

// BuildShipmentView 计算发货单派生字段
func BuildShipmentView(shipment *models.Shipment) ShipmentView {
	method := shipment.ShipMethod
	return ShipmentView{
		Shipment:        shipment,
		StatusInfo:      LookupShipmentStatus(shipment.Status),
		MethodInfo:      LookupShipMethod(method),
		RouterState:     StateForMethod(method),
		CustomerCharge:  ShipmentCustomerCharge(shipment),
		Cost:            ShipmentCost(shipment),
		NoticeAvailable: method != constants.ShipMethodPickup && method != constants.ShipMethodLiDelivery,
	}
}

// runIntent 执行更新意图，成功后重新拉取快照
func (s *OrderService) runIntent(ctx context.Context, record IntentRecord, fn func(ctx context.Context) error) error {
	if s.backend == nil {
		return &IntentError{Action: record.Action, Err: backend.ErrNotConfigured}
	}
	if err := s.intents.Execute(ctx, record, fn); err != nil {
		return err
	}
	s.refreshAfterIntent(ctx, record.RequestID)
	return nil
}

// runStagedIntent 执行多步写入；失败时前几步可能已生效，标记快照待刷新
func (s *OrderService) runStagedIntent(ctx context.Context, record IntentRecord, fn func(ctx context.Context) error) error {
	err := s.runIntent(ctx, record, fn)
	if err != nil && s.backend != nil {
		s.Invalidate()
	}
	return err
}

func (s *OrderService) refreshAfterIntent(ctx context.Context, requestID string) {
	if _, err := s.Refresh(ctx); err != nil {
		logger.WithRequest(requestID).Warnw("order_snapshot_refresh_after_intent_failed", "error", err)
		s.Invalidate()
	}
}

func (s *OrderService) current() (*cache.OrderSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, s.dirty
}

func (s *OrderService) swap(snapshot *cache.OrderSnapshot) {
	s.mu.Lock()
	s.snapshot = snapshot
	s.dirty = false
	s.mu.Unlock()
}
