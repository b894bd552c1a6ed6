package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/logger"
	"github.com/cfc-orderdesk/internal/models"
)

// TrackingResult 保存运单号的结果，Notice 为空表示该发货方式不发送通知
type TrackingResult struct {
	ShipmentID     string          `json:"shipment_id"`
	TrackingNumber string          `json:"tracking_number"`
	Notice         *TrackingNotice `json:"notice,omitempty"`
}

// ShipmentService 发货单更新意图与发货辅助流程
type ShipmentService struct {
	orders   *OrderService
	backend  OrderBackend
	settings *SettingService
	intents  *IntentService
}

// NewShipmentService 创建发货单服务
func NewShipmentService(orders *OrderService, orderBackend OrderBackend, settings *SettingService, intents *IntentService) *ShipmentService {
	return &ShipmentService{
		orders:   orders,
		backend:  orderBackend,
		settings: settings,
		intents:  intents,
	}
}

// SetStatus 更新发货单状态
func (s *ShipmentService) SetStatus(ctx context.Context, shipmentID, status, requestID string) error {
	status = strings.TrimSpace(status)
	if !IsKnownShipmentStatus(status) {
		return ErrInvalidShipStatus
	}
	_, shipment, err := s.orders.FindShipment(ctx, shipmentID)
	if err != nil {
		return err
	}
	id := shipment.ShipmentID.String()
	return s.orders.runIntent(ctx, IntentRecord{
		Action:     constants.IntentPatchShipment,
		TargetType: models.IntentTargetShipment,
		TargetID:   id,
		Payload:    models.JSON{"status": status, "previous_status": shipment.Status},
		RequestID:  requestID,
	}, func(ctx context.Context) error {
		return s.backend.SetShipmentStatus(ctx, id, status)
	})
}

// SaveTracking 写入运单号并标记已发货，成功后生成追踪通知
func (s *ShipmentService) SaveTracking(ctx context.Context, shipmentID, trackingNumber, requestID string) (*TrackingResult, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, ErrTrackingRequired
	}
	order, shipment, err := s.orders.FindShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	id := shipment.ShipmentID.String()
	err = s.orders.runStagedIntent(ctx, IntentRecord{
		Action:     constants.IntentSaveTracking,
		TargetType: models.IntentTargetShipment,
		TargetID:   id,
		Payload:    models.JSON{"tracking_number": trackingNumber, "status": constants.ShipmentStatusShipped},
		RequestID:  requestID,
	}, func(ctx context.Context) error {
		return s.backend.SaveTracking(ctx, id, trackingNumber)
	})
	if err != nil {
		return nil, err
	}

	result := &TrackingResult{ShipmentID: id, TrackingNumber: trackingNumber}
	notice, err := BuildTrackingNotice(order, shipment, trackingNumber, s.settings.TrackingNoticeOptions())
	switch {
	case err == nil:
		result.Notice = notice
	case errors.Is(err, ErrTrackingUnsupported):
	default:
		logger.WithRequest(requestID).Warnw("tracking_notice_build_failed", "shipment_id", id, "error", err)
	}
	return result, nil
}

// TrackingNotice 按已保存的运单号生成追踪通知
func (s *ShipmentService) TrackingNotice(ctx context.Context, shipmentID string) (*TrackingNotice, error) {
	order, shipment, err := s.orders.FindShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	return BuildTrackingNotice(order, shipment, "", s.settings.TrackingNoticeOptions())
}

// MethodView 当前发货方式面板
func (s *ShipmentService) MethodView(ctx context.Context, shipmentID string) (RouterView, error) {
	router, err := s.router(ctx, shipmentID, "")
	if err != nil {
		return RouterView{}, err
	}
	return router.View(), nil
}

// SelectMethod 选择发货方式
func (s *ShipmentService) SelectMethod(ctx context.Context, shipmentID, method, requestID string) (RouterView, error) {
	router, err := s.router(ctx, shipmentID, requestID)
	if err != nil {
		return RouterView{}, err
	}
	if err := router.SelectMethod(ctx, method); err != nil {
		return router.View(), err
	}
	s.orders.refreshAfterIntent(ctx, requestID)
	return router.View(), nil
}

// ChangeMethod 返回方式选择，不写入后端
func (s *ShipmentService) ChangeMethod(ctx context.Context, shipmentID string) (RouterView, error) {
	router, err := s.router(ctx, shipmentID, "")
	if err != nil {
		return RouterView{}, err
	}
	router.ChangeMethod()
	return router.View(), nil
}

// SaveQuote 保存当前发货方式的报价字段
func (s *ShipmentService) SaveQuote(ctx context.Context, shipmentID string, input QuoteInput, requestID string) (*SaveResult, error) {
	router, err := s.router(ctx, shipmentID, requestID)
	if err != nil {
		return nil, err
	}
	result, err := router.Save(ctx, input)
	if err != nil {
		return nil, err
	}
	s.orders.refreshAfterIntent(ctx, requestID)
	return result, nil
}

// RLQuote RL 询价辅助视图
func (s *ShipmentService) RLQuote(ctx context.Context, shipmentID string) (*RLQuoteView, error) {
	shipmentID = strings.TrimSpace(shipmentID)
	if shipmentID == "" {
		return nil, ErrShipmentNotFound
	}
	options, err := s.settings.RLQuoteOptions()
	if err != nil {
		return nil, err
	}
	data, err := s.backend.RLQuoteData(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	view := BuildRLQuoteView(shipmentID, data, options)
	return &view, nil
}

func (s *ShipmentService) router(ctx context.Context, shipmentID, requestID string) (*ShippingMethodRouter, error) {
	_, shipment, err := s.orders.FindShipment(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	options, err := s.settings.RouterOptions()
	if err != nil {
		return nil, err
	}
	// 快照只读，状态机在副本上推进
	working := *shipment
	patcher := &auditedShipmentPatcher{backend: s.backend, intents: s.intents, requestID: requestID}
	return NewShippingMethodRouter(&working, patcher, options), nil
}

// auditedShipmentPatcher 记录审计的发货单字段写入
type auditedShipmentPatcher struct {
	backend   OrderBackend
	intents   *IntentService
	requestID string
}

func (p *auditedShipmentPatcher) PatchShipment(ctx context.Context, shipmentID string, fields url.Values) error {
	payload := models.JSON{}
	for key := range fields {
		payload[key] = fields.Get(key)
	}
	return p.intents.Execute(ctx, IntentRecord{
		Action:     constants.IntentPatchShipment,
		TargetType: models.IntentTargetShipment,
		TargetID:   shipmentID,
		Payload:    payload,
		RequestID:  p.requestID,
	}, func(ctx context.Context) error {
		return p.backend.PatchShipment(ctx, shipmentID, fields)
	})
}
