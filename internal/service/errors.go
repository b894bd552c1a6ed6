package service

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAuthNotConfigured   = errors.New("shared password not configured")
	ErrOrderNotFound       = errors.New("order not found")
	ErrShipmentNotFound    = errors.New("shipment not found")
	ErrInvalidOrderStatus  = errors.New("invalid order status")
	ErrInvalidShipStatus   = errors.New("invalid shipment status")
	ErrInvalidShipMethod   = errors.New("invalid ship method")
	ErrMethodSaveFailed    = errors.New("ship method save failed")
	ErrQuoteSaveFailed     = errors.New("quote save failed")
	ErrQuoteEmpty          = errors.New("quote fields required")
	ErrInvalidQuotePrice   = errors.New("invalid quote price")
	ErrMethodNotSelected   = errors.New("ship method not selected")
	ErrTrackingRequired    = errors.New("tracking number required")
	ErrTrackingUnsupported = errors.New("tracking notice not available for ship method")
	ErrUpdateIntentFailed  = errors.New("update intent failed")
	ErrSnapshotUnavailable = errors.New("order snapshot unavailable")
	ErrSyncFailed          = errors.New("sync failed")
)
