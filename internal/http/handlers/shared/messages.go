package shared

import "strings"

// 错误消息键与展示文案
var messages = map[string]string{
	"error.bad_request":               "bad request",
	"error.unauthorized":              "unauthorized",
	"error.token_invalid":             "session expired, please log in again",
	"error.forbidden":                 "forbidden",
	"error.not_found":                 "not found",
	"error.internal":                  "internal error",
	"error.too_many_requests":         "too many requests, please retry later",
	"error.login_too_many":            "too many login attempts, retry in %d seconds",
	"error.rate_limit_unavailable":    "rate limiter unavailable",
	"error.jwt_secret_missing":        "server session secret is not configured",
	"error.auth_header_missing":       "missing authorization header",
	"error.auth_header_invalid":       "authorization header must be Bearer <token>",
	"error.login_invalid":             "incorrect password",
	"error.auth_not_configured":       "login is not configured on this server",
	"error.order_not_found":           "order not found",
	"error.shipment_not_found":        "shipment not found",
	"error.order_status_invalid":      "unknown order status",
	"error.shipment_status_invalid":   "unknown shipment status",
	"error.ship_method_invalid":       "unknown ship method",
	"error.ship_method_not_selected":  "select a ship method first",
	"error.ship_method_save_failed":   "failed to save ship method",
	"error.quote_save_failed":         "failed to save quote",
	"error.quote_empty":               "enter at least one quote field",
	"error.quote_price_invalid":       "quote price must be a number",
	"error.tracking_required":         "tracking number is required",
	"error.tracking_unsupported":      "no tracking notice for this ship method",
	"error.update_intent_failed":      "update failed",
	"error.snapshot_unavailable":      "orders are unavailable right now",
	"error.sync_failed":               "sync failed",
	"error.backend_not_configured":    "order backend is not configured",
	"error.backend_unavailable":       "order backend unavailable",
	"error.backend_rejected":          "order backend rejected the request",
	"error.backend_response_invalid":  "order backend returned an invalid response",
	"error.setting_fetch_failed":      "failed to load settings",
	"error.setting_save_failed":       "failed to save settings",
	"error.preference_fetch_failed":   "failed to load preferences",
	"error.preference_save_failed":    "failed to save preferences",
	"error.intent_fetch_failed":       "failed to load update history",
	"error.order_fetch_failed":        "failed to load orders",
	"error.order_summary_id_required": "order id is required",
}

// Message 返回消息键对应的文案，未登记的键原样返回
func Message(key string) string {
	if msg, ok := messages[strings.TrimSpace(key)]; ok {
		return msg
	}
	return key
}
