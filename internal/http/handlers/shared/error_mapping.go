package shared

import (
	"errors"

	"github.com/cfc-orderdesk/internal/backend"
	"github.com/cfc-orderdesk/internal/http/response"
	"github.com/cfc-orderdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// BackendErrorRules 后端不可用类错误
var BackendErrorRules = []MappedError{
	{Target: backend.ErrNotConfigured, Code: response.CodeServiceUnavailable, Key: "error.backend_not_configured"},
	{Target: backend.ErrUnavailable, Code: response.CodeBadGateway, Key: "error.backend_unavailable"},
	{Target: backend.ErrRejected, Code: response.CodeBadGateway, Key: "error.backend_rejected"},
	{Target: backend.ErrResponseInvalid, Code: response.CodeBadGateway, Key: "error.backend_response_invalid"},
	{Target: service.ErrSnapshotUnavailable, Code: response.CodeServiceUnavailable, Key: "error.snapshot_unavailable"},
}

// LookupRules 订单/发货单查找类错误
var LookupRules = []MappedError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrShipmentNotFound, Code: response.CodeNotFound, Key: "error.shipment_not_found"},
}

// ValidationRules 输入校验类错误
var ValidationRules = []MappedError{
	{Target: service.ErrInvalidOrderStatus, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrInvalidShipStatus, Code: response.CodeBadRequest, Key: "error.shipment_status_invalid"},
	{Target: service.ErrInvalidShipMethod, Code: response.CodeBadRequest, Key: "error.ship_method_invalid"},
	{Target: service.ErrMethodNotSelected, Code: response.CodeBadRequest, Key: "error.ship_method_not_selected"},
	{Target: service.ErrQuoteEmpty, Code: response.CodeBadRequest, Key: "error.quote_empty"},
	{Target: service.ErrInvalidQuotePrice, Code: response.CodeBadRequest, Key: "error.quote_price_invalid"},
	{Target: service.ErrTrackingRequired, Code: response.CodeBadRequest, Key: "error.tracking_required"},
	{Target: service.ErrTrackingUnsupported, Code: response.CodeBadRequest, Key: "error.tracking_unsupported"},
}

// SaveRules 写入失败类错误，优先于后端错误匹配以给出具体文案
var SaveRules = []MappedError{
	{Target: service.ErrMethodSaveFailed, Code: response.CodeBadGateway, Key: "error.ship_method_save_failed"},
	{Target: service.ErrQuoteSaveFailed, Code: response.CodeBadGateway, Key: "error.quote_save_failed"},
	{Target: service.ErrSyncFailed, Code: response.CodeBadGateway, Key: "error.sync_failed"},
}

// ConcatMappedErrors 合并多组映射规则
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// RespondWithMappedError 按规则映射业务错误；更新意图失败时在响应中带上失败的动作名。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			if action := service.IntentAction(err); action != "" {
				RespondIntentError(c, rule.Code, Message(rule.Key), action, err)
				return
			}
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	if action := service.IntentAction(err); action != "" {
		RespondIntentError(c, response.CodeBadGateway, Message("error.update_intent_failed")+": "+action, action, err)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}
