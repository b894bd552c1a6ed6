package service

import (
	"strings"

	"github.com/cfc-orderdesk/internal/constants"
)

// StatusInfo 状态展示信息
// Ordinal 从 1 开始；canceled 等旁路状态为 0。
type StatusInfo struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Color   string `json:"color"`
	Ordinal int    `json:"ordinal"`
}

// ShipMethodInfo 发货方式展示信息
type ShipMethodInfo struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var orderStatusCatalog = []StatusInfo{
	{Code: constants.OrderStatusNeedsPaymentLink, Label: "1-Need Invoice", Color: "#f44336", Ordinal: 1},
	{Code: constants.OrderStatusAwaitingPayment, Label: "2-Awaiting Pay", Color: "#ff9800", Ordinal: 2},
	{Code: constants.OrderStatusNeedsWarehouseOrder, Label: "3-Need to Order", Color: "#9c27b0", Ordinal: 3},
	{Code: constants.OrderStatusAwaitingWarehouse, Label: "4-At Warehouse", Color: "#2196f3", Ordinal: 4},
	{Code: constants.OrderStatusNeedsBOL, Label: "5-Need BOL", Color: "#00bcd4", Ordinal: 5},
	{Code: constants.OrderStatusAwaitingShipment, Label: "6-Ready Ship", Color: "#4caf50", Ordinal: 6},
	{Code: constants.OrderStatusComplete, Label: "Complete", Color: "#9e9e9e", Ordinal: 7},
	{Code: constants.OrderStatusCanceled, Label: "Canceled", Color: "#795548", Ordinal: 0},
}

var shipmentStatusCatalog = []StatusInfo{
	{Code: constants.ShipmentStatusNeedsOrder, Label: "Pending", Color: "#f44336", Ordinal: 1},
	{Code: constants.ShipmentStatusAtWarehouse, Label: "At Warehouse", Color: "#9c27b0", Ordinal: 2},
	{Code: constants.ShipmentStatusNeedsBOL, Label: "Needs BOL", Color: "#00bcd4", Ordinal: 3},
	{Code: constants.ShipmentStatusReadyShip, Label: "Ready Ship", Color: "#4caf50", Ordinal: 4},
	{Code: constants.ShipmentStatusShipped, Label: "Shipped", Color: "#607d8b", Ordinal: 5},
	{Code: constants.ShipmentStatusDelivered, Label: "Delivered", Color: "#9e9e9e", Ordinal: 6},
}

var shipMethodCatalog = []ShipMethodInfo{
	{Code: constants.ShipMethodNone, Label: "Select..."},
	{Code: constants.ShipMethodLTL, Label: "LTL"},
	{Code: constants.ShipMethodPirateship, Label: "Pirateship"},
	{Code: constants.ShipMethodPickup, Label: "Pickup"},
	{Code: constants.ShipMethodBoxTruck, Label: "BoxTruck"},
	{Code: constants.ShipMethodLiDelivery, Label: "Li_Delivery"},
}

var (
	orderStatusIndex    = indexStatuses(orderStatusCatalog)
	shipmentStatusIndex = indexStatuses(shipmentStatusCatalog)
)

func indexStatuses(list []StatusInfo) map[string]StatusInfo {
	index := make(map[string]StatusInfo, len(list))
	for _, item := range list {
		index[item.Code] = item
	}
	return index
}

// LookupOrderStatus 查询订单状态，未知状态回退为 needs_payment_link
func LookupOrderStatus(code string) StatusInfo {
	if info, ok := orderStatusIndex[strings.TrimSpace(code)]; ok {
		return info
	}
	return orderStatusCatalog[0]
}

// LookupShipmentStatus 查询发货单状态，未知状态（含旧值 pending）回退为 needs_order
func LookupShipmentStatus(code string) StatusInfo {
	if info, ok := shipmentStatusIndex[strings.TrimSpace(code)]; ok {
		return info
	}
	return shipmentStatusCatalog[0]
}

// LookupShipMethod 查询发货方式，未知值回退为未选择
func LookupShipMethod(code string) ShipMethodInfo {
	normalized := strings.TrimSpace(code)
	for _, item := range shipMethodCatalog {
		if item.Code == normalized {
			return item
		}
	}
	return shipMethodCatalog[0]
}

// OrderStatuses 返回全部订单状态（流程顺序，canceled 在最后）
func OrderStatuses() []StatusInfo {
	return append([]StatusInfo(nil), orderStatusCatalog...)
}

// ShipmentStatuses 返回全部发货单状态
func ShipmentStatuses() []StatusInfo {
	return append([]StatusInfo(nil), shipmentStatusCatalog...)
}

// ShipMethods 返回全部发货方式（含未选择）
func ShipMethods() []ShipMethodInfo {
	return append([]ShipMethodInfo(nil), shipMethodCatalog...)
}

// ActiveOrderStatuses 返回非终态订单状态
func ActiveOrderStatuses() []string {
	result := make([]string, 0, len(orderStatusCatalog))
	for _, item := range orderStatusCatalog {
		if !IsTerminalOrderStatus(item.Code) {
			result = append(result, item.Code)
		}
	}
	return result
}

// IsTerminalOrderStatus complete 与 canceled 为终态
func IsTerminalOrderStatus(code string) bool {
	switch strings.TrimSpace(code) {
	case constants.OrderStatusComplete, constants.OrderStatusCanceled:
		return true
	default:
		return false
	}
}

// IsKnownOrderStatus 是否为已知订单状态
func IsKnownOrderStatus(code string) bool {
	_, ok := orderStatusIndex[code]
	return ok
}

// IsKnownShipmentStatus 是否为已知发货单状态
func IsKnownShipmentStatus(code string) bool {
	_, ok := shipmentStatusIndex[code]
	return ok
}

// IsKnownShipMethod 是否为已知且已选择的发货方式
func IsKnownShipMethod(code string) bool {
	if code == constants.ShipMethodNone {
		return false
	}
	for _, item := range shipMethodCatalog {
		if item.Code == code {
			return true
		}
	}
	return false
}
