package service

import (
	"strings"

	"github.com/cfc-orderdesk/internal/models"
)

// FilterOrders 按状态与归档开关过滤订单
// statusFilter 非空时精确匹配；否则 showArchived 决定返回终态或非终态订单。
func FilterOrders(orders []*models.Order, statusFilter string, showArchived bool) []*models.Order {
	statusFilter = strings.TrimSpace(statusFilter)
	result := make([]*models.Order, 0, len(orders))
	for _, order := range orders {
		if order == nil {
			continue
		}
		switch {
		case statusFilter != "":
			if order.CurrentStatus == statusFilter {
				result = append(result, order)
			}
		case showArchived:
			if IsTerminalOrderStatus(order.CurrentStatus) {
				result = append(result, order)
			}
		default:
			if !IsTerminalOrderStatus(order.CurrentStatus) {
				result = append(result, order)
			}
		}
	}
	return result
}

// CountsByStatus 统计各状态订单数
func CountsByStatus(orders []*models.Order) map[string]int {
	counts := make(map[string]int)
	for _, order := range orders {
		if order == nil {
			continue
		}
		counts[order.CurrentStatus]++
	}
	return counts
}

// ActiveCount 非终态订单数
func ActiveCount(orders []*models.Order) int {
	count := 0
	for _, order := range orders {
		if order != nil && !IsTerminalOrderStatus(order.CurrentStatus) {
			count++
		}
	}
	return count
}

// ArchivedCount 终态（complete / canceled）订单数
func ArchivedCount(orders []*models.Order) int {
	count := 0
	for _, order := range orders {
		if order != nil && IsTerminalOrderStatus(order.CurrentStatus) {
			count++
		}
	}
	return count
}
