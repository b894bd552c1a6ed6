package cache

import (
	"context"
	"time"

	"github.com/cfc-orderdesk/internal/models"
)

const orderSnapshotKey = "orders:snapshot"

// OrderSnapshot 订单快照的缓存形态，多实例共享最近一次成功拉取的结果
type OrderSnapshot struct {
	FetchedAt       time.Time       `json:"fetched_at"`
	IncludeComplete bool            `json:"include_complete"`
	Orders          []*models.Order `json:"orders"`
}

// GetOrderSnapshot 读取订单快照
func GetOrderSnapshot(ctx context.Context) (*OrderSnapshot, bool, error) {
	var snapshot OrderSnapshot
	hit, err := GetJSON(ctx, orderSnapshotKey, &snapshot)
	if err != nil || !hit {
		return nil, false, err
	}
	if snapshot.Orders == nil {
		snapshot.Orders = []*models.Order{}
	}
	return &snapshot, true, nil
}

// SetOrderSnapshot 写入订单快照
func SetOrderSnapshot(ctx context.Context, snapshot *OrderSnapshot, ttl time.Duration) error {
	if snapshot == nil {
		return nil
	}
	return SetJSON(ctx, orderSnapshotKey, snapshot, ttl)
}

// DelOrderSnapshot 删除订单快照
func DelOrderSnapshot(ctx context.Context) error {
	return Del(ctx, orderSnapshotKey)
}
