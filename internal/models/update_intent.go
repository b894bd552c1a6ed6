package models

import "time"

// 更新意图目标类型
const (
	IntentTargetOrder    = "order"
	IntentTargetShipment = "shipment"
	IntentTargetSync     = "sync"
)

// UpdateIntent 向远端后端发出的字段级更新意图审计记录
// 订单与发货单本身由后端持久化，这里只保留操作轨迹。
type UpdateIntent struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Action       string    `gorm:"type:varchar(64);index;not null" json:"action"`
	TargetType   string    `gorm:"type:varchar(32);index;not null;default:''" json:"target_type"`
	TargetID     string    `gorm:"type:varchar(64);index;not null;default:''" json:"target_id"`
	PayloadJSON  JSON      `gorm:"type:json" json:"payload"`
	Result       string    `gorm:"type:varchar(20);index;not null" json:"result"`
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	RequestID    string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	DurationMS   int64     `gorm:"not null;default:0" json:"duration_ms"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (UpdateIntent) TableName() string {
	return "update_intents"
}
