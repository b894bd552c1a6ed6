package constants

// 订单状态常量（按流程顺序）
const (
	OrderStatusNeedsPaymentLink    = "needs_payment_link"
	OrderStatusAwaitingPayment     = "awaiting_payment"
	OrderStatusNeedsWarehouseOrder = "needs_warehouse_order"
	OrderStatusAwaitingWarehouse   = "awaiting_warehouse"
	OrderStatusNeedsBOL            = "needs_bol"
	OrderStatusAwaitingShipment    = "awaiting_shipment"
	OrderStatusComplete            = "complete"
	OrderStatusCanceled            = "canceled"
)

// 发货单状态常量
const (
	ShipmentStatusNeedsOrder  = "needs_order"
	ShipmentStatusPending     = "pending" // needs_order 的旧别名
	ShipmentStatusAtWarehouse = "at_warehouse"
	ShipmentStatusNeedsBOL    = "needs_bol"
	ShipmentStatusReadyShip   = "ready_ship"
	ShipmentStatusShipped     = "shipped"
	ShipmentStatusDelivered   = "delivered"
)

// 发货方式常量
const (
	ShipMethodNone       = ""
	ShipMethodLTL        = "LTL"
	ShipMethodPirateship = "Pirateship"
	ShipMethodPickup     = "Pickup"
	ShipMethodBoxTruck   = "BoxTruck"
	ShipMethodLiDelivery = "LiDelivery"
)

// 关键备注分类
const (
	CriticalAddressChange       = "ADDRESS_CHANGE"
	CriticalOrderModification   = "ORDER_MODIFICATION"
	CriticalCombinedOrder       = "COMBINED_ORDER"
	CriticalHoldOrder           = "HOLD_ORDER"
	CriticalCancelOrder         = "CANCEL_ORDER"
	CriticalDeliveryInstruction = "DELIVERY_INSTRUCTION"
	CriticalPaymentInstruction  = "PAYMENT_INSTRUCTION"
)

// 后端写入来源标识
const (
	UpdateSourceWebUI = "web_ui"
)

// 更新意图动作
const (
	IntentSetOrderStatus      = "order.set_status"
	IntentPatchOrderNotes     = "order.patch_notes"
	IntentCancelOrder         = "order.cancel"
	IntentPatchShipment       = "shipment.patch"
	IntentSaveTracking        = "shipment.save_tracking"
	IntentRegenerateSummary   = "sync.regenerate_summary"
	IntentRegenerateSummaries = "sync.regenerate_summaries"
	IntentGmailSync           = "sync.gmail"
	IntentB2BWaveSync         = "sync.b2bwave"
	IntentSyncAll             = "sync.all"
)

// 更新意图结果
const (
	IntentResultSuccess  = "success"
	IntentResultFailed   = "failed"
	IntentResultEnqueued = "enqueued"
)

// 队列与任务常量
const (
	QueueDefault               = "default"
	QueueSync                  = "sync"
	TaskRegenerateSummaries    = "sync:regenerate_summaries"
	TaskRegenerateOrderSummary = "sync:regenerate_order_summary"
	TaskGmailSync              = "sync:gmail"
	TaskB2BWaveSync            = "sync:b2bwave"
	TaskSyncAll                = "sync:all"
	TaskRefreshOrderSnapshot   = "orders:refresh_snapshot"
	DefaultGmailSyncHoursBack  = 2
	DefaultB2BWaveSyncDaysBack = 14
)

// 设置键常量
const (
	SettingKeyShippingPricing = "shipping_pricing"
	SettingKeySnapTip         = "snap_tip"
)
