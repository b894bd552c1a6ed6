package staff

import (
	"github.com/cfc-orderdesk/internal/http/response"
	"github.com/cfc-orderdesk/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogView 状态与发货方式目录
type CatalogView struct {
	OrderStatuses       []service.StatusInfo     `json:"order_statuses"`
	ActiveOrderStatuses []string                 `json:"active_order_statuses"`
	ShipmentStatuses    []service.StatusInfo     `json:"shipment_statuses"`
	ShipMethods         []service.ShipMethodInfo `json:"ship_methods"`
}

// GetCatalog 返回前端渲染所需的状态目录
func (h *Handler) GetCatalog(c *gin.Context) {
	response.Success(c, CatalogView{
		OrderStatuses:       service.OrderStatuses(),
		ActiveOrderStatuses: service.ActiveOrderStatuses(),
		ShipmentStatuses:    service.ShipmentStatuses(),
		ShipMethods:         service.ShipMethods(),
	})
}
