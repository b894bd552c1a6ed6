package service

import (
	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
)

// ShippingSummary 订单运费汇总
type ShippingSummary struct {
	CustomerCharge models.Money `json:"customer_charge"`
	Cost           models.Money `json:"cost"`
	Profit         models.Money `json:"profit"`
}

// AggregateShipping 汇总所有发货单的客户运费与成本
// 每个发货单按优先级取第一个非零价格；Pickup 不计入。
func AggregateShipping(shipments []*models.Shipment) ShippingSummary {
	var charge, cost models.Money
	for _, shipment := range shipments {
		if shipment == nil || shipment.ShipMethod == constants.ShipMethodPickup {
			continue
		}
		charge = charge.Add(ShipmentCustomerCharge(shipment))
		cost = cost.Add(ShipmentCost(shipment))
	}
	return ShippingSummary{
		CustomerCharge: charge,
		Cost:           cost,
		Profit:         charge.Sub(cost),
	}
}

// ShipmentCustomerCharge 单个发货单的客户运费
func ShipmentCustomerCharge(shipment *models.Shipment) models.Money {
	if shipment == nil || shipment.ShipMethod == constants.ShipMethodPickup {
		return models.Money{}
	}
	return firstSet(
		shipment.RLCustomerPrice,
		shipment.LiCustomerPrice,
		shipment.CustomerPrice,
		shipment.PSQuotePrice,
	)
}

// ShipmentCost 单个发货单的运费成本
func ShipmentCost(shipment *models.Shipment) models.Money {
	if shipment == nil || shipment.ShipMethod == constants.ShipMethodPickup {
		return models.Money{}
	}
	return firstSet(
		shipment.RLQuotePrice,
		shipment.LiQuotePrice,
		shipment.QuotePrice,
		shipment.PSQuotePrice,
	)
}

// OrderGrandTotal 订单金额加客户运费
func OrderGrandTotal(order *models.Order) models.Money {
	if order == nil {
		return models.Money{}
	}
	summary := AggregateShipping(order.Shipments)
	return order.OrderTotal.Add(summary.CustomerCharge)
}

func firstSet(values ...models.Money) models.Money {
	for _, value := range values {
		if value.IsSet() {
			return value
		}
	}
	return models.Money{}
}
