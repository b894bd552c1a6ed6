package service

import (
	"testing"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
)

func money(v int64) models.Money {
	return models.NewMoneyFromInt(v)
}

func TestAggregateShippingPriorities(t *testing.T) {
	shipments := []*models.Shipment{
		{ShipMethod: constants.ShipMethodLTL, RLCustomerPrice: money(150), RLQuotePrice: money(100), CustomerPrice: money(999)},
		{ShipMethod: constants.ShipMethodLiDelivery, LiCustomerPrice: money(250), LiQuotePrice: money(200)},
		{ShipMethod: constants.ShipMethodBoxTruck, CustomerPrice: money(80), QuotePrice: money(60)},
		{ShipMethod: constants.ShipMethodPirateship, PSQuotePrice: money(20)},
		nil,
	}
	summary := AggregateShipping(shipments)
	if summary.CustomerCharge.String() != "500.00" {
		t.Fatalf("customer charge want 500.00 got %s", summary.CustomerCharge.String())
	}
	if summary.Cost.String() != "380.00" {
		t.Fatalf("cost want 380.00 got %s", summary.Cost.String())
	}
	if summary.Profit.String() != "120.00" {
		t.Fatalf("profit want 120.00 got %s", summary.Profit.String())
	}
}

func TestAggregateShippingPickupIsZero(t *testing.T) {
	shipments := []*models.Shipment{
		{ShipMethod: constants.ShipMethodPickup, RLCustomerPrice: money(150), RLQuotePrice: money(100)},
	}
	summary := AggregateShipping(shipments)
	if summary.CustomerCharge.IsSet() || summary.Cost.IsSet() || summary.Profit.IsSet() {
		t.Fatalf("pickup should contribute nothing, got %+v", summary)
	}
}

func TestAggregateShippingEmpty(t *testing.T) {
	summary := AggregateShipping(nil)
	if summary.CustomerCharge.String() != "0.00" || summary.Profit.String() != "0.00" {
		t.Fatalf("empty list should be zero, got %+v", summary)
	}
}

func TestAggregateShippingFromMalformedPrices(t *testing.T) {
	body := `{"orders":[{"order_id":1,"shipments":[
		{"shipment_id":1,"ship_method":"LTL","rl_customer_price":"abc","customer_price":"75","rl_quote_price":null,"quote_price":"$40"}
	]}]}`
	orders := models.DecodeOrderList([]byte(body))
	if len(orders) != 1 {
		t.Fatalf("want 1 order got %d", len(orders))
	}
	summary := AggregateShipping(orders[0].Shipments)
	if summary.CustomerCharge.String() != "75.00" || summary.Cost.String() != "40.00" {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestOrderGrandTotal(t *testing.T) {
	order := &models.Order{
		OrderTotal: models.ParseMoney("1000.10"),
		Shipments: models.ShipmentList{
			{ShipMethod: constants.ShipMethodLTL, RLCustomerPrice: money(150)},
		},
	}
	if got := OrderGrandTotal(order).String(); got != "1150.10" {
		t.Fatalf("grand total want 1150.10 got %s", got)
	}
	if got := OrderGrandTotal(nil).String(); got != "0.00" {
		t.Fatalf("nil order want 0.00 got %s", got)
	}
}
