package models

import (
	"encoding/json"
	"testing"
)

func TestDecodeOrderListMalformedEnvelope(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>`},
		{name: "missing orders", body: `{"count":3}`},
		{name: "null orders", body: `{"orders":null}`},
		{name: "object orders", body: `{"orders":{"order_id":1}}`},
		{name: "string orders", body: `{"orders":"nope"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeOrderList([]byte(tc.body))
			if got == nil {
				t.Fatalf("expected empty slice, got nil")
			}
			if len(got) != 0 {
				t.Fatalf("expected no orders, got %d", len(got))
			}
		})
	}
}

func TestDecodeOrderListSkipsBadEntries(t *testing.T) {
	body := `{"orders":[
		null,
		42,
		{"order_id": 7, "current_status": "needs_bol", "order_total": "1,250.50"},
		{"order_id": "A-9", "customer_name": ["bad"]},
		{"order_id": "A-10", "days_open": "abc", "order_total": "n/a",
		 "shipments": [null, {"shipment_id": 3, "rl_customer_price": 150, "weight": "812.5"}, "x"]}
	]}`
	orders := DecodeOrderList([]byte(body))
	if len(orders) != 3 {
		t.Fatalf("want 3 orders got %d", len(orders))
	}
	if orders[0].OrderID != "7" {
		t.Fatalf("numeric order id should decode as string, got %q", orders[0].OrderID)
	}
	if orders[0].OrderTotal.String() != "1250.50" {
		t.Fatalf("order total want 1250.50 got %s", orders[0].OrderTotal.String())
	}
	if orders[1].OrderID != "A-9" || orders[1].CustomerName != "" {
		t.Fatalf("array customer name should be blanked, got %+v", orders[1])
	}
	second := orders[2]
	if second.DaysOpen != 0 {
		t.Fatalf("non numeric days_open should be 0, got %d", second.DaysOpen)
	}
	if second.OrderTotal.IsSet() {
		t.Fatalf("non numeric total should be zero, got %s", second.OrderTotal.String())
	}
	if len(second.Shipments) != 1 {
		t.Fatalf("want 1 shipment got %d", len(second.Shipments))
	}
	shipment := second.Shipments[0]
	if shipment.ShipmentID != "3" || shipment.Weight != 812.5 {
		t.Fatalf("unexpected shipment decode: %+v", shipment)
	}
	if shipment.RLCustomerPrice.String() != "150.00" {
		t.Fatalf("rl customer price want 150.00 got %s", shipment.RLCustomerPrice.String())
	}
	if second.FindShipment("3") != shipment {
		t.Fatalf("find shipment by id failed")
	}
}

func TestDecodeOrderListNumericStringFields(t *testing.T) {
	body := `{"orders":[
		{"order_id": 1, "zip_code": 30301, "phone": 4045551234, "customer_name": "Ann", "comments": true},
		{"order_id": 2, "shipments": [
			{"shipment_id": 9, "tracking_number": 123456789012, "rl_quote_number": 7788, "rl_customer_price": 150, "warehouse": {"id": 1}}
		]}
	]}`
	orders := DecodeOrderList([]byte(body))
	if len(orders) != 2 {
		t.Fatalf("want 2 orders got %d", len(orders))
	}
	first := orders[0]
	if first.ZipCode != "30301" || first.Phone != "4045551234" || first.CustomerName != "Ann" {
		t.Fatalf("numeric fields should decode as text, got %+v", first)
	}
	if first.Comments != "" {
		t.Fatalf("bool comments should be blank, got %q", first.Comments)
	}
	if len(orders[1].Shipments) != 1 {
		t.Fatalf("want 1 shipment got %d", len(orders[1].Shipments))
	}
	shipment := orders[1].Shipments[0]
	if shipment.TrackingNumber != "123456789012" || shipment.RLQuoteNumber != "7788" {
		t.Fatalf("unexpected shipment decode: %+v", shipment)
	}
	if shipment.Warehouse != "" {
		t.Fatalf("object warehouse should be blank, got %q", shipment.Warehouse)
	}
	if shipment.RLCustomerPrice.String() != "150.00" {
		t.Fatalf("rl customer price want 150.00 got %s", shipment.RLCustomerPrice.String())
	}
}

func TestUnmarshalLenientRejectsNonObject(t *testing.T) {
	var order Order
	if err := json.Unmarshal([]byte(`[1,2]`), &order); err == nil {
		t.Fatalf("array should not decode into an order")
	}
}

func TestMoneyUnmarshalNeverFails(t *testing.T) {
	inputs := []string{`null`, `"abc"`, `true`, `{}`, `"$99.999"`, `12.345`, `"NaN"`}
	wants := []string{"0.00", "0.00", "0.00", "0.00", "100.00", "12.35", "0.00"}
	for i, input := range inputs {
		var m Money
		if err := json.Unmarshal([]byte(input), &m); err != nil {
			t.Fatalf("unmarshal %s failed: %v", input, err)
		}
		if m.String() != wants[i] {
			t.Fatalf("input %s want %s got %s", input, wants[i], m.String())
		}
	}
}

func TestMoneyMarshalFixedString(t *testing.T) {
	body, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{Amount: NewMoneyFromInt(50)})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(body) != `{"amount":"50.00"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestUnitLine(t *testing.T) {
	order := &Order{Suite: " 200 "}
	if got := order.UnitLine(); got != "200" {
		t.Fatalf("want 200 got %q", got)
	}
	order.Unit = "B"
	if got := order.UnitLine(); got != "B" {
		t.Fatalf("unit should win, got %q", got)
	}
}
