package service

import (
	"testing"

	"github.com/cfc-orderdesk/internal/backend"
	"github.com/cfc-orderdesk/internal/models"
)

func testRLOptions() RLQuoteOptions {
	return RLQuoteOptions{
		Markup:            models.NewMoneyFromInt(50),
		RLQuoteURL:        "https://rl.example/rate-quote",
		NotificationEmail: "desk@example.com",
		FreightClass:      "85",
		Commodity:         "RTA Cabinetry",
		BillTo: BillTo{
			Company: "Desk Co",
			Street:  "1 Main St",
			City:    "DALLAS",
			State:   "GA",
			Zip:     "30132",
			Phone:   "(770) 990-4885",
			Email:   "desk@example.com",
		},
	}
}

func blockText(view RLQuoteView, key string) (string, bool) {
	for _, block := range view.Blocks {
		if block.Key == key {
			return block.Text, true
		}
	}
	return "", false
}

func TestBuildRLQuoteView(t *testing.T) {
	data := &backend.RLQuoteData{
		Status:    "ok",
		OriginZip: "30301",
		Destination: backend.RLDestination{
			Name:  "Acme",
			City:  "Austin",
			State: "TX",
			Zip:   "73301",
			Email: "buyer@acme.com",
		},
		Weight:        backend.RLWeight{Value: 812.5},
		ExistingQuote: &backend.RLExistingQuote{QuoteNumber: "Q1", QuotePrice: models.ParseMoney("179.38"), QuoteURL: "https://rl.example/q/1"},
	}
	view := BuildRLQuoteView("9", data, testRLOptions())

	if view.SuggestedCustomerPrice != "229.38" {
		t.Fatalf("suggested price want 229.38 got %s", view.SuggestedCustomerPrice)
	}
	if view.CombinedEmails != "buyer@acme.com, desk@example.com" {
		t.Fatalf("unexpected emails %q", view.CombinedEmails)
	}
	if !view.Saved {
		t.Fatalf("existing quote url should mark the quote as saved")
	}
	checks := map[string]string{
		"origin_zip":    "30301",
		"dest_zip":      "73301",
		"weight":        "812.5",
		"freight_class": "85",
		"commodity":     "RTA Cabinetry",
		"ship_to":       "Acme\nAustin, TX 73301\nbuyer@acme.com",
		"bill_to":       "Desk Co\n1 Main St\nDALLAS, GA 30132\n(770) 990-4885\ndesk@example.com",
	}
	for key, want := range checks {
		got, ok := blockText(view, key)
		if !ok || got != want {
			t.Fatalf("block %s want %q got %q (present=%v)", key, want, got, ok)
		}
	}
}

func TestBuildRLQuoteViewSparseData(t *testing.T) {
	view := BuildRLQuoteView("9", nil, testRLOptions())
	if view.CombinedEmails != "desk@example.com" {
		t.Fatalf("without destination email only the desk email is used, got %q", view.CombinedEmails)
	}
	if _, ok := blockText(view, "weight"); ok {
		t.Fatalf("zero weight should not produce a block")
	}
	if _, ok := blockText(view, "origin_zip"); ok {
		t.Fatalf("empty origin zip should not produce a block")
	}
	if view.SuggestedCustomerPrice != "" || view.Saved {
		t.Fatalf("no quote means no suggestion: %+v", view)
	}
}
