package service

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
)

func TestDetectCriticalAddressChange(t *testing.T) {
	flags := DetectCritical("Please ship to a different address")
	found := false
	for _, flag := range flags {
		if flag.Type == constants.CriticalAddressChange {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ADDRESS_CHANGE in %+v", flags)
	}
}

func TestDetectCriticalMultipleCategories(t *testing.T) {
	text := "Need liftgate. Please CALL BEFORE delivery, cash on delivery. Don't ship until Friday"
	flags := DetectCritical(text)
	labels := UniqueCriticalLabels(flags)
	want := []string{"Hold Order", "Liftgate", "Call Required", "COD"}
	if !reflect.DeepEqual(labels, want) {
		t.Fatalf("labels want %v got %v", want, labels)
	}
	for _, flag := range flags {
		if !strings.EqualFold(text[flag.Index:flag.Index+len(flag.MatchedText)], flag.MatchedText) {
			t.Fatalf("matched text does not align with index: %+v", flag)
		}
	}
}

func TestDetectCriticalEmpty(t *testing.T) {
	if got := DetectCritical("   "); len(got) != 0 {
		t.Fatalf("blank text should yield no flags, got %+v", got)
	}
	if HasCritical("") || HasCritical("thanks!") {
		t.Fatalf("plain text should not be critical")
	}
	if !HasCritical("residential delivery") {
		t.Fatalf("residential should be critical")
	}
}

func TestCriticalBadgeLabelsDedup(t *testing.T) {
	got := CriticalBadgeLabels("new address: 1 Main St, address change confirmed")
	if !reflect.DeepEqual(got, []string{"Address Change"}) {
		t.Fatalf("unexpected labels %v", got)
	}
}

func TestHighlightCritical(t *testing.T) {
	text := "Hi, liftgate needed and residential."
	segments := HighlightCritical(text)
	var rebuilt strings.Builder
	critical := 0
	for _, seg := range segments {
		rebuilt.WriteString(seg.Text)
		if seg.Critical {
			critical++
		}
	}
	if rebuilt.String() != text {
		t.Fatalf("segments must rebuild the text, got %q", rebuilt.String())
	}
	if critical != 2 {
		t.Fatalf("want 2 critical segments got %d", critical)
	}
	if got := HighlightCritical("plain"); len(got) != 1 || got[0].Critical {
		t.Fatalf("plain text should be one normal segment: %+v", got)
	}
}

func TestHighlightCriticalSkipsOverlap(t *testing.T) {
	text := "don't ship with previous order"
	segments := HighlightCritical(text)
	var rebuilt strings.Builder
	critical := 0
	for _, seg := range segments {
		rebuilt.WriteString(seg.Text)
		if seg.Critical {
			critical++
		}
	}
	if rebuilt.String() != text {
		t.Fatalf("overlapping matches must not duplicate text, got %q", rebuilt.String())
	}
	if critical != 2 {
		t.Fatalf("want 2 critical segments got %d: %+v", critical, segments)
	}
}

func TestOrderCriticalFlagsPrefersAISummary(t *testing.T) {
	raw, _ := json.Marshal(`[{"type":"HOLD_ORDER"}]`)
	order := &models.Order{
		Comments:          "please ship to a different address",
		AISummaryCritical: raw,
	}
	flags, source := OrderCriticalFlags(order)
	if source != CriticalSourceAISummary {
		t.Fatalf("source want ai_summary got %s", source)
	}
	if len(flags) != 1 || flags[0].Type != constants.CriticalHoldOrder || flags[0].Label != "Hold Order" {
		t.Fatalf("unexpected flags %+v", flags)
	}
}

func TestOrderCriticalFlagsAcceptsArrayAndStrings(t *testing.T) {
	order := &models.Order{AISummaryCritical: json.RawMessage(`["CANCEL_ORDER", {"type":"X_CUSTOM","label":"Custom"}, 5]`)}
	types := OrderCriticalTypes(order)
	if !reflect.DeepEqual(types, []string{"CANCEL_ORDER", "X_CUSTOM"}) {
		t.Fatalf("unexpected types %v", types)
	}

	empty := &models.Order{Comments: "cancel please", AISummaryCritical: json.RawMessage(`"[]"`)}
	flags, source := OrderCriticalFlags(empty)
	if source != CriticalSourceAISummary || len(flags) != 0 {
		t.Fatalf("empty authoritative list must not rescan, got %s %+v", source, flags)
	}
}

func TestOrderCriticalFlagsMalformedFallsBack(t *testing.T) {
	cases := []json.RawMessage{
		json.RawMessage(`"{not json"`),
		json.RawMessage(`{"type":"HOLD_ORDER"}`),
		json.RawMessage(`""`),
		json.RawMessage(`null`),
		nil,
	}
	for _, raw := range cases {
		order := &models.Order{Comments: "Liftgate", Notes: "call before", AISummaryCritical: raw}
		flags, source := OrderCriticalFlags(order)
		if source != CriticalSourcePattern {
			t.Fatalf("raw %s should fall back to pattern scan", string(raw))
		}
		if len(flags) != 2 {
			t.Fatalf("raw %s want 2 flags got %+v", string(raw), flags)
		}
	}
	if flags, _ := OrderCriticalFlags(nil); len(flags) != 0 {
		t.Fatalf("nil order should have no flags")
	}
}
