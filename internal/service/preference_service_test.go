package service

import (
	"testing"
	"time"
)

func TestSnapTipLifecycle(t *testing.T) {
	svc := NewPreferenceService(newTestSettingService(t))
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	state, err := svc.GetSnapTip(start)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if !state.Visible || state.FirstShown == nil || !state.FirstShown.Equal(start) {
		t.Fatalf("first read should stamp first_shown and be visible: %+v", state)
	}
	if state.DaysRemaining != 14 {
		t.Fatalf("days remaining want 14 got %d", state.DaysRemaining)
	}

	state, err = svc.GetSnapTip(start.Add(13 * 24 * time.Hour))
	if err != nil || !state.Visible {
		t.Fatalf("day 13 should still be visible: %+v %v", state, err)
	}
	if !state.FirstShown.Equal(start) {
		t.Fatalf("first_shown must not be restamped, got %v", state.FirstShown)
	}

	state, err = svc.GetSnapTip(start.Add(14 * 24 * time.Hour))
	if err != nil || state.Visible {
		t.Fatalf("day 14 should be hidden: %+v %v", state, err)
	}
}

func TestSnapTipDismiss(t *testing.T) {
	svc := NewPreferenceService(newTestSettingService(t))
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	state, err := svc.DismissSnapTip(now)
	if err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	if !state.Dismissed || state.Visible {
		t.Fatalf("dismissed tip should be hidden: %+v", state)
	}
	state, err = svc.GetSnapTip(now)
	if err != nil || state.Visible || !state.Dismissed {
		t.Fatalf("dismissal should persist: %+v %v", state, err)
	}
}
