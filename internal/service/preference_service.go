package service

import (
	"strings"
	"time"

	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/logger"
)

// SnapTipState 截图提示的展示状态
type SnapTipState struct {
	Dismissed     bool       `json:"dismissed"`
	FirstShown    *time.Time `json:"first_shown,omitempty"`
	Visible       bool       `json:"visible"`
	DaysRemaining int        `json:"days_remaining"`
}

// PreferenceService 界面偏好服务
type PreferenceService struct {
	settings *SettingService
}

// NewPreferenceService 创建界面偏好服务
func NewPreferenceService(settings *SettingService) *PreferenceService {
	return &PreferenceService{settings: settings}
}

// GetSnapTip 读取截图提示状态，首次读取时记录 first_shown
func (s *PreferenceService) GetSnapTip(now time.Time) (SnapTipState, error) {
	state, err := s.loadSnapTip()
	if err != nil {
		return SnapTipState{}, err
	}
	if state.FirstShown == nil {
		stamped := now
		state.FirstShown = &stamped
		if _, err := s.settings.Update(constants.SettingKeySnapTip, snapTipStateToMap(state)); err != nil {
			return SnapTipState{}, err
		}
	}
	return s.withVisibility(state, now), nil
}

// DismissSnapTip 永久关闭截图提示
func (s *PreferenceService) DismissSnapTip(now time.Time) (SnapTipState, error) {
	state, err := s.loadSnapTip()
	if err != nil {
		return SnapTipState{}, err
	}
	state.Dismissed = true
	if state.FirstShown == nil {
		stamped := now
		state.FirstShown = &stamped
	}
	if _, err := s.settings.Update(constants.SettingKeySnapTip, snapTipStateToMap(state)); err != nil {
		return SnapTipState{}, err
	}
	return s.withVisibility(state, now), nil
}

func (s *PreferenceService) loadSnapTip() (SnapTipState, error) {
	raw, err := s.settings.GetByKey(constants.SettingKeySnapTip)
	if err != nil {
		return SnapTipState{}, err
	}
	return snapTipStateFromJSON(raw), nil
}

func (s *PreferenceService) withVisibility(state SnapTipState, now time.Time) SnapTipState {
	days := defaultSnapTipDays
	if pricing, err := s.settings.GetShippingPricing(); err == nil {
		days = pricing.SnapTipDays
	} else {
		logger.Warnw("snap_tip_pricing_load_failed", "error", err)
	}
	state.Visible = false
	state.DaysRemaining = 0
	if state.Dismissed || state.FirstShown == nil {
		return state
	}
	expires := state.FirstShown.Add(time.Duration(days) * 24 * time.Hour)
	if now.Before(expires) {
		state.Visible = true
		state.DaysRemaining = int(expires.Sub(now).Hours()/24) + 1
		if state.DaysRemaining > days {
			state.DaysRemaining = days
		}
	}
	return state
}

func snapTipStateToMap(state SnapTipState) map[string]interface{} {
	result := map[string]interface{}{
		"dismissed": state.Dismissed,
	}
	if state.FirstShown != nil {
		result["first_shown"] = state.FirstShown.UTC().Format(time.RFC3339)
	}
	return result
}

func snapTipStateFromJSON(raw map[string]interface{}) SnapTipState {
	var state SnapTipState
	if raw == nil {
		return state
	}
	if value, exists := raw["dismissed"]; exists {
		if parsed, err := parseSettingBool(value); err == nil {
			state.Dismissed = parsed
		}
	}
	if value, ok := raw["first_shown"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, strings.TrimSpace(value)); err == nil {
			state.FirstShown = &parsed
		}
	}
	return state
}
