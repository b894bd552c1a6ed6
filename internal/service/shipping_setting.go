package service

import (
	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
)

const (
	defaultLTLMarkup       = 50
	defaultLiCost          = 200
	defaultLiCharge        = 250
	defaultSnapTipDays     = 14
	maxSnapTipDays         = 365
	maxShippingPriceAmount = 100000
)

// ShippingPricingSetting 发货定价参数
type ShippingPricingSetting struct {
	LTLMarkup       models.Money `json:"ltl_markup"`
	LiDefaultCost   models.Money `json:"li_default_cost"`
	LiDefaultCharge models.Money `json:"li_default_charge"`
	SnapTipDays     int          `json:"snap_tip_days"`
}

// ShippingPricingDefaultSetting 由配置文件生成默认定价参数
func ShippingPricingDefaultSetting(cfg config.ShippingConfig) ShippingPricingSetting {
	builtin := ShippingPricingSetting{
		LTLMarkup:       models.NewMoneyFromInt(defaultLTLMarkup),
		LiDefaultCost:   models.NewMoneyFromInt(defaultLiCost),
		LiDefaultCharge: models.NewMoneyFromInt(defaultLiCharge),
		SnapTipDays:     defaultSnapTipDays,
	}
	setting := builtin
	if v, err := parseQuotePrice(cfg.LTLMarkup); err == nil {
		setting.LTLMarkup = v
	}
	if v, err := parseQuotePrice(cfg.LiDefaultCost); err == nil {
		setting.LiDefaultCost = v
	}
	if v, err := parseQuotePrice(cfg.LiDefaultCharge); err == nil {
		setting.LiDefaultCharge = v
	}
	if cfg.SnapTipDays > 0 {
		setting.SnapTipDays = cfg.SnapTipDays
	}
	return NormalizeShippingPricingSetting(setting, builtin)
}

// NormalizeShippingPricingSetting 归一化定价参数，越界值回退 fallback
func NormalizeShippingPricingSetting(setting, fallback ShippingPricingSetting) ShippingPricingSetting {
	limit := models.NewMoneyFromInt(maxShippingPriceAmount)
	if setting.LTLMarkup.IsNegative() || setting.LTLMarkup.GreaterThan(limit.Decimal) {
		setting.LTLMarkup = fallback.LTLMarkup
	}
	if setting.LiDefaultCost.IsNegative() || setting.LiDefaultCost.GreaterThan(limit.Decimal) {
		setting.LiDefaultCost = fallback.LiDefaultCost
	}
	if setting.LiDefaultCharge.IsNegative() || setting.LiDefaultCharge.GreaterThan(limit.Decimal) {
		setting.LiDefaultCharge = fallback.LiDefaultCharge
	}
	if setting.SnapTipDays < 1 || setting.SnapTipDays > maxSnapTipDays {
		setting.SnapTipDays = fallback.SnapTipDays
	}
	return setting
}

// ShippingPricingSettingToMap 转换为设置存储结构
func ShippingPricingSettingToMap(setting, fallback ShippingPricingSetting) map[string]interface{} {
	normalized := NormalizeShippingPricingSetting(setting, fallback)
	return map[string]interface{}{
		"ltl_markup":        normalized.LTLMarkup.String(),
		"li_default_cost":   normalized.LiDefaultCost.String(),
		"li_default_charge": normalized.LiDefaultCharge.String(),
		"snap_tip_days":     normalized.SnapTipDays,
	}
}

func shippingPricingSettingFromJSON(raw map[string]interface{}, fallback ShippingPricingSetting) ShippingPricingSetting {
	result := fallback
	if value, exists := raw["ltl_markup"]; exists {
		if parsed, err := parseSettingMoney(value); err == nil {
			result.LTLMarkup = parsed
		}
	}
	if value, exists := raw["li_default_cost"]; exists {
		if parsed, err := parseSettingMoney(value); err == nil {
			result.LiDefaultCost = parsed
		}
	}
	if value, exists := raw["li_default_charge"]; exists {
		if parsed, err := parseSettingMoney(value); err == nil {
			result.LiDefaultCharge = parsed
		}
	}
	if value, exists := raw["snap_tip_days"]; exists {
		if parsed, err := parseSettingInt(value); err == nil {
			result.SnapTipDays = parsed
		}
	}
	return NormalizeShippingPricingSetting(result, fallback)
}

// GetShippingPricing 获取定价参数（优先 settings，空时回退配置默认值）
func (s *SettingService) GetShippingPricing() (ShippingPricingSetting, error) {
	if s == nil {
		return ShippingPricingDefaultSetting(config.ShippingConfig{}), nil
	}
	fallback := ShippingPricingDefaultSetting(s.shipping)
	if s.repo == nil {
		return fallback, nil
	}
	value, err := s.GetByKey(constants.SettingKeyShippingPricing)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	return shippingPricingSettingFromJSON(value, fallback), nil
}

// UpdateShippingPricing 更新定价参数
func (s *SettingService) UpdateShippingPricing(value map[string]interface{}) (ShippingPricingSetting, error) {
	fallback := ShippingPricingDefaultSetting(s.shipping)
	saved, err := s.Update(constants.SettingKeyShippingPricing, value)
	if err != nil {
		return fallback, err
	}
	return shippingPricingSettingFromJSON(saved, fallback), nil
}

// RouterOptions 组合定价参数与外链配置
func (s *SettingService) RouterOptions() (RouterOptions, error) {
	pricing, err := s.GetShippingPricing()
	return RouterOptions{
		Markup:          pricing.LTLMarkup,
		LiDefaultCost:   pricing.LiDefaultCost,
		LiDefaultCharge: pricing.LiDefaultCharge,
		RLQuoteURL:      s.shipping.RLQuoteURL,
		PirateshipURL:   s.shipping.PirateshipURL,
	}, err
}

// RLQuoteOptions 组合 RL 询价辅助配置
func (s *SettingService) RLQuoteOptions() (RLQuoteOptions, error) {
	pricing, err := s.GetShippingPricing()
	bill := s.shipping.BillTo
	return RLQuoteOptions{
		Markup:            pricing.LTLMarkup,
		RLQuoteURL:        s.shipping.RLQuoteURL,
		NotificationEmail: s.shipping.NotificationEmail,
		FreightClass:      s.shipping.FreightClass,
		Commodity:         s.shipping.Commodity,
		BillTo: BillTo{
			Company: bill.Company,
			Street:  bill.Street,
			City:    bill.City,
			State:   bill.State,
			Zip:     bill.Zip,
			Phone:   bill.Phone,
			Email:   bill.Email,
		},
	}, err
}

// TrackingNoticeOptions 追踪通知配置
func (s *SettingService) TrackingNoticeOptions() TrackingNoticeOptions {
	return TrackingNoticeOptions{
		RLTrackingURL: s.shipping.RLTrackingURL,
		TeamSignature: s.shipping.TeamSignature,
	}
}
