package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/cfc-orderdesk/internal/config"
	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/models"
	"github.com/cfc-orderdesk/internal/repository"
)

// SettingService 本地设置服务
type SettingService struct {
	repo     repository.SettingRepository
	shipping config.ShippingConfig
}

// NewSettingService 创建设置服务，shipping 提供定价默认值
func NewSettingService(repo repository.SettingRepository, shipping config.ShippingConfig) *SettingService {
	return &SettingService{repo: repo, shipping: shipping}
}

// GetByKey 获取设置
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update 归一化后写入设置
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	normalized := s.normalizeSettingValueByKey(key, value)

	setting, err := s.repo.Upsert(key, normalized)
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

func (s *SettingService) normalizeSettingValueByKey(key string, value map[string]interface{}) models.JSON {
	switch strings.TrimSpace(key) {
	case constants.SettingKeyShippingPricing:
		fallback := ShippingPricingDefaultSetting(s.shipping)
		return ShippingPricingSettingToMap(shippingPricingSettingFromJSON(value, fallback), fallback)
	case constants.SettingKeySnapTip:
		return snapTipStateToMap(snapTipStateFromJSON(value))
	default:
		return models.JSON(value)
	}
}

func parseSettingInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		if f, err := v.Float64(); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("invalid json number")
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.Atoi(trimmed)
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}

func parseSettingMoney(value interface{}) (models.Money, error) {
	switch v := value.(type) {
	case int:
		return models.NewMoneyFromInt(int64(v)), nil
	case int64:
		return models.NewMoneyFromInt(v), nil
	case float64:
		return parseQuotePrice(strconv.FormatFloat(v, 'f', -1, 64))
	case json.Number:
		return parseQuotePrice(v.String())
	case string:
		return parseQuotePrice(v)
	default:
		return models.Money{}, fmt.Errorf("unsupported value type")
	}
}

func parseSettingBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		return false, fmt.Errorf("unsupported value type")
	}
}
