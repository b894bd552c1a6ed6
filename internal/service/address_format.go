package service

import (
	"strings"
	"unicode"

	"github.com/cfc-orderdesk/internal/models"
)

// FormattedAddress 订单地址展示块
type FormattedAddress struct {
	Name     string `json:"name"`
	Street   string `json:"street"`
	CityLine string `json:"city_line"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// FormatStreetAddress 拼接街道与单元号，街道已包含单元信息时原样返回
func FormatStreetAddress(street, unit string) string {
	street = strings.TrimSpace(street)
	unit = strings.TrimSpace(unit)
	if street == "" {
		return ""
	}
	if unit == "" {
		return street
	}
	streetLower := strings.ToLower(street)
	unitLower := strings.ToLower(unit)
	if strings.Contains(streetLower, unitLower) {
		return street
	}
	for _, marker := range []string{"unit", "suite", "apt"} {
		if strings.Contains(streetLower, marker) {
			return street
		}
	}

	prefix := ""
	if isDigits(unit) {
		prefix = "Unit "
	} else if !strings.HasPrefix(unitLower, "unit") &&
		!strings.HasPrefix(unitLower, "suite") &&
		!strings.HasPrefix(unitLower, "apt") &&
		!strings.HasPrefix(unit, "#") {
		prefix = "Unit "
	}
	return street + ", " + prefix + unit
}

// FormatCityLine 生成 "City, ST 12345"
func FormatCityLine(city, state, zip string) string {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	zip = strings.TrimSpace(zip)
	if city == "" && state == "" {
		return zip
	}
	if zip == "" {
		line := city + ", " + state
		line = strings.TrimPrefix(line, ", ")
		return strings.TrimSuffix(line, ", ")
	}
	return strings.TrimSpace(city + ", " + state + " " + zip)
}

// DisplayLocation 卡片上展示的 "City, ST"
func DisplayLocation(city, state string) string {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	switch {
	case city == "" && state == "":
		return ""
	case city == "":
		return state
	case state == "":
		return city
	default:
		return city + ", " + state
	}
}

// DisplayName 公司名优先，其次客户名
func DisplayName(order *models.Order) string {
	if order == nil {
		return "Unknown"
	}
	if name := strings.TrimSpace(order.CompanyName); name != "" {
		return name
	}
	if name := strings.TrimSpace(order.CustomerName); name != "" {
		return name
	}
	return "Unknown"
}

// FormatPhone 10 位与 11 位号码格式化，其他原样返回
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	d := string(digits)
	switch len(d) {
	case 10:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	case 11:
		return d[:1] + "-" + d[1:4] + "-" + d[4:7] + "-" + d[7:]
	default:
		return phone
	}
}

// FormatOrderAddress 组装订单地址展示块
func FormatOrderAddress(order *models.Order) FormattedAddress {
	if order == nil {
		return FormattedAddress{}
	}
	return FormattedAddress{
		Name:     DisplayName(order),
		Street:   FormatStreetAddress(order.Street, order.UnitLine()),
		CityLine: FormatCityLine(order.City, order.State, order.ZipCode),
		Location: DisplayLocation(order.City, order.State),
		Phone:    FormatPhone(order.Phone),
		Email:    strings.TrimSpace(order.Email),
	}
}

// AddressClipboardText 地址整块复制文本，空行被忽略
func AddressClipboardText(address FormattedAddress) string {
	return joinNonEmpty("\n", address.Name, address.Street, address.CityLine, address.Phone, address.Email)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
