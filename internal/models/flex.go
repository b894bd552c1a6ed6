package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexString 兼容字符串与数字两种写法的标识字段
type FlexString string

// UnmarshalJSON 接受字符串、数字与 null，其他类型置空
func (f *FlexString) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "" || raw == "null":
		*f = ""
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(strings.TrimSpace(s))
	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		*f = FlexString(raw)
	default:
		*f = ""
	}
	return nil
}

// String 返回字符串值
func (f FlexString) String() string {
	return string(f)
}

// FlexInt 宽松整数字段，非法值按 0 处理
type FlexInt int

// UnmarshalJSON 接受数字、数字字符串与 null
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt(int(parseFlexFloat(b)))
	return nil
}

// FlexFloat 宽松浮点字段，非法值按 0 处理
type FlexFloat float64

// UnmarshalJSON 接受数字、数字字符串与 null
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = FlexFloat(parseFlexFloat(b))
	return nil
}

func parseFlexFloat(b []byte) float64 {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		return 0
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0
		}
		raw = strings.TrimSpace(s)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
