package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	stringFieldCache    sync.Map
)

// UnmarshalLenient 解码 JSON 对象到 v（结构体指针）
// 字符串字段收到数字时按原文转为字符串，收到布尔、对象或数组时置空，不让单个字段拖垮整条记录。
// v 的类型自身不能实现 json.Unmarshaler。
func UnmarshalLenient(b []byte, v any) error {
	target := reflect.TypeOf(v)
	if target == nil || target.Kind() != reflect.Pointer || target.Elem().Kind() != reflect.Struct {
		return json.Unmarshal(b, v)
	}
	normalized, err := coerceStringFields(b, target.Elem())
	if err != nil {
		return err
	}
	return json.Unmarshal(normalized, v)
}

func coerceStringFields(raw []byte, target reflect.Type) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	changed := false
	for _, name := range stringFieldNames(target) {
		value, ok := fields[name]
		if !ok {
			continue
		}
		value = bytes.TrimSpace(value)
		if len(value) == 0 || value[0] == '"' || string(value) == "null" {
			continue
		}
		if value[0] == '-' || (value[0] >= '0' && value[0] <= '9') {
			fields[name] = json.RawMessage(strconv.Quote(string(value)))
		} else {
			fields[name] = json.RawMessage("null")
		}
		changed = true
	}
	if !changed {
		return raw, nil
	}
	return json.Marshal(fields)
}

// stringFieldNames 返回结构体中普通 string 字段的 JSON 名称
func stringFieldNames(target reflect.Type) []string {
	if cached, ok := stringFieldCache.Load(target); ok {
		return cached.([]string)
	}
	names := make([]string, 0, target.NumField())
	for i := 0; i < target.NumField(); i++ {
		field := target.Field(i)
		if !field.IsExported() || field.Type.Kind() != reflect.String {
			continue
		}
		if reflect.PointerTo(field.Type).Implements(jsonUnmarshalerType) {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		names = append(names, name)
	}
	stringFieldCache.Store(target, names)
	return names
}
