package service

import (
	"strconv"
	"strings"
	"time"
)

var orderDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseOrderDate 解析后端日期字符串，无时区信息的值按 loc 解释
func ParseOrderDate(raw string, loc *time.Location) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range orderDateLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// CalendarDaysBetween 按 now 所在时区的自然日计算天数差
func CalendarDaysBetween(createdAt, now time.Time) int {
	loc := now.Location()
	c := createdAt.In(loc)
	from := time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// AgeLabel 生成订单账龄标签（Today / 1 Day / N Days），createdAt 为空时返回空串
func AgeLabel(createdAt *time.Time, now time.Time) string {
	if createdAt == nil || createdAt.IsZero() {
		return ""
	}
	days := CalendarDaysBetween(*createdAt, now)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "1 Day"
	default:
		return strconv.Itoa(days) + " Days"
	}
}

// OrderAgeLabel 根据订单日期字符串生成账龄标签
func OrderAgeLabel(orderDate string, now time.Time) string {
	created, ok := ParseOrderDate(orderDate, now.Location())
	if !ok {
		return ""
	}
	return AgeLabel(&created, now)
}
