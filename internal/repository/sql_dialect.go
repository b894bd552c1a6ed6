package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// 审计 payload 中参与模糊搜索的键
var payloadSearchKeys = []string{"status", "ship_method", "tracking_number", "notes"}

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func jsonTextExprByDialect(dialect, column, key string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return fmt.Sprintf("(%s::jsonb ->> '%s')", column, key)
	default:
		return fmt.Sprintf("json_extract(%s, '$.\"%s\"')", column, key)
	}
}

// buildPayloadLikeCondition 构建普通列 + payload JSON 键的 LIKE 条件，并返回参数数量。
func buildPayloadLikeCondition(db *gorm.DB, plainColumns []string, payloadColumn string) (string, int) {
	return buildPayloadLikeConditionByDialect(dbDialectName(db), plainColumns, payloadColumn)
}

func buildPayloadLikeConditionByDialect(dialect string, plainColumns []string, payloadColumn string) (string, int) {
	parts := make([]string, 0, len(plainColumns)+len(payloadSearchKeys))
	operator := likeOperatorByDialect(dialect)

	for _, column := range plainColumns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
	}
	if payloadColumn = strings.TrimSpace(payloadColumn); payloadColumn != "" {
		for _, key := range payloadSearchKeys {
			parts = append(parts, fmt.Sprintf("%s %s ?", jsonTextExprByDialect(dialect, payloadColumn, key), operator))
		}
	}
	return "(" + strings.Join(parts, " OR ") + ")", len(parts)
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
