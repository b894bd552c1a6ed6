package repository

import "time"

// UpdateIntentListFilter 查询更新意图审计列表的过滤条件
type UpdateIntentListFilter struct {
	Page        int
	PageSize    int
	Action      string
	TargetType  string
	TargetID    string
	Result      string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
