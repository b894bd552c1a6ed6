package repository

import (
	"strings"

	"github.com/cfc-orderdesk/internal/models"

	"gorm.io/gorm"
)

// UpdateIntentRepository 更新意图审计数据访问接口
type UpdateIntentRepository interface {
	Create(intent *models.UpdateIntent) error
	List(filter UpdateIntentListFilter) ([]models.UpdateIntent, int64, error)
	CountByResult() (map[string]int64, error)
}

// GormUpdateIntentRepository GORM 实现
type GormUpdateIntentRepository struct {
	db *gorm.DB
}

// NewUpdateIntentRepository 创建更新意图仓库
func NewUpdateIntentRepository(db *gorm.DB) *GormUpdateIntentRepository {
	return &GormUpdateIntentRepository{db: db}
}

// Create 写入审计记录
func (r *GormUpdateIntentRepository) Create(intent *models.UpdateIntent) error {
	if intent == nil {
		return nil
	}
	return r.db.Create(intent).Error
}

// List 分页查询审计记录（按 id 倒序）
func (r *GormUpdateIntentRepository) List(filter UpdateIntentListFilter) ([]models.UpdateIntent, int64, error) {
	query := r.db.Model(&models.UpdateIntent{})
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.TargetID != "" {
		query = query.Where("target_id = ?", filter.TargetID)
	}
	if filter.Result != "" {
		query = query.Where("result = ?", filter.Result)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, argCount := buildPayloadLikeCondition(r.db, []string{"target_id", "error_message"}, "payload_json")
		query = query.Where(condition, repeatLikeArgs("%"+search+"%", argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var intents []models.UpdateIntent
	if err := query.Order("id desc").Find(&intents).Error; err != nil {
		return nil, 0, err
	}
	return intents, total, nil
}

// CountByResult 按结果统计审计记录数
func (r *GormUpdateIntentRepository) CountByResult() (map[string]int64, error) {
	var rows []struct {
		Result string
		Total  int64
	}
	err := r.db.Model(&models.UpdateIntent{}).
		Select("result, COUNT(*) AS total").
		Group("result").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Result] = row.Total
	}
	return counts, nil
}
