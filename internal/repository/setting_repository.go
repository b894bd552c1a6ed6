package repository

import (
	"errors"
	"time"

	"github.com/cfc-orderdesk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository 本地设置数据访问接口
type SettingRepository interface {
	GetByKey(key string) (*models.Setting, error)
	Upsert(key string, value models.JSON) (*models.Setting, error)
	ListByKeys(keys []string) ([]models.Setting, error)
}

// GormSettingRepository GORM 实现
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建设置仓库
func NewSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// GetByKey 获取设置，不存在时返回 nil
func (r *GormSettingRepository) GetByKey(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Upsert 按主键写入设置（冲突时覆盖值）
func (r *GormSettingRepository) Upsert(key string, value models.JSON) (*models.Setting, error) {
	if value == nil {
		value = models.JSON{}
	}
	setting := &models.Setting{
		Key:       key,
		ValueJSON: value,
		UpdatedAt: time.Now(),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value_json", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

// ListByKeys 批量读取设置
func (r *GormSettingRepository) ListByKeys(keys []string) ([]models.Setting, error) {
	var settings []models.Setting
	if len(keys) == 0 {
		return settings, nil
	}
	if err := r.db.Where("key IN ?", keys).Order("key asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
