package repository

import (
	"context"
	"errors"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndModule(userID, moduleID uint) (*model.UserProgress, error) {
	var p model.UserProgress
	err := withRetry(func(ctx context.Context) error {
		return r.DB.WithContext(ctx).
			Where("user_id = ? AND module_id = ?", userID, moduleID).
			First(&p).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create 懒创建进度文档；(user_id, module_id) 唯一索引保证
// 并发首次访问只留下一行，撞索引时由调用方重读。
func (r *ProgressRepository) Create(p *model.UserProgress) error {
	return withRetry(func(ctx context.Context) error {
		err := r.DB.WithContext(ctx).Create(p).Error
		if isDuplicateKey(err) {
			return util.ErrConcurrentUpdate
		}
		return err
	})
}

// UpdateVersioned 以乐观锁写回整个进度文档：
// WHERE id AND version 命中才更新并递增版本号，返回是否命中。
func (r *ProgressRepository) UpdateVersioned(p *model.UserProgress) (bool, error) {
	updated := *p
	updated.Version = p.Version + 1

	var rows int64
	err := withRetry(func(ctx context.Context) error {
		res := r.DB.WithContext(ctx).Model(&model.UserProgress{}).
			Where("id = ? AND version = ?", p.ID, p.Version).
			Select("Percentage", "Status", "TimeSpent", "Points", "LastActivity",
				"CompletedTopics", "QuizAttempts", "VideoProgress", "Version").
			Updates(updated)
		rows = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.UserProgress, error) {
	var list []model.UserProgress
	err := r.DB.Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

// TopByPoints 模块内按积分排序的进度行，Redis 不可用时的兜底
func (r *ProgressRepository) TopByPoints(moduleID uint, limit int) ([]model.UserProgress, error) {
	var list []model.UserProgress
	err := r.DB.
		Where("module_id = ?", moduleID).
		Order("points DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// Delete 账号重置时显式清除进度
func (r *ProgressRepository) Delete(userID, moduleID uint) error {
	return r.DB.
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Delete(&model.UserProgress{}).Error
}
