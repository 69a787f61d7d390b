package repository

import (
	"errors"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) Update(module *model.Module) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Module{}, id).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var m model.Module
	err := r.DB.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) FindByIDWithTopics(id uint) (*model.Module, error) {
	var m model.Module
	err := r.DB.
		Preload("Topics", func(db *gorm.DB) *gorm.DB { return db.Order("topics.order") }).
		Preload("Topics.Videos").
		Preload("Topics.Notes").
		Preload("Topics.Links").
		First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModuleRepository) List(publishedOnly bool) ([]model.Module, error) {
	var modules []model.Module
	q := r.DB.Order("`order`")
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}
	err := q.Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *ModuleRepository) UpdateTopic(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

func (r *ModuleRepository) DeleteTopic(id uint) error {
	return r.DB.Delete(&model.Topic{}, id).Error
}

func (r *ModuleRepository) FindTopicByID(id uint) (*model.Topic, error) {
	var t model.Topic
	err := r.DB.
		Preload("Videos").
		Preload("Notes").
		Preload("Links").
		First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTopicNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ModuleRepository) CountTopics(moduleID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Topic{}).Where("module_id = ?", moduleID).Count(&count).Error
	return count, err
}

// SyncTotalTopics 用实际主题数刷新模块的完成度分母
func (r *ModuleRepository) SyncTotalTopics(moduleID uint) error {
	count, err := r.CountTopics(moduleID)
	if err != nil {
		return err
	}
	return r.DB.Model(&model.Module{}).
		Where("id = ?", moduleID).
		Update("total_topics", count).
		Error
}

func (r *ModuleRepository) CreateNote(note *model.TopicNote) error {
	return r.DB.Create(note).Error
}

func (r *ModuleRepository) CreateLink(link *model.TopicLink) error {
	return r.DB.Create(link).Error
}

func (r *ModuleRepository) DeleteNote(id uint) error {
	return r.DB.Delete(&model.TopicNote{}, id).Error
}

func (r *ModuleRepository) DeleteLink(id uint) error {
	return r.DB.Delete(&model.TopicLink{}, id).Error
}
