package repository

import (
	"errors"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"

	"gorm.io/gorm"
)

type VideoRepository struct {
	DB *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

func (r *VideoRepository) Create(video *model.Video) error {
	return r.DB.Create(video).Error
}

func (r *VideoRepository) Update(video *model.Video) error {
	return r.DB.Save(video).Error
}

func (r *VideoRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Video{}, id).Error
}

func (r *VideoRepository) FindByID(id uint) (*model.Video, error) {
	var v model.Video
	err := r.DB.First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepository) FindByTopic(topicID uint) ([]model.Video, error) {
	var videos []model.Video
	err := r.DB.Where("topic_id = ?", topicID).Order("`order`").Find(&videos).Error
	return videos, err
}
