package repository

import (
	"context"
	"errors"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

// Create 落库一条不可变的提交记录。并发提交撞上
// (user_id, quiz_id, attempt_number) 唯一索引时返回 ErrDuplicateAttempt。
func (r *QuizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	return withRetry(func(ctx context.Context) error {
		err := r.DB.WithContext(ctx).Create(attempt).Error
		if isDuplicateKey(err) {
			return util.ErrDuplicateAttempt
		}
		return err
	})
}

func (r *QuizAttemptRepository) CountByUserAndQuiz(userID, quizID uint) (int64, error) {
	var count int64
	err := withRetry(func(ctx context.Context) error {
		return r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
			Where("user_id = ? AND quiz_id = ?", userID, quizID).
			Count(&count).Error
	})
	return count, err
}

func (r *QuizAttemptRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// FindFirstAttempt 返回首次提交记录，不存在时返回 nil
func (r *QuizAttemptRepository) FindFirstAttempt(userID, quizID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := withRetry(func(ctx context.Context) error {
		return r.DB.WithContext(ctx).
			Where("user_id = ? AND quiz_id = ? AND attempt_number = 1", userID, quizID).
			First(&attempt).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *QuizAttemptRepository) ListByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("attempt_number").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizAttemptRepository) ListByUserAndModule(userID, moduleID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *QuizAttemptRepository) ListByQuiz(quizID uint, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("quiz_id = ?", quizID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}
