package service

import (
	"errors"
	"math/rand"
	"time"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
)

// MotivationService 每日激励短句，学习首页展示并定时轮换
type MotivationService struct {
	MotivationRepo *repository.MotivationRepository
}

func NewMotivationService(motivationRepo *repository.MotivationRepository) *MotivationService {
	return &MotivationService{MotivationRepo: motivationRepo}
}

func (s *MotivationService) GetAllMotivations() ([]*model.Motivation, error) {
	return s.MotivationRepo.GetAll()
}

// GetCurrentMotivation 返回当前展示的短句，超过 12 小时且有候选时随机轮换
func (s *MotivationService) GetCurrentMotivation() (string, error) {
	current, err := s.MotivationRepo.GetCurrent()
	if err != nil {
		enabled, err := s.MotivationRepo.GetEnabled()
		if err != nil || len(enabled) == 0 {
			return "", err
		}
		s.MotivationRepo.SetCurrent(enabled[0].ID)
		return enabled[0].Content, nil
	}

	elapsed := time.Since(current.LastUsedAt)
	enabled, err := s.MotivationRepo.GetEnabled()
	if err == nil && len(enabled) > 1 && elapsed.Hours() >= 12 {
		var candidates []*model.Motivation
		for _, m := range enabled {
			if m.ID != current.ID {
				candidates = append(candidates, m)
			}
		}
		if len(candidates) > 0 {
			next := candidates[rand.Intn(len(candidates))]
			s.MotivationRepo.SetCurrent(next.ID)
			return next.Content, nil
		}
	}

	return current.Content, nil
}

func (s *MotivationService) CreateMotivation(content string) error {
	return s.MotivationRepo.Create(&model.Motivation{
		Content:         content,
		IsEnabled:       true,
		IsCurrentlyUsed: false,
	})
}

func (s *MotivationService) UpdateMotivation(id uint, content string, isEnabled bool) error {
	var motivation model.Motivation
	if err := s.MotivationRepo.DB.First(&motivation, id).Error; err != nil {
		return err
	}

	// 禁用当前在用的短句前确认还有别的可用
	current, err := s.MotivationRepo.GetCurrent()
	if err == nil && current.ID == id && !isEnabled {
		enabled, err := s.MotivationRepo.GetEnabled()
		if err != nil {
			return err
		}
		if len(enabled) <= 1 {
			return errors.New("至少需要保留一个启用的激励短句")
		}
	}

	motivation.Content = content
	motivation.IsEnabled = isEnabled
	return s.MotivationRepo.Update(&motivation)
}

func (s *MotivationService) DeleteMotivation(id uint) error {
	current, err := s.MotivationRepo.GetCurrent()
	if err == nil && current.ID == id {
		enabled, err := s.MotivationRepo.GetEnabled()
		if err != nil {
			return err
		}
		if len(enabled) <= 1 {
			return errors.New("至少需要保留一个启用的激励短句")
		}
	}
	return s.MotivationRepo.Delete(id)
}

func (s *MotivationService) SwitchToMotivation(id uint) error {
	motivations, err := s.MotivationRepo.GetAll()
	if err != nil {
		return err
	}

	found := false
	for _, m := range motivations {
		if m.ID == id {
			found = true
			if !m.IsEnabled {
				return errors.New("该激励短句未启用")
			}
			break
		}
	}
	if !found {
		return errors.New("未找到指定的激励短句")
	}

	return s.MotivationRepo.SetCurrent(id)
}
