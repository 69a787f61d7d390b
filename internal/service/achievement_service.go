package service

import (
	"fmt"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/pkg/logger"

	"go.uber.org/zap"
)

// 成就编码与奖励，授予时一并发放经验值
const (
	AchievementFirstPass    = "first_quiz_passed"
	AchievementPerfectFirst = "perfect_first_try"
	AchievementTenAttempts  = "ten_attempts"
	AchievementModuleDone   = "module_completed"
)

type AchievementService struct {
	Repo        *repository.AchievementRepository
	AttemptRepo *repository.QuizAttemptRepository
	UserRepo    *repository.UserRepository
}

func NewAchievementService(
	repo *repository.AchievementRepository,
	attemptRepo *repository.QuizAttemptRepository,
	userRepo *repository.UserRepository,
) *AchievementService {
	return &AchievementService{Repo: repo, AttemptRepo: attemptRepo, UserRepo: userRepo}
}

// GetUserAchievements 返回用户已获得的全部成就
func (s *AchievementService) GetUserAchievements(userID uint) ([]model.Achievement, error) {
	return s.Repo.FindByUserID(userID)
}

// CheckQuizMilestones 在测验提交后检查并授予里程碑成就。
// 授予失败只记日志，不影响提交流程
func (s *AchievementService) CheckQuizMilestones(userID uint, attempt *model.QuizAttempt) {
	if attempt.Passed {
		s.grant(userID, AchievementFirstPass, "初次通关", "badge-first-pass", 50)
	}
	if attempt.AttemptNumber == 1 && attempt.Score == 100 {
		s.grant(userID, AchievementPerfectFirst, "一次满分", "badge-perfect", 100)
	}
	total, err := s.AttemptRepo.CountByUser(userID)
	if err != nil {
		logger.Log.Warn("统计用户提交次数失败", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if total >= 10 {
		s.grant(userID, AchievementTenAttempts, "十次挑战", "badge-ten", 30)
	}
}

// CheckModuleCompleted 模块进度达到 100% 时授予，编码带模块 ID，
// 每个模块各自只授一次
func (s *AchievementService) CheckModuleCompleted(userID, moduleID uint) {
	code := fmt.Sprintf("%s_%d", AchievementModuleDone, moduleID)
	s.grant(userID, code, "模块通关", "badge-module", 80)
}

func (s *AchievementService) grant(userID uint, code, name, icon string, xp int) {
	created, err := s.Repo.Create(&model.Achievement{
		UserID:   userID,
		Code:     code,
		Name:     name,
		Icon:     icon,
		EarnedXP: xp,
	})
	if err != nil {
		logger.Log.Warn("授予成就失败", zap.Uint("user_id", userID), zap.String("code", code), zap.Error(err))
		return
	}
	if !created {
		return
	}
	if err := s.UserRepo.UpdateXP(userID, xp); err != nil {
		logger.Log.Warn("发放经验值失败", zap.Uint("user_id", userID), zap.String("code", code), zap.Error(err))
	}
}
