package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"
	"english_edu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProgressEvent 进度事件，三个来源：测验完成、视频观看、主题完成
type ProgressEvent interface {
	isProgressEvent()
}

type QuizCompleted struct {
	QuizID uint
	Score  int
	Passed bool
}

type VideoWatched struct {
	VideoID   uint
	WatchTime int
}

type TopicCompleted struct {
	TopicID uint
	Title   string
	Score   int
}

func (QuizCompleted) isProgressEvent() {}
func (VideoWatched) isProgressEvent() {}
func (TopicCompleted) isProgressEvent() {}

// ProgressStore 进度文档的存储面，由 repository.ProgressRepository 实现
type ProgressStore interface {
	FindByUserAndModule(userID, moduleID uint) (*model.UserProgress, error)
	Create(p *model.UserProgress) error
	UpdateVersioned(p *model.UserProgress) (bool, error)
	ListByUser(userID uint) ([]model.UserProgress, error)
	TopByPoints(moduleID uint, limit int) ([]model.UserProgress, error)
	Delete(userID, moduleID uint) error
}

type ProgressService struct {
	ProgressRepo ProgressStore
	ModuleRepo   *repository.ModuleRepository
	VideoRepo    *repository.VideoRepository
	UserRepo     *repository.UserRepository
	Achievement  *AchievementService
	Redis        *redis.Client
	DB           *gorm.DB
}

func NewProgressService(
	progressRepo ProgressStore,
	moduleRepo *repository.ModuleRepository,
	videoRepo *repository.VideoRepository,
	userRepo *repository.UserRepository,
	achievement *AchievementService,
	rdb *redis.Client,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		ModuleRepo:   moduleRepo,
		VideoRepo:    videoRepo,
		UserRepo:     userRepo,
		Achievement:  achievement,
		Redis:        rdb,
		DB:           db,
	}
}

// GetOrCreate 懒创建 (user, module) 进度文档。
// 并发首次访问撞唯一索引时重读已有行。
func (s *ProgressService) GetOrCreate(userID, moduleID uint) (*model.UserProgress, error) {
	p, err := s.ProgressRepo.FindByUserAndModule(userID, moduleID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, util.ErrProgressNotFound) {
		return nil, err
	}

	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return nil, err
	}

	p = &model.UserProgress{
		UserID:       userID,
		ModuleID:     moduleID,
		Status:       model.ProgressNotStarted,
		LastActivity: time.Now(),
	}
	err = s.ProgressRepo.Create(p)
	if errors.Is(err, util.ErrConcurrentUpdate) {
		return s.ProgressRepo.FindByUserAndModule(userID, moduleID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyProgressEvent 先显式确保进度文档存在，再按事件类型合并
func (s *ProgressService) ApplyProgressEvent(userID, moduleID uint, event ProgressEvent) error {
	if _, err := s.GetOrCreate(userID, moduleID); err != nil {
		return err
	}

	switch e := event.(type) {
	case QuizCompleted:
		return s.applyQuizCompleted(userID, moduleID, e)
	case VideoWatched:
		return s.applyVideoWatched(userID, moduleID, e)
	case TopicCompleted:
		return s.applyTopicCompleted(userID, moduleID, e)
	default:
		return fmt.Errorf("unknown progress event %T", event)
	}
}

// UpdateProgress 直接合并 {percentage, points, timeSpent}，
// 文档不存在时上抛 NotFound，调用方必须先 GetOrCreate
func (s *ProgressService) UpdateProgress(userID, moduleID uint, update model.ProgressUpdate) error {
	return s.mutate(userID, moduleID, func(p *model.UserProgress) error {
		p.ApplyUpdate(update, time.Now())
		return nil
	})
}

func (s *ProgressService) applyQuizCompleted(userID, moduleID uint, e QuizCompleted) error {
	err := s.mutate(userID, moduleID, func(p *model.UserProgress) error {
		p.ApplyQuizAttempt(e.QuizID, e.Score, time.Now())
		return nil
	})
	if err != nil {
		return err
	}
	s.refreshLeaderboard(userID, moduleID)
	return nil
}

func (s *ProgressService) applyVideoWatched(userID, moduleID uint, e VideoWatched) error {
	video, err := s.VideoRepo.FindByID(e.VideoID)
	if err != nil {
		return err
	}
	return s.mutate(userID, moduleID, func(p *model.UserProgress) error {
		p.ApplyVideoWatched(e.VideoID, e.WatchTime, video.DurationSeconds, time.Now())
		return nil
	})
}

func (s *ProgressService) applyTopicCompleted(userID, moduleID uint, e TopicCompleted) error {
	totalTopics, err := s.totalTopics(moduleID)
	if err != nil {
		return err
	}
	return s.mutate(userID, moduleID, func(p *model.UserProgress) error {
		p.AddCompletedTopic(e.TopicID, e.Title, e.Score, totalTopics, time.Now())
		return nil
	})
}

// totalTopics 读取模块配置的完成度分母，未配置时按实际主题数兜底
func (s *ProgressService) totalTopics(moduleID uint) (int, error) {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		return 0, err
	}
	if module.TotalTopics > 0 {
		return module.TotalTopics, nil
	}
	count, err := s.ModuleRepo.CountTopics(moduleID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// mutate 在乐观锁重试环里对进度文档做 read-modify-write。
// 版本号没命中说明有并发写入，重读后重放变更；
// 重试耗尽上抛冲突错误，绝不丢增量。
func (s *ProgressService) mutate(userID, moduleID uint, fn func(*model.UserProgress) error) error {
	for i := 0; i < util.ProgressMaxRetries; i++ {
		p, err := s.ProgressRepo.FindByUserAndModule(userID, moduleID)
		if err != nil {
			return err
		}

		wasCompleted := p.Status == model.ProgressCompleted
		if err := fn(p); err != nil {
			return err
		}

		ok, err := s.ProgressRepo.UpdateVersioned(p)
		if err != nil {
			return err
		}
		if ok {
			if !wasCompleted && p.Status == model.ProgressCompleted && s.Achievement != nil {
				s.Achievement.CheckModuleCompleted(userID, moduleID)
			}
			return nil
		}
		monitoring.ProgressConflicts.Inc()
	}
	return util.ErrConcurrentUpdate
}

func (s *ProgressService) GetProgress(userID, moduleID uint) (*model.UserProgress, error) {
	return s.ProgressRepo.FindByUserAndModule(userID, moduleID)
}

// ResetProgress 账号重置时显式删除进度文档
func (s *ProgressService) ResetProgress(userID, moduleID uint) error {
	if _, err := s.ProgressRepo.FindByUserAndModule(userID, moduleID); err != nil {
		return err
	}
	if err := s.ProgressRepo.Delete(userID, moduleID); err != nil {
		return err
	}
	if s.Redis != nil {
		s.Redis.ZRem(context.Background(), leaderboardKey(moduleID), fmt.Sprint(userID))
	}
	return nil
}

// ProgressSummary 用户全量进度摘要
type ProgressSummary struct {
	TotalModules     int                  `json:"totalModules"`
	CompletedModules int                  `json:"completedModules"`
	TotalPoints      int                  `json:"totalPoints"`
	TotalTimeSpent   int                  `json:"totalTimeSpent"`
	AveragePercent   float64              `json:"averagePercent"`
	Modules          []model.UserProgress `json:"modules"`
}

func (s *ProgressService) GetSummary(userID uint) (*ProgressSummary, error) {
	list, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{Modules: list}
	sum := 0
	for _, p := range list {
		summary.TotalModules++
		if p.Status == model.ProgressCompleted {
			summary.CompletedModules++
		}
		summary.TotalPoints += p.Points
		summary.TotalTimeSpent += p.TimeSpent
		sum += p.Percentage
	}
	if summary.TotalModules > 0 {
		summary.AveragePercent = float64(sum) / float64(summary.TotalModules)
	}
	return summary, nil
}

// LeaderboardEntry 模块积分榜条目
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Points int    `json:"points"`
}

func leaderboardKey(moduleID uint) string {
	return fmt.Sprintf("leaderboard:module:%d", moduleID)
}

// refreshLeaderboard 积分变化后回写 Redis 有序集合，
// 失败只记日志，榜单读取有 DB 兜底
func (s *ProgressService) refreshLeaderboard(userID, moduleID uint) {
	if s.Redis == nil {
		return
	}
	p, err := s.ProgressRepo.FindByUserAndModule(userID, moduleID)
	if err != nil {
		return
	}
	err = s.Redis.ZAdd(context.Background(), leaderboardKey(moduleID), &redis.Z{
		Score:  float64(p.Points),
		Member: fmt.Sprint(userID),
	}).Err()
	if err != nil {
		logger.Log.Warn("leaderboard refresh failed", zap.Uint("module_id", moduleID), zap.Error(err))
	}
}

// GetLeaderboard 读取模块积分榜，优先 Redis，降级走 DB
func (s *ProgressService) GetLeaderboard(moduleID uint, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return nil, err
	}

	entries := s.leaderboardFromRedis(moduleID, limit)
	if entries == nil {
		list, err := s.ProgressRepo.TopByPoints(moduleID, limit)
		if err != nil {
			return nil, err
		}
		for _, p := range list {
			entries = append(entries, LeaderboardEntry{UserID: p.UserID, Points: p.Points})
		}
	}

	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	users, err := s.UserRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for i := range entries {
		entries[i].Rank = i + 1
		if u, ok := byID[entries[i].UserID]; ok {
			entries[i].Name = u.Name
			entries[i].Avatar = u.Avatar
		}
	}
	return entries, nil
}

func (s *ProgressService) leaderboardFromRedis(moduleID uint, limit int) []LeaderboardEntry {
	if s.Redis == nil {
		return nil
	}
	zs, err := s.Redis.ZRevRangeWithScores(context.Background(), leaderboardKey(moduleID), 0, int64(limit-1)).Result()
	if err != nil || len(zs) == 0 {
		return nil
	}
	entries := make([]LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		entries = append(entries, LeaderboardEntry{
			UserID: util.MustParseUint(member),
			Points: int(z.Score),
		})
	}
	return entries
}
