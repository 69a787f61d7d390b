package model

import "time"

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not-started"
	ProgressInProgress ProgressStatus = "in-progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// CompletedTopic 已完成主题条目，topicId 在列表中唯一
type CompletedTopic struct {
	TopicID     uint      `json:"topicId"`
	TopicTitle  string    `json:"topicTitle"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// QuizAttemptSummary 按测验去规范化的汇总，区别于完整的 QuizAttempt 历史
type QuizAttemptSummary struct {
	QuizID        uint      `json:"quizId"`
	BestScore     int       `json:"bestScore"`
	TotalAttempts int       `json:"totalAttempts"`
	LastAttempt   time.Time `json:"lastAttempt"`
}

type VideoProgress struct {
	VideoID     uint       `json:"videoId"`
	Watched     bool       `json:"watched"`
	WatchTime   int        `json:"watchTime"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// UserProgress 每个 (user, module) 唯一的进度汇总文档。
// 子列表以 JSON 列存储，整行受 Version 列的乐观锁保护，
// 并发事件通过带重试的 read-modify-write 合并，不会丢更新。
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID          uint                 `gorm:"uniqueIndex:idx_user_module;type:bigint unsigned" json:"userId"`
	ModuleID        uint                 `gorm:"uniqueIndex:idx_user_module;type:bigint unsigned" json:"moduleId"`
	Percentage      int                  `gorm:"default:0" json:"percentage"`
	Status          ProgressStatus       `gorm:"type:enum('not-started','in-progress','completed');default:'not-started'" json:"status"`
	TimeSpent       int                  `gorm:"default:0" json:"timeSpent"`
	Points          int                  `gorm:"default:0" json:"points"`
	LastActivity    time.Time            `json:"lastActivity"`
	CompletedTopics []CompletedTopic     `gorm:"type:json;serializer:json" json:"completedTopics"`
	QuizAttempts    []QuizAttemptSummary `gorm:"type:json;serializer:json" json:"quizAttempts"`
	VideoProgress   []VideoProgress      `gorm:"type:json;serializer:json" json:"videoProgress"`
	Version         int                  `gorm:"default:0" json:"-"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// ProgressUpdate 是一次 updateProgress 合并的输入。
// Percentage 为覆盖写（nil 表示不动），Points/TimeSpent 为增量。
type ProgressUpdate struct {
	Percentage *int
	Points     int
	TimeSpent  int
}

// ApplyUpdate 合并进度字段：百分比收敛到 [0,100]，
// 负的积分增量被丢弃（累计积分只增不减），学习时长累加，
// 状态随百分比派生，lastActivity 每次都刷新。
func (p *UserProgress) ApplyUpdate(u ProgressUpdate, now time.Time) {
	if u.Percentage != nil {
		pct := *u.Percentage
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		p.Percentage = pct
		p.deriveStatus()
	}
	if u.Points > 0 {
		p.Points += u.Points
	}
	if u.TimeSpent > 0 {
		p.TimeSpent += u.TimeSpent
	}
	p.LastActivity = now
}

// AddCompletedTopic 幂等 upsert：同一 topicId 只保留一条，
// 重复完成保留历史最高分并刷新时间戳，然后按 totalTopics 重算百分比。
func (p *UserProgress) AddCompletedTopic(topicID uint, title string, score int, totalTopics int, now time.Time) {
	found := false
	for i := range p.CompletedTopics {
		if p.CompletedTopics[i].TopicID == topicID {
			if score > p.CompletedTopics[i].Score {
				p.CompletedTopics[i].Score = score
			}
			p.CompletedTopics[i].CompletedAt = now
			found = true
			break
		}
	}
	if !found {
		p.CompletedTopics = append(p.CompletedTopics, CompletedTopic{
			TopicID:     topicID,
			TopicTitle:  title,
			Score:       score,
			CompletedAt: now,
		})
	}

	if totalTopics > 0 {
		pct := len(p.CompletedTopics) * 100 / totalTopics
		if pct > 100 {
			pct = 100
		}
		p.Percentage = pct
		p.deriveStatus()
	}
	p.LastActivity = now
}

// ApplyQuizAttempt 按 quizId upsert 测验汇总并奖励积分：
// 每 10 个百分点 1 分，按本次（而非最佳）分数计，鼓励反复练习。
func (p *UserProgress) ApplyQuizAttempt(quizID uint, score int, now time.Time) {
	found := false
	for i := range p.QuizAttempts {
		if p.QuizAttempts[i].QuizID == quizID {
			if score > p.QuizAttempts[i].BestScore {
				p.QuizAttempts[i].BestScore = score
			}
			p.QuizAttempts[i].TotalAttempts++
			p.QuizAttempts[i].LastAttempt = now
			found = true
			break
		}
	}
	if !found {
		p.QuizAttempts = append(p.QuizAttempts, QuizAttemptSummary{
			QuizID:        quizID,
			BestScore:     score,
			TotalAttempts: 1,
			LastAttempt:   now,
		})
	}

	if pts := score / 10; pts > 0 {
		p.Points += pts
	}
	p.LastActivity = now
}

// ApplyVideoWatched 按 videoId upsert 观看记录并累加观看时长。
// durationSeconds > 0 且累计观看达到 90% 时标记为已看完。
func (p *UserProgress) ApplyVideoWatched(videoID uint, watchTime int, durationSeconds int, now time.Time) {
	var entry *VideoProgress
	for i := range p.VideoProgress {
		if p.VideoProgress[i].VideoID == videoID {
			entry = &p.VideoProgress[i]
			break
		}
	}
	if entry == nil {
		p.VideoProgress = append(p.VideoProgress, VideoProgress{VideoID: videoID})
		entry = &p.VideoProgress[len(p.VideoProgress)-1]
	}

	if watchTime > 0 {
		entry.WatchTime += watchTime
		p.TimeSpent += watchTime
	}
	if !entry.Watched && durationSeconds > 0 && entry.WatchTime*10 >= durationSeconds*9 {
		entry.Watched = true
		completedAt := now
		entry.CompletedAt = &completedAt
	}
	p.LastActivity = now
}

// deriveStatus: 100 -> completed，>0 -> in-progress，0 不回退状态
func (p *UserProgress) deriveStatus() {
	switch {
	case p.Percentage == 100:
		p.Status = ProgressCompleted
	case p.Percentage > 0:
		p.Status = ProgressInProgress
	}
}
