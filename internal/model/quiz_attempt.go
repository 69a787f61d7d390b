package model

import "time"

type AttemptStatus string

const (
	AttemptCompleted  AttemptStatus = "completed"
	AttemptInProgress AttemptStatus = "in-progress"
	AttemptAbandoned  AttemptStatus = "abandoned"
)

// AttemptAnswer 一次提交中单题的作答记录
type AttemptAnswer struct {
	QuestionIndex int  `json:"questionIndex"`
	UserAnswer    int  `json:"userAnswer"`
	IsCorrect     bool `json:"isCorrect"`
	TimeSpent     int  `json:"timeSpent"`
}

// QuizAttempt 一次测验提交的不可变记录，按 (user, quiz) 顺序编号，
// 唯一索引兜底并发下的重复编号
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID        uint            `gorm:"uniqueIndex:idx_user_quiz_attempt;index:idx_user_quiz;type:bigint unsigned" json:"userId"`
	QuizID        uint            `gorm:"uniqueIndex:idx_user_quiz_attempt;index:idx_user_quiz;index:idx_quiz_completed;type:bigint unsigned" json:"quizId"`
	ModuleID      uint            `gorm:"index;type:bigint unsigned" json:"moduleId"`
	AttemptNumber int             `gorm:"uniqueIndex:idx_user_quiz_attempt;not null" json:"attemptNumber"`
	Answers       []AttemptAnswer `gorm:"type:json;serializer:json" json:"answers"`
	Score         int             `json:"score"`
	AdjustedScore int             `json:"adjustedScore"`
	PointsEarned  int             `json:"pointsEarned"`
	Passed        bool            `gorm:"default:false" json:"passed"`
	TimeSpent     int             `json:"timeSpent"`
	Status        AttemptStatus   `gorm:"type:enum('completed','in-progress','abandoned');default:'completed'" json:"status"`
	CompletedAt   time.Time       `gorm:"index:idx_quiz_completed" json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
