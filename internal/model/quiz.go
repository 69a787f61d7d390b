package model

type QuestionType string

const (
	QuestionBasic    QuestionType = "basic"
	QuestionScenario QuestionType = "scenario"
)

// Quiz 主题测验，PassingScore 按调整后分数判定通过
// swagger:model Quiz
type Quiz struct {
	BaseModel
	TopicID      uint   `gorm:"index;type:bigint unsigned" json:"topicId"`
	ModuleID     uint   `gorm:"index;type:bigint unsigned" json:"moduleId"`
	Title        string `gorm:"size:255;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	PassingScore int    `gorm:"default:70" json:"passingScore"`
	// AttemptLimit 为 0 表示不限次数
	AttemptLimit int            `gorm:"default:0" json:"attemptLimit"`
	IsPublished  bool           `gorm:"default:false" json:"isPublished"`
	Questions    []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion 单选题，basic 为普通题干，scenario 额外携带情景描述
// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID        uint         `gorm:"index;type:bigint unsigned" json:"quizId"`
	Type          QuestionType `gorm:"type:enum('basic','scenario');default:'basic'" json:"type"`
	Prompt        string       `gorm:"type:text;not null" json:"prompt"`
	Scenario      string       `gorm:"type:text" json:"scenario,omitempty"`
	Options       []string     `gorm:"type:json;serializer:json" json:"options"`
	CorrectAnswer int          `gorm:"not null" json:"-"`
	Explanation   string       `gorm:"type:text" json:"explanation,omitempty"`
	Order         int          `gorm:"default:0" json:"order"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
