package model

type ModuleLevel string

const (
	Beginner     ModuleLevel = "beginner"
	Intermediate ModuleLevel = "intermediate"
	Advanced     ModuleLevel = "advanced"
)

// Module 英语学习模块，由若干主题（Topic）组成
// swagger:model Module
type Module struct {
	BaseModel
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Level       ModuleLevel `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"level"`
	CoverURL    string      `gorm:"size:255" json:"coverUrl"`
	Order       int         `gorm:"default:0" json:"order"`
	// TotalTopics 是完成度百分比的分母，由内容增删时维护，
	// 聚合时按调用时刻的值读取
	TotalTopics int     `gorm:"default:0" json:"totalTopics"`
	IsPublished bool    `gorm:"default:false" json:"isPublished"`
	Topics      []Topic `gorm:"foreignKey:ModuleID" json:"topics,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// Topic 模块内的内容单元（视频 + 测验 + 笔记 + 链接），完成度按主题统计
// swagger:model Topic
type Topic struct {
	BaseModel
	ModuleID    uint        `gorm:"index;type:bigint unsigned" json:"moduleId"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Order       int         `gorm:"default:0" json:"order"`
	Videos      []Video     `gorm:"foreignKey:TopicID" json:"videos,omitempty"`
	Notes       []TopicNote `gorm:"foreignKey:TopicID" json:"notes,omitempty"`
	Links       []TopicLink `gorm:"foreignKey:TopicID" json:"links,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}

type TopicNote struct {
	BaseModel
	TopicID uint   `gorm:"index;type:bigint unsigned" json:"topicId"`
	Title   string `gorm:"size:255" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Order   int    `gorm:"default:0" json:"order"`
}

func (TopicNote) TableName() string {
	return "topic_notes"
}

type TopicLink struct {
	BaseModel
	TopicID uint   `gorm:"index;type:bigint unsigned" json:"topicId"`
	Title   string `gorm:"size:255" json:"title"`
	URL     string `gorm:"size:512;not null" json:"url"`
	Order   int    `gorm:"default:0" json:"order"`
}

func (TopicLink) TableName() string {
	return "topic_links"
}
