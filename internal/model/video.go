package model

// Video 主题下的教学视频
// swagger:model Video
type Video struct {
	BaseModel
	TopicID         uint   `gorm:"index;type:bigint unsigned" json:"topicId"`
	ModuleID        uint   `gorm:"index;type:bigint unsigned" json:"moduleId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	URL             string `gorm:"size:512" json:"url"`
	ThumbnailURL    string `gorm:"size:512" json:"thumbnailUrl"`
	DurationSeconds int    `gorm:"default:0" json:"durationSeconds"`
	Width           int    `gorm:"default:0" json:"width"`
	Height          int    `gorm:"default:0" json:"height"`
	Order           int    `gorm:"default:0" json:"order"`
}

func (Video) TableName() string {
	return "videos"
}
