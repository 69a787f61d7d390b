package model

type Achievement struct {
	BaseModel
	UserID   uint   `gorm:"index:idx_user_achievement,unique;type:bigint unsigned" json:"userId"`
	Code     string `gorm:"index:idx_user_achievement,unique;size:50;not null" json:"code"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Icon     string `gorm:"size:255" json:"icon"`
	EarnedXP int    `gorm:"default:0" json:"earnedXp"`
}

func (Achievement) TableName() string {
	return "achievements"
}
