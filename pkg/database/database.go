package database

import (
	"fmt"
	"log"

	"english_edu_backend/internal/config"
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/util"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Module{},
		&model.Topic{},
		&model.TopicNote{},
		&model.TopicLink{},
		&model.Video{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.UserProgress{},
		&model.Achievement{},
		&model.Motivation{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedDefaults(db)

	return db, nil
}

// seedDefaults 首次启动时写入默认数据
func seedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&model.Motivation{}).Count(&count)
	if count == 0 {
		defaultMotivations := []string{
			"Every word you learn is a door you open.",
			"Practice English a little every day - consistency beats intensity.",
			"Mistakes are proof that you are trying.",
			"The limits of my language mean the limits of my world.",
		}
		for i, content := range defaultMotivations {
			motivation := &model.Motivation{
				Content:         content,
				IsEnabled:       true,
				IsCurrentlyUsed: i == 0,
			}
			db.Create(motivation)
		}
	}

	var moduleCount int64
	db.Model(&model.Module{}).Count(&moduleCount)
	if moduleCount == 0 {
		defaultModules := []model.Module{
			{Title: "Everyday Conversations", Description: "Greetings, small talk and daily routines", Level: model.Beginner, Order: 1, TotalTopics: util.DefaultTotalTopics, IsPublished: true},
			{Title: "Grammar Essentials", Description: "Tenses, articles and prepositions", Level: model.Beginner, Order: 2, TotalTopics: util.DefaultTotalTopics, IsPublished: true},
			{Title: "Business English", Description: "Meetings, emails and presentations", Level: model.Intermediate, Order: 3, TotalTopics: util.DefaultTotalTopics, IsPublished: true},
			{Title: "Academic Writing", Description: "Essays, citation and formal style", Level: model.Advanced, Order: 4, TotalTopics: util.DefaultTotalTopics},
		}
		for _, m := range defaultModules {
			db.Create(&m)
		}
	}
}
