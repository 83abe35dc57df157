package database

import (
	"blackboard_backend/internal/config"
	"blackboard_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if shouldMigrate(cfg) {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return db, nil
}

// shouldMigrate release 模式下建表结构交给运维管理，只有 -migrate/-migrate-only
// 显式要求时才自动迁移；其余模式每次启动都迁移
func shouldMigrate(cfg *config.Config) bool {
	if cfg.ForceMigrate {
		return true
	}
	return cfg.Server.Mode != "release"
}

// Migrate 建表并写入默认数据，测试中也会对内存库调用
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseWeek{},
		&model.CourseEnrollment{},
		&model.Assignment{},
		&model.Submission{},
		&model.Material{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizSubmission{},
		&model.Survey{},
		&model.SurveyQuestion{},
		&model.SurveyResponse{},
		&model.AssistantMessage{},
	)
	if err != nil {
		return err
	}

	// 默认课程卡片配色，前端按课程 ID 轮换使用
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count == 0 {
		defaultCourses := []model.Course{
			{Name: "人工智能导论", Info: "覆盖机器学习、神经网络与深度学习基础", TotalWeeks: 16, CurrentWeek: 1, Color: "from-blue-500 to-cyan-500"},
		}
		for _, c := range defaultCourses {
			db.Create(&c)
		}
	}

	return nil
}
