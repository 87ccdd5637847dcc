package database

import (
	"fmt"
	"guidly_backend/internal/config"
	"guidly_backend/internal/model"
	"log"

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
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Assignment{},
		&model.Question{},
		&model.Misconception{},
		&model.QuestionMisconception{},
		&model.StudentSession{},
		&model.StudentResponse{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedMisconceptions(db)

	return db, nil
}

// seedMisconceptions loads the curated catalog on first boot. The catalog is
// authored data; insertion order fixes the "first in catalog order" tie-break
// used by the selector.
func seedMisconceptions(db *gorm.DB) {
	var count int64
	db.Model(&model.Misconception{}).Count(&count)
	if count > 0 {
		return
	}

	for _, m := range SeedMisconceptions {
		m := m
		db.Create(&m)
	}

	log.Printf("Seeded %d misconceptions", len(SeedMisconceptions))
}
