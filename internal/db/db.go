package db

import (
	"os"
	"rereddit/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=rereddit port=5432 sslmode=disable TimeZone=UTC"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zap.S().Fatalf("Failed to connect to database: %v", err)
	}

	zap.S().Info("Database connection established")

	if err := Migrate(DB); err != nil {
		zap.S().Fatalf("Failed to migrate database: %v", err)
	}
	zap.S().Info("Database migration completed")

	seedSubs()
}

// Migrate creates or updates the schema. Shared with the tests, which run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Sub{},
		&models.SubMembership{},
		&models.Post{},
		&models.Comment{},
		&models.CommentVote{},
		&models.PostVote{},
	)
}

func seedSubs() {
	// 检查是否已有社区数据
	var count int64
	DB.Model(&models.Sub{}).Count(&count)
	if count > 0 {
		zap.S().Info("Subs already seeded, skipping")
		return
	}

	subs := []models.Sub{
		{Title: "announcements", Description: "Site-wide announcements"},
		{Title: "askreddit", Description: "Ask and answer open-ended questions"},
		{Title: "programming", Description: "Computer programming"},
	}

	for _, sub := range subs {
		if err := DB.Create(&sub).Error; err != nil {
			zap.S().Warnf("Failed to create sub %s: %v", sub.Title, err)
		}
	}
	zap.S().Info("Initial subs created successfully")
}
