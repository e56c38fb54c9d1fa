package main

import (
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"sourcingsprints.com/bookclub/internal/config"
	"sourcingsprints.com/bookclub/internal/entity"
	"sourcingsprints.com/bookclub/internal/server"
	"sourcingsprints.com/bookclub/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminProfile(db); err != nil {
			log.Fatalf("failed to seed admin profile: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set; login codes and live notifications disabled")
	}

	srv := server.NewServer(db, redisClient, cfg)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Book{},
		&entity.Proposal{},
		&entity.Vote{},
		&entity.Review{},
		&entity.Reaction{},
		&entity.Comment{},
		&entity.Mention{},
		&entity.ReadingStatus{},
		&entity.Notification{},
	)
}

func seedAdminProfile(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "admin@sourcingsprints.com").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin profile already exists, skipping seed")
		return nil
	}

	admin := entity.User{
		Email:       "admin@sourcingsprints.com",
		DisplayName: "Admin",
		IsAdmin:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin profile seeded: admin@sourcingsprints.com")
	return nil
}
