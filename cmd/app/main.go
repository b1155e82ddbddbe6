package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/MarianaQC/courseplatform-api/config"
	"github.com/MarianaQC/courseplatform-api/internal/application/usecase"
	"github.com/MarianaQC/courseplatform-api/internal/domain"
	"github.com/MarianaQC/courseplatform-api/internal/infrastructure/cache"
	"github.com/MarianaQC/courseplatform-api/internal/infrastructure/repository"
	"github.com/MarianaQC/courseplatform-api/internal/infrastructure/security"
	"github.com/MarianaQC/courseplatform-api/internal/middleware"
	handlers "github.com/MarianaQC/courseplatform-api/internal/transport/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}

	// Миграции
	if err := db.AutoMigrate(&domain.User{}, &domain.Course{}, &domain.Lesson{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	// Частичный уникальный индекс: среди АКТИВНЫХ уроков курса позиции не
	// повторяются, удаленные уроки могут занимать любые. AutoMigrate партиальные
	// индексы не умеет, поэтому создаем руками.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_lessons_course_order_active
		ON lessons (course_id, "order") WHERE is_deleted = false`).Error; err != nil {
		log.Fatalf("Index creation failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.AccessSecret, cfg.RefreshSecret)
	tokenCache := cache.NewTokenCache(rdb)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db, rdb)
	lessonRepo := repository.NewLessonRepository(db, rdb)

	seed(db, userRepo, courseRepo, hasher, cfg)

	authUC := usecase.NewAuthUseCase(userRepo, tokenCache, hasher, tokenManager)
	courseUC := usecase.NewCourseUseCase(courseRepo)
	lessonUC := usecase.NewLessonUseCase(courseRepo, lessonRepo)

	authHandler := handlers.NewAuthHandler(authUC)
	courseHandler := handlers.NewCourseHandler(courseUC)
	lessonHandler := handlers.NewLessonHandler(lessonUC)
	limiter := middleware.NewRateLimiter(rdb)

	r := handlers.NewRouter(authHandler, courseHandler, lessonHandler, limiter, tokenManager, cfg.AllowedOrigins)

	port := cfg.Port
	if port == "" {
		port = ":8080"
	}
	log.Printf("Course Platform API running on %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// === SEED (наполнение данными, если пусто) ===
func seed(db *gorm.DB, userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, hasher *security.PasswordHasher, cfg config.Config) {
	ctx := context.Background()

	admins, err := userRepo.CountAdmins(ctx)
	if err != nil {
		log.Printf("Seed: admin count failed: %v", err)
		return
	}
	if admins == 0 && cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		hash, err := hasher.Hash(cfg.AdminPassword)
		if err != nil {
			log.Fatalf("Seed: hash failed: %v", err)
		}
		err = userRepo.Create(ctx, &domain.User{
			ID:        uuid.New(),
			Email:     cfg.AdminEmail,
			FirstName: "Admin",
			LastName:  "Admin",
			Password:  hash,
			Role:      domain.RoleAdmin,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
		if err != nil {
			log.Printf("Seed: admin create failed: %v", err)
		} else {
			log.Println(">>> DB Seeded with admin user")
		}
	}

	var count int64
	db.Model(&domain.Course{}).Count(&count)
	if count == 0 {
		err := courseRepo.Create(ctx, &domain.Course{
			ID:        uuid.New(),
			Title:     "Introducción a la plataforma",
			Status:    domain.CourseStatusDraft,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
		if err != nil {
			log.Printf("Seed: course create failed: %v", err)
		} else {
			log.Println(">>> DB Seeded with default course")
		}
	}
}
