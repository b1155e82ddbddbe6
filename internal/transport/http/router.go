package handlers

import (
	"strings"
	"time"

	"github.com/MarianaQC/courseplatform-api/internal/domain"
	"github.com/MarianaQC/courseplatform-api/internal/infrastructure/security"
	"github.com/MarianaQC/courseplatform-api/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	authHandler *AuthHandler,
	courseHandler *CourseHandler,
	lessonHandler *LessonHandler,
	limiter *middleware.RateLimiter,
	tokenManager *security.TokenManager,
	allowedOrigins string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(allowedOrigins, ",")
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		courses := api.Group("/courses")
		courses.Use(middleware.AuthMiddleware(tokenManager))
		{
			courses.GET("/search", courseHandler.Search)
			courses.GET("/:id", courseHandler.GetByID)
			courses.GET("/:id/summary", courseHandler.GetSummary)
			courses.GET("/:id/lessons", lessonHandler.GetByCourse)

			// Мутации курсов — только для админов
			admin := courses.Group("")
			admin.Use(middleware.RequireRoles(domain.RoleAdmin))
			{
				admin.POST("", courseHandler.Create)
				admin.PUT("/:id", courseHandler.Update)
				admin.PATCH("/:id/publish", courseHandler.Publish)
				admin.PATCH("/:id/unpublish", courseHandler.Unpublish)
				admin.GET("/:id/lessons/next-order", lessonHandler.NextOrder)
				admin.POST("/:id/lessons/reorder", lessonHandler.Reorder)
				admin.DELETE("/:id", courseHandler.SoftDelete)
				admin.DELETE("/:id/hard", courseHandler.HardDelete)
			}
		}

		lessons := api.Group("/lessons")
		lessons.Use(middleware.AuthMiddleware(tokenManager))
		{
			lessons.GET("/:id", lessonHandler.GetByID)

			admin := lessons.Group("")
			admin.Use(middleware.RequireRoles(domain.RoleAdmin))
			{
				admin.POST("", lessonHandler.Create)
				admin.PUT("/:id", lessonHandler.Update)
				admin.PATCH("/:id/move-up", lessonHandler.MoveUp)
				admin.PATCH("/:id/move-down", lessonHandler.MoveDown)
				admin.DELETE("/:id", lessonHandler.SoftDelete)
				admin.DELETE("/:id/hard", lessonHandler.HardDelete)
			}
		}
	}

	return r
}
