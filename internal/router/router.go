package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizraft/quizraft-backend/internal/config"
	"github.com/quizraft/quizraft-backend/internal/handler"
	"github.com/quizraft/quizraft-backend/internal/middleware"
	"github.com/quizraft/quizraft-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz *handler.QuizHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for uploads: ingestion is the only slow endpoint.
	uploadLimiter := middleware.NewRateLimiter(cfg.UploadRatePerMinute, time.Minute)

	// ─── Quiz API ──────────────────────────────────────────────────────
	quizAPI := router.Group("/api/v1/quiz")
	{
		quizAPI.POST("/upload", uploadLimiter.Middleware(), handlers.Quiz.Upload)

		quizAPI.GET("/:session_id/settings", handlers.Quiz.GetSettings)
		quizAPI.GET("/:session_id/question", handlers.Quiz.GetCurrentQuestion)
		quizAPI.POST("/:session_id/answer", handlers.Quiz.SubmitAnswer)
		quizAPI.GET("/:session_id/stats", handlers.Quiz.GetStats)
		quizAPI.POST("/:session_id/move-to-bottom", handlers.Quiz.MoveToBottom)
		quizAPI.POST("/:session_id/reset", handlers.Quiz.Reset)
		quizAPI.DELETE("/:session_id", handlers.Quiz.Invalidate)
	}

	return router
}
