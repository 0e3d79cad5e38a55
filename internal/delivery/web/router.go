package web

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Handler        *Handler
	Logger         *zap.Logger
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(cfg.Logger))

	// Cors
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Content-Type", "X-Requested-With"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/", cfg.Handler.Index)
	router.GET("/healthcheck", cfg.Handler.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/quizzes", cfg.Handler.GetQuizzes)
		api.GET("/state", cfg.Handler.GetState)
		api.POST("/quizzes/:index/start", cfg.Handler.StartQuiz)
		api.POST("/answer", cfg.Handler.Answer)
		api.POST("/menu", cfg.Handler.ShowMenu)
		api.POST("/restart", cfg.Handler.Restart)
	}

	return router
}

// requestLogger logs every request through zap.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
