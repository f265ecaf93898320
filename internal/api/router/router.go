package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/YuvrajS01/Anon-Feedback-System/config"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/api/handler"
	"github.com/YuvrajS01/Anon-Feedback-System/internal/api/middleware"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/jwt"
	"github.com/YuvrajS01/Anon-Feedback-System/pkg/redis"
)

// Setup builds the Gin engine and route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// respondent flow (anonymous, token-gated; throttled against
		// token guessing)
		v1.POST("/tokens/verify",
			middleware.RateLimit(rdb, 10, time.Minute),
			h.Feedback.VerifyToken)

		feedback := v1.Group("/feedback")
		{
			feedback.POST("/session", h.Feedback.StartSession)
			feedback.POST("/submit", h.Feedback.SubmitStep)
		}

		// operator auth
		v1.POST("/auth/login",
			middleware.RateLimit(rdb, 10, time.Minute),
			h.Auth.Login)

		// operator-only surface: authorization is enforced here at the
		// boundary, never inside the services
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb), middleware.RoleAuth("admin"))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			admin := authorized.Group("/admin")
			{
				admin.GET("/stats", h.Admin.GetStats)
				admin.GET("/summary", h.Admin.GetTeacherSummary)
				admin.GET("/questions", h.Admin.GetQuestionAverages)
				admin.GET("/ratings", h.Admin.ListRatings)
				admin.POST("/tokens/generate", h.Admin.GenerateTokens)
				admin.POST("/reset", h.Admin.Reset)

				admin.GET("/catalog", h.Catalog.GetCatalog)
				admin.PUT("/catalog", h.Catalog.UpdateCatalog)
				admin.GET("/templates", h.Catalog.ListTemplates)
				admin.POST("/templates", h.Catalog.SaveTemplate)
				admin.DELETE("/templates/:name", h.Catalog.DeleteTemplate)
				admin.POST("/templates/:name/apply", h.Catalog.ApplyTemplate)
			}

			export := authorized.Group("/export")
			{
				export.GET("/ratings", h.Export.ExportRatings)
			}
		}
	}

	return r
}
