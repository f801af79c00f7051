package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aiptrack/backend/internal/config"
	"aiptrack/backend/internal/handler/middleware"
	jwtpkg "aiptrack/backend/pkg/jwt"
	"aiptrack/backend/pkg/response"
)

// stubResources have routes but no behaviour beyond empty listings.
var stubResources = []struct {
	path string
	name string
}{
	{"/gyms", "Gym"},
	{"/exercises", "Exercise"},
	{"/metrics", "Metric"},
	{"/cohorts", "Cohort"},
}

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	revoked middleware.RevocationChecker,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	membershipHandler *MembershipHandler,
	healthHandler *HealthHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CaptureServerErrors())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Resource not found")
	})

	requireAuth := middleware.JWTAuth(jwtManager, revoked, logger)
	api := r.Group(cfg.Server.APIPrefix)

	api.GET("/health", healthHandler.Check)

	auth := api.Group("/auth")
	if cfg.RateLimit.Enabled {
		auth.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		session := auth.Group("", requireAuth)
		session.GET("/me", authHandler.Me)
		session.POST("/refresh", authHandler.Refresh)
		session.POST("/logout", authHandler.Logout)
	}

	users := api.Group("/users")
	{
		// Account creation is public.
		collection(users, http.MethodPost, userHandler.Create)

		protected := users.Group("", requireAuth)
		collection(protected, http.MethodGet, userHandler.List)
		protected.GET("/:id", userHandler.Get)
		protected.PUT("/:id", userHandler.Update)
		protected.DELETE("/:id", userHandler.Delete)
		protected.POST("/:id/archive", middleware.AdminAuth(), userHandler.Archive)

		protected.GET("/:id/gyms", membershipHandler.ListGyms)
		protected.POST("/:id/gyms", membershipHandler.JoinGym)
		protected.POST("/:id/gyms/:membership_id/approve", membershipHandler.ApproveGym)
		protected.DELETE("/:id/gyms/:membership_id", membershipHandler.LeaveGym)

		protected.GET("/:id/coaches", membershipHandler.ListCoaches)
		protected.POST("/:id/coaches", membershipHandler.AssignCoach)
		protected.DELETE("/:id/coaches/:relationship_id", membershipHandler.EndCoaching)
		protected.GET("/:id/athletes", membershipHandler.ListAthletes)
	}

	for _, res := range stubResources {
		stub := NewResourceStub(res.name)
		g := api.Group(res.path, requireAuth)
		collection(g, http.MethodGet, stub.List)
		collection(g, http.MethodPost, stub.Create)
		g.GET("/:id", stub.Get)
	}

	return r
}

// collection registers h on both the bare and the trailing-slash form of
// the group path so neither answers with a redirect.
func collection(g *gin.RouterGroup, method string, h gin.HandlerFunc) {
	g.Handle(method, "", h)
	g.Handle(method, "/", h)
}
