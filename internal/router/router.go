package router

import (
	"net/http"
	"time"

	"curtaincrm/internal/config"
	"curtaincrm/internal/middleware"
	"curtaincrm/internal/modules/auth"
	"curtaincrm/internal/modules/project"
	"curtaincrm/internal/modules/space"
	"curtaincrm/internal/modules/user"
	"curtaincrm/internal/pkg/jwt"
	"curtaincrm/internal/pkg/mailer"
	"curtaincrm/internal/pkg/response"
	"curtaincrm/internal/pkg/validator"
	"curtaincrm/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const apiVersion = "1.0.0"

type Deps struct {
	DB     *gorm.DB
	Tokens *jwt.Service
	Mailer mailer.Mailer
	// AuthLimiter throttles /api/auth when set.
	AuthLimiter middleware.Limiter
	Config      config.Config
}

func New(d Deps) *gin.Engine {
	validator.RegisterGinRules()

	userRepo := repository.NewUserRepository(d.DB)
	projectRepo := repository.NewProjectRepository(d.DB)
	spaceRepo := repository.NewSpaceRepository(d.DB)

	authHandler := auth.NewHandler(auth.NewService(userRepo, d.Tokens, d.Mailer, auth.Options{
		BcryptCost:       d.Config.Auth.BcryptCost,
		ResetTokenTTL:    d.Config.Auth.ResetTokenTTL,
		ResetTokenPepper: d.Config.Auth.ResetTokenPepper,
		FrontendURL:      d.Config.FrontendURL,
	}))
	userHandler := user.NewHandler(user.NewService(userRepo, d.Config.Auth.BcryptCost))
	projectHandler := project.NewHandler(project.NewService(projectRepo, spaceRepo))
	spaceHandler := space.NewHandler(space.NewService(spaceRepo))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.SecurityHeaders(),
		middleware.CORS(d.Config.CORSAllowedOrigins),
	)

	r.GET("/health", health)
	r.GET("/", info)

	api := r.Group("/api")
	{
		public := api.Group("")
		if d.AuthLimiter != nil {
			public = api.Group("", middleware.RateLimit(d.AuthLimiter))
		}
		authHandler.RegisterPublicRoutes(public)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(d.Tokens, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			userHandler.RegisterRoutes(protected)
			projectHandler.RegisterRoutes(protected)
			spaceHandler.RegisterRoutes(protected)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Route not found: "+c.Request.URL.Path)
	})

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "CRM API is up",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Welcome to the CRM API",
		"version": apiVersion,
		"endpoints": gin.H{
			"health":  "/health",
			"auth":    "/api/auth",
			"users":   "/api/users",
			"projets": "/api/projets",
			"espaces": "/api/espaces",
		},
	})
}
