package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/middleware"
	"github.com/taskhive-dev/taskhive/internal/store"
)

type Deps struct {
	Store          store.Store
	Tokens         *auth.TokenManager
	AllowedOrigins []string
}

func New(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(deps.Store, deps.Tokens)
	projectHandler := handlers.NewProjectHandler(deps.Store)
	taskHandler := handlers.NewTaskHandler(deps.Store, deps.Store)

	requireAuth := middleware.Auth(deps.Tokens, deps.Store)

	r.GET("/", handlers.Root)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", requireAuth, authHandler.Me)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.POST("", projectHandler.Create)
			projects.GET("", projectHandler.List)
			projects.GET("/:projectId", projectHandler.Get)
			projects.PUT("/:projectId", projectHandler.Update)
			projects.DELETE("/:projectId", projectHandler.Delete)

			// Task routes, scoped to the parent project's owner
			projects.POST("/:projectId/tasks", taskHandler.Create)
			projects.GET("/:projectId/tasks", taskHandler.List)
			projects.PUT("/:projectId/tasks/:taskId", taskHandler.Update)
			projects.DELETE("/:projectId/tasks/:taskId", taskHandler.Delete)
		}
	}

	return r
}
