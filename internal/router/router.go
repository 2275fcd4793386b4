package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/appforge-io/appforge/internal/config"
	"github.com/appforge-io/appforge/internal/middleware"
	"github.com/appforge-io/appforge/internal/modules/handler"
	"github.com/appforge-io/appforge/internal/modules/serializer"
	"github.com/appforge-io/appforge/internal/modules/service"
	"github.com/appforge-io/appforge/internal/telemetry"
)

type RouterDeps struct {
	Config            *config.Config
	Log               *zap.Logger
	AuthService       service.AuthService
	AuthHandler       *handler.AuthHandler
	ProjectHandler    *handler.ProjectHandler
	FileNodeHandler   *handler.FileNodeHandler
	ChatHandler       *handler.ChatHandler
	SuggestionHandler *handler.SuggestionHandler
	DeploymentHandler *handler.DeploymentHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.AuthHandler.Register)
			auth.POST("/login", d.AuthHandler.Login)
			auth.GET("/me", middleware.UserAuth(d.AuthService), d.AuthHandler.Me)
		}

		// suggestions feed the landing page, no session required
		v1.GET("/suggestions", d.SuggestionHandler.List)

		authed := v1.Group("")
		authed.Use(middleware.UserAuth(d.AuthService))
		{
			project := authed.Group("/project")
			{
				project.POST("", d.ProjectHandler.Create)
				project.GET("", d.ProjectHandler.List)
				project.GET("/slug/:slug", d.ProjectHandler.GetBySlug)
				project.GET("/:project_id", d.ProjectHandler.Get)
				project.PUT("/:project_id", d.ProjectHandler.Update)
				project.DELETE("/:project_id", d.ProjectHandler.Delete)

				project.POST("/:project_id/generate", d.ProjectHandler.Generate)

				files := project.Group("/:project_id/files")
				{
					files.POST("", d.FileNodeHandler.Create)
					files.GET("", d.FileNodeHandler.List)
					files.PUT("/:node_id", d.FileNodeHandler.Update)
					files.DELETE("/:node_id", d.FileNodeHandler.Delete)
					files.GET("/:node_id/raw", d.FileNodeHandler.Raw)
				}

				chat := project.Group("/:project_id/chat")
				{
					chat.POST("", d.ChatHandler.Post)
					chat.GET("", d.ChatHandler.List)
				}

				deployments := project.Group("/:project_id/deployments")
				{
					deployments.POST("", d.DeploymentHandler.Trigger)
					deployments.GET("", d.DeploymentHandler.List)
					deployments.GET("/:deployment_id", d.DeploymentHandler.Get)
				}
			}
		}
	}

	return r
}
