package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ieltslab/practice-service/internal/services"
	"github.com/ieltslab/practice-service/internal/utils"
)

type HandlerManager struct {
	authHandler    *AuthHandler
	catalogHandler *CatalogHandler
	sessionHandler *SessionHandler
	authService    services.AuthService
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:    NewAuthHandler(serviceManager.Auth(), logger),
		catalogHandler: NewCatalogHandler(serviceManager.Catalog(), logger),
		sessionHandler: NewSessionHandler(serviceManager.Session(), logger),
		authService:    serviceManager.Auth(),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", hm.authHandler.SignUp)
			auth.POST("/signin", hm.authHandler.SignIn)
		}

		// Everything below requires a bearer token
		authed := v1.Group("")
		authed.Use(AuthMiddleware(hm.authService))
		{
			authed.POST("/auth/signout", hm.authHandler.SignOut)
			authed.GET("/auth/me", hm.authHandler.Me)
			authed.GET("/me/stats", hm.authHandler.Stats)
			authed.GET("/me/history", hm.authHandler.History)

			// Catalog routes
			catalogs := authed.Group("/catalogs")
			{
				catalogs.GET("", hm.catalogHandler.List)
				catalogs.GET("/:id", hm.catalogHandler.Get)
				catalogs.POST("/import", hm.catalogHandler.Import)
				catalogs.GET("/:id/export", hm.catalogHandler.Export)
			}

			// Session routes
			sessions := authed.Group("/sessions")
			{
				sessions.POST("", hm.sessionHandler.Start)
				sessions.GET("/:id", hm.sessionHandler.State)
				sessions.POST("/:id/begin", hm.sessionHandler.Begin)
				sessions.POST("/:id/answers", hm.sessionHandler.SetAnswer)
				sessions.POST("/:id/tokens/assign", hm.sessionHandler.AssignToken)
				sessions.POST("/:id/tokens/unassign", hm.sessionHandler.UnassignToken)
				sessions.POST("/:id/goto", hm.sessionHandler.GoTo)
				sessions.POST("/:id/next", hm.sessionHandler.Next)
				sessions.POST("/:id/prev", hm.sessionHandler.Prev)
				sessions.POST("/:id/review", hm.sessionHandler.ToggleReview)
				sessions.GET("/:id/time", hm.sessionHandler.TimeRemaining)
				sessions.POST("/:id/submit", hm.sessionHandler.Submit)
				sessions.GET("/:id/results", hm.sessionHandler.Results)
				sessions.GET("/:id/explanations", hm.sessionHandler.Explanations)
				sessions.DELETE("/:id", hm.sessionHandler.Close)
			}
		}
	}
}
