package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ayodele/clearflow/internal/app/controllers"
	"github.com/ayodele/clearflow/internal/app/models"
	"github.com/ayodele/clearflow/internal/app/models/dto"
	"github.com/ayodele/clearflow/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	applicationController *controllers.ApplicationController,
	documentController *controllers.DocumentController,
	formController *controllers.FormController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/logout", authController.Logout)

	applications := authenticated.Group("/applications")
	{
		// Reads are open to every authenticated role
		applications.GET("/:id", applicationController.Get)
		applications.GET("/:id/documents", documentController.List)
		applications.GET("/:id/documents/:type", documentController.Get)
		applications.GET("/:id/documents/:type/eligibility", documentController.Eligibility)
		applications.GET("/:id/forms", formController.List)
		applications.GET("/:id/forms/:type", formController.Get)
		applications.GET("/:id/unlocked-forms", formController.Unlocked)

		// Student actions
		studentProtected := applications.Group("")
		studentProtected.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			studentProtected.POST("", applicationController.Register)
			studentProtected.POST("/:id/documents", documentController.Submit)
			studentProtected.POST("/:id/forms/:type/submit", formController.Submit)
		}

		// Review actions, staff and admin
		staffProtected := applications.Group("")
		staffProtected.Use(authMiddleware.RoleRequired(string(models.RoleStaff), string(models.RoleAdmin)))
		{
			staffProtected.POST("/:id/verify", applicationController.Verify)
			staffProtected.PUT("/:id/status", applicationController.UpdateStatus)
			staffProtected.POST("/:id/documents/:type/review", documentController.Review)
			staffProtected.POST("/:id/forms/:type/approve-first", formController.ApproveFirst)
			staffProtected.POST("/:id/forms/:type/approve-second", formController.ApproveSecond)
			staffProtected.GET("/:id/events", applicationController.ListEvents)
		}

		// Administrative actions
		adminProtected := applications.Group("")
		adminProtected.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			adminProtected.PUT("/:id/deadline", applicationController.SetDeadline)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}, ""))
	})

	// Swagger routes are set up in bootstrap.go already
}
