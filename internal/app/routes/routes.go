package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/SaSee1722/leavex/internal/app/controllers"
	"github.com/SaSee1722/leavex/internal/app/models"
	"github.com/SaSee1722/leavex/internal/middleware"
	"github.com/SaSee1722/leavex/internal/pkg/realtime"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	leaveController *controllers.LeaveController,
	notificationController *controllers.NotificationController,
	realtimeHandler *realtime.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)
		authenticated.PUT("/auth/me/fcm-token", authController.UpdateFCMToken)

		// Leave request routes. Submission and reading are open to every
		// authenticated role; the service applies the per-row scope rules.
		leaveRequests := authenticated.Group("/leave-requests")
		{
			leaveRequests.POST("", leaveController.Create)
			leaveRequests.GET("", leaveController.List)
			leaveRequests.GET("/:id", leaveController.Get)
			leaveRequests.DELETE("/:id", leaveController.Delete)

			// Review actions are reviewer-only; the state machine decides
			// which reviewer may act at which stage
			reviewProtected := leaveRequests.Group("")
			reviewProtected.Use(authMiddleware.RoleRequired(models.RolePC, models.RoleAdmin))
			{
				reviewProtected.POST("/:id/approve", leaveController.Approve)
				reviewProtected.POST("/:id/decline", leaveController.Decline)
			}
		}

		// Notification routes
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.POST("/read-all", notificationController.MarkAllRead)
			notifications.GET("/stream", realtimeHandler.HandleConnection)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
