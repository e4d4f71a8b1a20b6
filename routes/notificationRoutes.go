package routes

import (
	"fixmydistrict-be/controllers"
	"fixmydistrict-be/middlewares"
	"fixmydistrict-be/models"

	"github.com/gin-gonic/gin"
)

// NotificationRoutes sets up the notification routes
func NotificationRoutes(r *gin.Engine) {
	notifications := r.Group("/api/notifications", middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleCitizen, models.RoleMLA, models.RoleAdmin))
	{
		notifications.GET("", controllers.GetMyNotifications)
		notifications.GET("/unread-count", controllers.GetUnreadCount)
		notifications.POST("/:id/read", controllers.MarkNotificationRead)
	}
}
