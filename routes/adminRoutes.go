package routes

import (
	"fixmydistrict-be/controllers"
	"fixmydistrict-be/middlewares"
	"fixmydistrict-be/models"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the admin-only routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin", middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/reports/analytics", controllers.GetReportAnalytics)
		admin.PUT("/users/:id/role", controllers.SetUserRole)
	}
}
