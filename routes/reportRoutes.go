package routes

import (
	"fixmydistrict-be/config"
	"fixmydistrict-be/controllers"
	"fixmydistrict-be/middlewares"
	"fixmydistrict-be/models"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up the road report routes
func ReportRoutes(r *gin.Engine) {
	rateCounter := &middlewares.RedisRateCounter{Client: config.RedisClient}
	reports := r.Group("/api/reports", middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleCitizen, models.RoleMLA))
	{
		reports.POST("", middlewares.ReportRateLimiter(rateCounter, 5), controllers.CreateRoadReport)
		reports.GET("", controllers.GetRoadReports)
		reports.GET("/mine", controllers.GetMyRoadReports)
		reports.GET("/recent", controllers.RecentRoadReports)
		reports.GET("/:id", controllers.GetRoadReport)
		reports.POST("/:id/resolve", controllers.ResolveRoadReport)
	}
}
