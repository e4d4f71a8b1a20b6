package routes

import (
	"fixmydistrict-be/controllers"
	"fixmydistrict-be/middlewares"
	"fixmydistrict-be/models"

	"github.com/gin-gonic/gin"
)

// HelpRequestRoutes sets up the help request routes
func HelpRequestRoutes(r *gin.Engine) {
	help := r.Group("/api/help-requests", middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleCitizen, models.RoleMLA, models.RoleAdmin))
	{
		help.POST("", controllers.CreateHelpRequest)
		help.GET("", controllers.GetHelpRequests)
		help.GET("/mine", controllers.GetMyHelpRequests)
		help.GET("/:id", controllers.GetHelpRequest)
		help.POST("/:id/status", controllers.AdvanceHelpRequestStatus)
		help.GET("/:id/responses", controllers.GetHelpRequestResponses)
	}
}
