package routes

import (
	"fixmydistrict-be/controllers"
	"fixmydistrict-be/middlewares"
	"fixmydistrict-be/models"

	"github.com/gin-gonic/gin"
)

// MLARoutes sets up the MLA-only routes: work orders and help responses
func MLARoutes(r *gin.Engine) {
	mla := r.Group("/api/mla", middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleMLA))
	{
		mla.POST("/work-orders", controllers.CreateWorkOrder)
		mla.GET("/work-orders", controllers.GetMyWorkOrders)
		mla.GET("/work-orders/:id", controllers.GetWorkOrder)
		mla.POST("/work-orders/:id/status", controllers.AdvanceWorkOrderStatus)
		mla.POST("/work-orders/:id/notes", controllers.AddProgressNote)
		mla.POST("/help-requests/:id/respond", controllers.RespondToHelpRequest)
	}
}
