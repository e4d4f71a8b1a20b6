package routes

import (
	"fixmydistrict-be/config"
	"fixmydistrict-be/controllers"
	"fixmydistrict-be/middlewares"
	"fixmydistrict-be/models"
	"fixmydistrict-be/services"

	"github.com/gin-gonic/gin"
)

// ProfileRoutes sets up profile and city selection routes
func ProfileRoutes(r *gin.Engine) {
	profile := r.Group("/api/profile", middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleCitizen, models.RoleMLA, models.RoleAdmin))
	{
		profile.GET("/me", controllers.GetProfile)
		profile.PUT("/me", controllers.UpdateProfile)
	}

	cityStore := &services.RedisCityStore{Client: config.RedisClient}
	city := r.Group("/api/city", middlewares.AuthMiddleware())
	{
		city.GET("", controllers.GetSelectedCity(cityStore))
		city.PUT("", controllers.UpdateSelectedCity(cityStore))
	}
}
