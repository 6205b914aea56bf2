package routes

import (
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/controllers"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/middleware"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.POST("/routes", controllers.CreateRoute)
		admin.PUT("/routes/:id", controllers.UpdateRoute)
		admin.DELETE("/routes/:id", controllers.DeleteRoute)
	}
}
