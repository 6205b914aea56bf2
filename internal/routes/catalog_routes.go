package routes

import (
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/controllers"
	"github.com/gin-gonic/gin"
)

func CatalogRoutes(r *gin.Engine) {
	catalog := r.Group("/catalog")
	{
		catalog.GET("/routes", controllers.ListCatalog)
		catalog.GET("/routes/:id", controllers.GetCatalogRoute)
	}
}
