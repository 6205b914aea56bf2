package routes

import (
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/controllers"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/middleware"
	"github.com/gin-gonic/gin"
)

// DialogueRoutes is the surface the chat transport drives. Any signed-in
// API client may call it on behalf of its chat users.
func DialogueRoutes(r *gin.Engine) {
	dialogue := r.Group("/dialogue")
	dialogue.Use(middleware.RequireAuth())
	{
		dialogue.POST("/event", controllers.HandleDialogueEvent)
		dialogue.POST("/rank", controllers.RankRoutes)
		dialogue.GET("/preferences/:chat_id", controllers.GetPreferences)

		dialogue.POST("/favorites", controllers.AddFavorite)
		dialogue.DELETE("/favorites", controllers.RemoveFavorite)
		dialogue.GET("/favorites/:chat_id", controllers.ListFavorites)

		dialogue.POST("/completions", controllers.CompleteRoute)
		dialogue.GET("/completions/:chat_id", controllers.ListCompletions)
	}
}
