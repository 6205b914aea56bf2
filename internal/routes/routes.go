package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SetupRouter wires every route group onto a fresh engine.
func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger(
		ginlogger.WithLogger(func(_ *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().Str("component", "http").Logger()
		}),
	))

	AuthRoutes(r)
	DialogueRoutes(r)
	CatalogRoutes(r)
	AdminRoutes(r)

	return r
}
