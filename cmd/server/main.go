package main

import (
	"log"
	"net/http"
	"os"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/config"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/logger"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/middleware"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database, migrate and seed the catalog
	config.InitDB()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + port()
	log.Println("🚀 Server running at " + addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
