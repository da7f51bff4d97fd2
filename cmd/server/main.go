package main

import (
	"log"
	"net/http"
	"os"

	"hostelhub/internal/config"
	"hostelhub/internal/logger"
	"hostelhub/internal/middleware"
	"hostelhub/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (recovery + request logging attached inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	log.Printf("🚀 Server running at %s", addr)
	log.Fatal(http.ListenAndServe("0.0.0.0"+addr, handler))
}
