package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ktkr.us/pkg/id3tool/handlers"
)

func main() {
	router := gin.Default()

	config := cors.DefaultConfig()
	if origins := allowOrigins(os.Getenv("ID3D_ALLOW_ORIGINS")); len(origins) > 0 {
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(config))

	handlers.NewID3Handler().Register(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("  POST /api/v1/id3?format=text|verbose|json - read the ID3v2 header of an upload")
	log.Printf("  GET  /api/v1/health                       - health check")

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// allowOrigins splits a comma separated origin list.
func allowOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
