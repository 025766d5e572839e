package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"branch_pos_backend/internal/remote"
	router_pkg "branch_pos_backend/internal/router"
	"branch_pos_backend/internal/session"
	"branch_pos_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()
	utils.SetJWTSecret(os.Getenv("JWT_SECRET"))

	// Remote inventory service: the system of record for stock, sales and
	// transfers. This backend is a client of it, never a database owner.
	inventoryURL := utils.Getenv("INVENTORY_SERVICE_URL", "http://localhost:8000/api")
	inventoryToken := os.Getenv("INVENTORY_SERVICE_TOKEN")
	inventoryClient := remote.NewClient(inventoryURL, inventoryToken)
	utils.LogInfo("Inventory service client initialized", map[string]interface{}{"url": inventoryURL})

	// Session store: operator default-branch identity. Optional; without
	// Redis the fallback branch must come from the session token.
	var sessions session.Store = session.NoopStore{}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisDB, _ := strconv.Atoi(utils.Getenv("REDIS_DB", "0"))
		store := session.NewRedisStore(redisAddr, os.Getenv("REDIS_PASSWORD"), redisDB)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.Ping(ctx); err != nil {
			utils.LogError(err, "Redis unreachable, continuing without session store")
		} else {
			sessions = store
			utils.LogInfo("Session store initialized", map[string]interface{}{"addr": redisAddr})
		}
		cancel()
	}

	router := gin.Default()
	router.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router_pkg.Setup(router, inventoryClient, sessions)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := router.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
