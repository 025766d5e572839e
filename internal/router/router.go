package router

import (
	"branch_pos_backend/internal/handlers"
	"branch_pos_backend/internal/middleware"
	"branch_pos_backend/internal/remote"
	"branch_pos_backend/internal/services"
	"branch_pos_backend/internal/session"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application. The remote inventory
// service client takes the place a database layer would normally occupy:
// every durable record lives on the other side of it.
func Setup(engine *gin.Engine, api remote.InventoryAPI, sessions session.Store) {
	// Initialize Services
	catalogService := services.NewCatalogService(api)
	cartService := services.NewCartService()
	receiptService := services.NewReceiptService()
	saleService := services.NewSaleService(api, catalogService, cartService, receiptService, sessions)
	transferService := services.NewTransferService(api, catalogService)

	// Initialize Handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService, catalogService)
	saleHandler := handlers.NewSaleHandler(saleService)
	transferHandler := handlers.NewTransferHandler(transferService)
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	referenceHandler := handlers.NewReferenceHandler(api)
	sessionHandler := handlers.NewSessionHandler(sessions)

	apiV1 := engine.Group("/api/v1")

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupCatalogRoutes(authenticated, catalogHandler)
		SetupCartRoutes(authenticated, cartHandler, saleHandler)
		SetupSalesRoutes(authenticated, saleHandler)
		SetupTransferRoutes(authenticated, transferHandler)
		SetupReceiptRoutes(authenticated, receiptHandler)
		SetupReferenceRoutes(authenticated, referenceHandler)
		SetupSessionRoutes(authenticated, sessionHandler)
	}
}
