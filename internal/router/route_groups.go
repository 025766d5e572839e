package router

import (
	"branch_pos_backend/internal/handlers"
	"branch_pos_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes sets up the catalog cache routes.
func SetupCatalogRoutes(authenticatedGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	catalogRoutes := authenticatedGroup.Group("/catalog")
	catalogRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		catalogRoutes.GET("/options", catalogHandler.GetOptions)
		catalogRoutes.POST("/refresh", catalogHandler.RefreshCatalog)
	}

	// Read-only inventory view, available to every authenticated role.
	authenticatedGroup.GET("/inventory", catalogHandler.GetInventory)
}

// SetupCartRoutes sets up the cart and checkout routes.
func SetupCartRoutes(authenticatedGroup *gin.RouterGroup, cartHandler *handlers.CartHandler, saleHandler *handlers.SaleHandler) {
	cartRoutes := authenticatedGroup.Group("/cart")
	cartRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.POST("/items", cartHandler.AddItem)
		cartRoutes.PATCH("/items/:itemId", cartHandler.UpdateItem)
		cartRoutes.DELETE("/items/:itemId", cartHandler.RemoveItem)
		cartRoutes.PATCH("/payment-method", cartHandler.SetPaymentMethod)
		cartRoutes.POST("/checkout", saleHandler.Checkout)
	}
}

// SetupSalesRoutes sets up the sales history routes.
func SetupSalesRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	salesRoutes := authenticatedGroup.Group("/sales")
	salesRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		salesRoutes.GET("/recent", saleHandler.GetRecentSales)
	}
}

// SetupTransferRoutes sets up the stock transfer routes. Transfers are an
// admin privilege; the server performs its own role check as well.
func SetupTransferRoutes(authenticatedGroup *gin.RouterGroup, transferHandler *handlers.TransferHandler) {
	transferRoutes := authenticatedGroup.Group("/transfers")
	transferRoutes.Use(middleware.RoleAuthMiddleware("Admin"))
	{
		transferRoutes.POST("/stock-in", transferHandler.StockIn)
		transferRoutes.POST("/stock-out", transferHandler.StockOut)
	}
}

// SetupReceiptRoutes sets up the receipt routes.
func SetupReceiptRoutes(authenticatedGroup *gin.RouterGroup, receiptHandler *handlers.ReceiptHandler) {
	receiptRoutes := authenticatedGroup.Group("/receipts")
	receiptRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		receiptRoutes.GET("/:id", receiptHandler.GetReceipt)
		receiptRoutes.GET("/:id/print", receiptHandler.PrintReceipt)
	}
}

// SetupReferenceRoutes sets up the branch and item listing routes.
func SetupReferenceRoutes(authenticatedGroup *gin.RouterGroup, referenceHandler *handlers.ReferenceHandler) {
	authenticatedGroup.GET("/branches", referenceHandler.GetBranches)
	authenticatedGroup.GET("/items", referenceHandler.GetItems)
}

// SetupSessionRoutes sets up the default branch identity routes.
func SetupSessionRoutes(authenticatedGroup *gin.RouterGroup, sessionHandler *handlers.SessionHandler) {
	sessionRoutes := authenticatedGroup.Group("/session")
	{
		sessionRoutes.GET("/branch", sessionHandler.GetDefaultBranch)
		sessionRoutes.PUT("/branch", sessionHandler.SetDefaultBranch)
	}
}
