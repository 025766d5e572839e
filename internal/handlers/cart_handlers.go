package handlers

import (
	"encoding/json"
	"net/http"

	"branch_pos_backend/internal/middleware"
	"branch_pos_backend/internal/models"
	"branch_pos_backend/internal/services"
	"branch_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CartHandler manages the operator's in-progress cart.
type CartHandler struct {
	carts   services.CartService
	catalog services.CatalogService
}

// NewCartHandler creates a new instance of CartHandler.
func NewCartHandler(carts services.CartService, catalog services.CatalogService) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

// AddCartItemRequest identifies the stock entry being added. The entry is
// resolved against the catalog cache so the cart line captures the
// branch-specific price and the stock ceiling known at selection time.
type AddCartItemRequest struct {
	ItemID   int64  `json:"item_id" binding:"required"`
	BranchID *int64 `json:"branch_id"`
}

// UpdateCartItemRequest carries the new quantity for a line. Quantity is
// kept raw and decoded leniently: numbers and numeric strings are accepted,
// anything else coerces to the floor of 1 instead of failing the request.
type UpdateCartItemRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

// GetCart handles GET /cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	sess, _ := middleware.GetSession(c)
	cart := h.carts.Get(sess.UserID)
	respondCart(c, cart)
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	entry, ok := h.catalog.EntryByItem(req.ItemID, req.BranchID)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found in catalog snapshot. Refresh and retry.", ""))
		return
	}

	option := models.CatalogOption{Value: entry.ItemID, Raw: entry}
	cart := h.carts.Add(sess.UserID, option)
	respondCart(c, cart)
}

// UpdateItem handles PATCH /cart/items/:itemId.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	itemID, err := utils.StrToInt64(c.Param("itemId"))
	if err != nil {
		utils.RespondValidationFailed(c, "itemId must be an integer")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	// Absent or non-numeric input clamps to the quantity floor of 1.
	quantity := 1
	var num json.Number
	if err := json.Unmarshal(req.Quantity, &num); err != nil {
		var s string
		if json.Unmarshal(req.Quantity, &s) == nil {
			num = json.Number(s)
		}
	}
	if parsed, err := num.Int64(); err == nil {
		quantity = int(parsed)
	}

	cart, err := h.carts.SetQuantity(sess.UserID, itemID, quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCart(c, cart)
}

// RemoveItem handles DELETE /cart/items/:itemId. Removal is unconditional;
// an absent item is not an error.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	itemID, err := utils.StrToInt64(c.Param("itemId"))
	if err != nil {
		utils.RespondValidationFailed(c, "itemId must be an integer")
		return
	}

	cart := h.carts.Remove(sess.UserID, itemID)
	respondCart(c, cart)
}

// SetPaymentMethod handles PATCH /cart/payment-method.
func (h *CartHandler) SetPaymentMethod(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req struct {
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}
	if utils.IsEmpty(req.PaymentMethod) {
		utils.RespondValidationFailed(c, "payment_method must not be blank")
		return
	}

	cart := h.carts.SetPaymentMethod(sess.UserID, req.PaymentMethod)
	respondCart(c, cart)
}

// respondCart renders the cart with its derived totals so the terminal
// never recomputes money client-side.
func respondCart(c *gin.Context, cart models.Cart) {
	c.JSON(http.StatusOK, gin.H{
		"cart":     cart,
		"subtotal": cart.Subtotal(),
		"tax":      cart.Tax(),
		"total":    cart.Total(),
	})
}
