package handlers

import (
	"net/http"

	"branch_pos_backend/internal/middleware"
	"branch_pos_backend/internal/services"
	"branch_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler runs the sale completion pipeline and serves recent history.
type SaleHandler struct {
	sales services.SaleService
}

// NewSaleHandler creates a new instance of SaleHandler.
func NewSaleHandler(sales services.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// CheckoutRequest optionally pins the branch the sale is recorded against.
// When absent, the pipeline falls back to the operator's session branch,
// then to the stored default branch.
type CheckoutRequest struct {
	BranchID *int64 `json:"branch_id"`
}

// Checkout handles POST /cart/checkout. The operation is disabled while a
// submission for the same cart is in flight; there is no cancellation of an
// in-flight submission.
func (h *SaleHandler) Checkout(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Session required", ""))
		return
	}

	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	result, err := h.sales.CompleteSale(c.Request.Context(), sess, req.BranchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetRecentSales handles GET /sales/recent. Branch scope comes from the
// branch_id query parameter, else the operator's session branch.
func (h *SaleHandler) GetRecentSales(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	branchID, ok := branchIDFromQuery(c)
	if !ok {
		utils.RespondValidationFailed(c, "branch_id must be a positive integer")
		return
	}
	if branchID == nil {
		branchID = sess.BranchID
	}

	sales, err := h.sales.RecentSales(c.Request.Context(), branchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}
