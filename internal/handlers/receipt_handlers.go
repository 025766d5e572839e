package handlers

import (
	"net/http"

	"branch_pos_backend/internal/services"
	"branch_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReceiptHandler serves completed receipts, as JSON and as the printable
// document.
type ReceiptHandler struct {
	receipts services.ReceiptService
}

// NewReceiptHandler creates a new instance of ReceiptHandler.
func NewReceiptHandler(receipts services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// GetReceipt handles GET /receipts/:id.
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	receipt, ok := h.receipts.Get(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Receipt not found", ""))
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// PrintReceipt handles GET /receipts/:id/print, returning a self-contained
// HTML page the terminal can hand straight to the printer dialog.
func (h *ReceiptHandler) PrintReceipt(c *gin.Context) {
	receipt, ok := h.receipts.Get(c.Param("id"))
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Receipt not found", ""))
		return
	}

	html, err := services.RenderReceiptHTML(receipt)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to render receipt", err.Error()))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
