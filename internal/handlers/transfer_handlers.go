package handlers

import (
	"net/http"

	"branch_pos_backend/internal/models"
	"branch_pos_backend/internal/services"
	"branch_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TransferHandler exposes the stock transfer pipeline.
type TransferHandler struct {
	transfers services.TransferService
}

// NewTransferHandler creates a new instance of TransferHandler.
func NewTransferHandler(transfers services.TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

// StockIn handles POST /transfers/stock-in.
func (h *TransferHandler) StockIn(c *gin.Context) {
	var req models.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	entry, err := h.transfers.StockIn(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// StockOut handles POST /transfers/stock-out.
func (h *TransferHandler) StockOut(c *gin.Context) {
	var req models.StockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	entries, err := h.transfers.StockOut(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entries)
}
