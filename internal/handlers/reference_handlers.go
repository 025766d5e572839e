package handlers

import (
	"net/http"

	"branch_pos_backend/internal/remote"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler passes branch and item listings through from the remote
// service; the transfer UI uses them to populate destination choices.
type ReferenceHandler struct {
	remote remote.InventoryAPI
}

// NewReferenceHandler creates a new instance of ReferenceHandler.
func NewReferenceHandler(api remote.InventoryAPI) *ReferenceHandler {
	return &ReferenceHandler{remote: api}
}

// GetBranches handles GET /branches.
func (h *ReferenceHandler) GetBranches(c *gin.Context) {
	branches, err := h.remote.FetchBranches(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, branches)
}

// GetItems handles GET /items.
func (h *ReferenceHandler) GetItems(c *gin.Context) {
	items, err := h.remote.FetchItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
