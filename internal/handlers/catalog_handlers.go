package handlers

import (
	"net/http"

	"branch_pos_backend/internal/services"
	"branch_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the searchable sale option list and the read-only
// inventory view backed by the catalog cache.
type CatalogHandler struct {
	catalog services.CatalogService
}

// NewCatalogHandler creates a new instance of CatalogHandler.
func NewCatalogHandler(catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// branchIDFromQuery parses an optional branch_id query parameter.
func branchIDFromQuery(c *gin.Context) (*int64, bool) {
	raw := c.Query("branch_id")
	if raw == "" {
		return nil, true
	}
	id, err := utils.StrToInt64(raw)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}

// GetOptions handles GET /catalog/options. Server-side search with a local
// fallback; the response never fails outright when the remote search is
// unavailable.
func (h *CatalogHandler) GetOptions(c *gin.Context) {
	branchID, ok := branchIDFromQuery(c)
	if !ok {
		utils.RespondValidationFailed(c, "branch_id must be a positive integer")
		return
	}

	options := h.catalog.Search(c.Request.Context(), c.Query("search"), branchID)
	c.JSON(http.StatusOK, options)
}

// RefreshCatalog handles POST /catalog/refresh, replacing the cached
// snapshot wholesale.
func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	branchID, ok := branchIDFromQuery(c)
	if !ok {
		utils.RespondValidationFailed(c, "branch_id must be a positive integer")
		return
	}

	entries, err := h.catalog.Refresh(c.Request.Context(), branchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetInventory handles GET /inventory: the read-only branch inventory view.
// It refreshes the snapshot so the view reflects the service's current
// state.
func (h *CatalogHandler) GetInventory(c *gin.Context) {
	branchID, ok := branchIDFromQuery(c)
	if !ok {
		utils.RespondValidationFailed(c, "branch_id must be a positive integer")
		return
	}

	entries, err := h.catalog.Refresh(c.Request.Context(), branchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
