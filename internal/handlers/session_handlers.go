package handlers

import (
	"net/http"

	"branch_pos_backend/internal/middleware"
	"branch_pos_backend/internal/session"
	"branch_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler manages the operator's stored default branch identity, the
// fallback the sale pipeline uses when a checkout arrives without an
// explicit branch.
type SessionHandler struct {
	sessions session.Store
}

// NewSessionHandler creates a new instance of SessionHandler.
func NewSessionHandler(sessions session.Store) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// GetDefaultBranch handles GET /session/branch.
func (h *SessionHandler) GetDefaultBranch(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	branchID, ok, err := h.sessions.DefaultBranch(c.Request.Context(), sess.UserID)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to read session store", err.Error()))
		return
	}
	if !ok {
		// Fall back to the branch baked into the session token, if any.
		if sess.BranchID != nil {
			c.JSON(http.StatusOK, gin.H{"branch_id": *sess.BranchID})
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "No default branch set", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch_id": branchID})
}

// SetDefaultBranch handles PUT /session/branch.
func (h *SessionHandler) SetDefaultBranch(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req struct {
		BranchID int64 `json:"branch_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}
	if req.BranchID <= 0 {
		utils.RespondValidationFailed(c, "branch_id must be a positive integer")
		return
	}

	if err := h.sessions.SetDefaultBranch(c.Request.Context(), sess.UserID, req.BranchID); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to persist default branch", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"branch_id": req.BranchID})
}
