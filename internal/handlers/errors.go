package handlers

import (
	"errors"
	"net/http"

	"branch_pos_backend/internal/remote"
	"branch_pos_backend/internal/services"
	"branch_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP responses:
// local validation failures are 400s, remote rejections keep the server's
// verbatim detail, everything else is a transport-level failure. No error is
// fatal; the terminal always returns to an interactive state.
func respondServiceError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrValidation) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed", err.Error()))
		return
	}
	if rej, ok := remote.AsRejection(err); ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeRemoteRejected, rej.Detail, ""))
		return
	}
	utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeTransportFailure, "Inventory service unreachable", err.Error()))
}
