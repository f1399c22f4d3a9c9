// Package handler provides the HTTP handlers of the treasure hunt ledger.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"treasure-hunt-service/internal/repository"
	"treasure-hunt-service/internal/service"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respondError maps typed service errors onto HTTP statuses. Expected,
// recoverable conditions get 4xx codes; anything unrecognized is a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrAlreadyInitialized):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Code: "already_initialized"})
	case errors.Is(err, repository.ErrNotInitialized):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Code: "not_initialized"})
	case errors.Is(err, repository.ErrHuntNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error(), Code: "hunt_not_found"})
	case errors.Is(err, repository.ErrHuntExists):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Code: "hunt_exists"})
	case errors.Is(err, repository.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Code: "already_completed"})
	case errors.Is(err, service.ErrHuntInactive):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "hunt_inactive"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, errorResponse{Error: err.Error(), Code: "unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
