package v1

import (
	"errors"
	"net/http"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, auth.ErrInvalidCredentials) ||
		errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrTokenRevoked) ||
		errors.Is(err, auth.ErrMissingToken) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// abort writes the error response for err.
func abort(c *gin.Context, err error) {
	c.JSON(status(err), httpError{
		Error: err.Error(),
	})
}

var errExportFormat = errors.New("the format parameter must be one of json, xlsx")
