package handlers

import (
	"errors"
	"net/http"

	"busdekho/internal/domain"
	"busdekho/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, data any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
		Data:      data,
	})
}

// RespondDomainError maps domain errors to HTTP responses. data is the empty
// result the failed step substituted; it is echoed so clients always get a
// value.
func RespondDomainError(c *gin.Context, err error, data any) {
	_ = c.Error(err)
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), data)
	case domain.IsFilter(err):
		respondError(c, http.StatusUnprocessableEntity, "filter_error", err.Error(), data)
	case domain.IsQuery(err):
		respondError(c, http.StatusInternalServerError, "query_error", err.Error(), data)
	case domain.IsInternal(err):
		var ie domain.InternalError
		errors.As(err, &ie)
		respondError(c, http.StatusInternalServerError, "internal_error", ie.Error(), data)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error", data)
	}
}
