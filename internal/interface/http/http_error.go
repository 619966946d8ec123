package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/cocreateceo/Vedic-Astro-sub002/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// statusByCode maps application error codes onto client-visible statuses.
// Codes not listed are internal failures and keep their details in the logs.
var statusByCode = map[string]int{
	"invalid_input": http.StatusBadRequest,
	"not_found":     http.StatusNotFound,
	"export_failed": http.StatusBadGateway,
}

// domainError converts a service error into its HTTP form.
func domainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	if status, ok := statusByCode[code]; ok {
		return NewHTTPError(status, code, err.Error(), err)
	}
	if code == "" {
		code = "internal_error"
	}
	return NewHTTPError(http.StatusInternalServerError, code, "something went wrong", err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return domainError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
