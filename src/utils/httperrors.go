package utils

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError carries the status code a handler should answer with.
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(code int, message string) error {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func BadRequest(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

func Unauthorized(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

func Forbidden(message string) error {
	return NewHTTPError(http.StatusForbidden, message)
}

func NotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

func RequestEntityTooLarge(message string) error {
	return NewHTTPError(http.StatusRequestEntityTooLarge, message)
}

func UnprocessableEntity(message string) error {
	return NewHTTPError(http.StatusUnprocessableEntity, message)
}

func BadGateway(message string) error {
	return NewHTTPError(http.StatusBadGateway, message)
}

func InternalServerError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, message)
}

func ServiceUnavailable(message string) error {
	return NewHTTPError(http.StatusServiceUnavailable, message)
}

// WriteError sends the error as JSON. Anything that is not an HTTPError is
// reported as a 500 without leaking its message.
func WriteError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = &HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Internal Server Error",
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.Code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": httpErr.Message})
}
