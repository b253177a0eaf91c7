// Package httperr maps errors to JSON error responses.
package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	logmiddleware "github.com/purposeinplay/go-money/http/middleware"
	"github.com/purposeinplay/go-money/http/render"
	"go.uber.org/zap"
)

// HTTPError is an error with a message and an HTTP status code.
type HTTPError struct {
	Code            int    `json:"code"`
	Message         string `json:"msg"`
	InternalError   error  `json:"-"`
	InternalMessage string `json:"-"`
	ErrorID         string `json:"error_id,omitempty"`
}

func (e *HTTPError) Error() string {
	if e.InternalMessage != "" {
		return e.InternalMessage
	}

	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// Unwrap returns the internal error.
func (e *HTTPError) Unwrap() error {
	return e.InternalError
}

// WithInternalError adds internal error information to the error
func (e *HTTPError) WithInternalError(err error) *HTTPError {
	e.InternalError = err

	return e
}

// BadRequestError returns a 400 error.
func BadRequestError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusBadRequest, fmtString, args...)
}

// NotFoundError returns a 404 error.
func NotFoundError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusNotFound, fmtString, args...)
}

// InternalServerError returns a 500 error.
func InternalServerError(fmtString string, args ...interface{}) *HTTPError {
	return httpError(http.StatusInternalServerError, fmtString, args...)
}

func httpError(code int, fmtString string, args ...interface{}) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: fmt.Sprintf(fmtString, args...),
	}
}

// HandleError writes err as a JSON response. Errors that are not
// an *HTTPError are logged and reported as internal errors without
// their details.
func HandleError(err error, w http.ResponseWriter, r *http.Request) {
	log := logmiddleware.GetLogEntry(r)
	errorID := middleware.GetReqID(r.Context())

	var httpErr *HTTPError

	if !errors.As(err, &httpErr) {
		log.Error("unhandled error", zap.Error(err))

		httpErr = InternalServerError(http.StatusText(http.StatusInternalServerError))
	} else {
		log.Warn(httpErr.Error(), zap.Error(httpErr.InternalError))
	}

	if httpErr.Code >= http.StatusInternalServerError {
		httpErr.ErrorID = errorID
	}

	if jsonErr := render.SendJSON(w, httpErr.Code, httpErr); jsonErr != nil {
		log.Error("write error response", zap.Error(jsonErr))
	}
}
