package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/ukaji3/exdiff-go/pkg/exdiff"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Predefined errors
var (
	ErrInvalidRequest  = NewAPIError(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrPayloadTooLarge = NewAPIError(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Uploaded files are too large")
	ErrRateLimited     = NewAPIError(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrInternalServer  = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// invalidRequest creates an invalid request error carrying the cause
func invalidRequest(err error) *APIError {
	e := *ErrInvalidRequest
	e.Details = err.Error()
	return &e
}

// toAPIError maps comparison errors to API errors. Unknown errors become 500s.
func toAPIError(err error) *APIError {
	var (
		apiErr      *APIError
		formatErr   *exdiff.FormatError
		mismatchErr *exdiff.FormatMismatchError
		noSheetErr  *exdiff.NoCommonSheetError
		sheetErr    *exdiff.SheetNotFoundError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &maxBytesErr):
		return ErrPayloadTooLarge
	case errors.As(err, &formatErr):
		return &APIError{
			StatusCode: http.StatusUnprocessableEntity,
			ErrorCode:  "FORMAT_ERROR",
			Message:    "Unable to read one of the files. Please upload valid CSV or Excel (.xlsx) files.",
			Details:    formatErr.Error(),
		}
	case errors.As(err, &mismatchErr):
		return &APIError{
			StatusCode: http.StatusUnprocessableEntity,
			ErrorCode:  "FORMAT_MISMATCH",
			Message:    "Both files must be CSV or both must be Excel workbooks.",
			Details:    mismatchErr.Error(),
		}
	case errors.As(err, &noSheetErr):
		return &APIError{
			StatusCode: http.StatusUnprocessableEntity,
			ErrorCode:  "NO_COMMON_SHEET",
			Message:    "No common sheets found between the two files.",
			Details:    noSheetErr.Error(),
		}
	case errors.As(err, &sheetErr):
		return &APIError{
			StatusCode: http.StatusBadRequest,
			ErrorCode:  "SHEET_NOT_FOUND",
			Message:    "The selected sheet is not present in both workbooks.",
			Details:    sheetErr.Available,
		}
	default:
		return ErrInternalServer
	}
}
