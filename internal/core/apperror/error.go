// Package apperror provides structured error handling following RFC 7807 Problem Details.
// All business rejections are returned as *AppError values, never panics, so callers
// can render inline feedback without a control-flow jump.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	// Validation errors (400)
	CodeValidation = "VALIDATION_ERROR"

	// Line-entry rejections (422)
	CodeNoProductSelected = "NO_PRODUCT_SELECTED"
	CodeZeroQuantity      = "ZERO_QUANTITY"
	CodeInvalidPrice      = "INVALID_PRICE"
	CodeDuplicateProduct  = "DUPLICATE_PRODUCT"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeStockFetchFailed  = "STOCK_FETCH_FAILED"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"

	// Conflict (409)
	CodeConflict  = "CONFLICT"
	CodeDuplicate = "DUPLICATE_ENTRY"
)

// AppError is the standard error type for the service.
// It implements error and provides structured details for API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, quantities, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewRejection creates a line-entry rejection (422).
// Rejections are expected outcomes of validation, not failures.
func NewRejection(code, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewNoProductSelected is returned when a line is built without a product.
func NewNoProductSelected() *AppError {
	return NewRejection(CodeNoProductSelected, "no product selected")
}

// NewZeroQuantity is returned when cartons and pieces resolve to zero total pieces.
func NewZeroQuantity() *AppError {
	return NewRejection(CodeZeroQuantity, "quantity must be greater than zero")
}

// NewInvalidPrice is returned when the entered price is not positive.
func NewInvalidPrice() *AppError {
	return NewRejection(CodeInvalidPrice, "price must be greater than zero")
}

// NewDuplicateProduct is returned when the product already has a line in the set.
// The UI direction is "edit the existing line instead"; quantities are never merged.
func NewDuplicateProduct(productID string) *AppError {
	return NewRejection(CodeDuplicateProduct, "product already has a line, edit the existing line instead").
		WithDetail("product_id", productID)
}

// NewInsufficientStock creates a stock shortage rejection carrying both quantities.
func NewInsufficientStock(productID string, requested, available int64) *AppError {
	return &AppError{
		Code:       CodeInsufficientStock,
		Message:    "insufficient stock",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{
			"product_id": productID,
			"requested":  requested,
			"available":  available,
		},
	}
}

// NewStockFetchFailed wraps a failed stock lookup.
// Reported to the UI as a warning banner; does not itself block adding a line.
func NewStockFetchFailed(productID string, err error) *AppError {
	return &AppError{
		Code:       CodeStockFetchFailed,
		Message:    "stock lookup failed",
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"product_id": productID},
		Err:        err,
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewConflict creates a conflict error (409)
func NewConflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

// NewDuplicate creates a duplicate entry error (409)
func NewDuplicate(entity, field, value string) *AppError {
	return &AppError{
		Code:       CodeDuplicate,
		Message:    fmt.Sprintf("%s with this %s already exists", entity, field),
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "field": field, "value": value},
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// CodeOf returns the AppError code, or CodeInternal for unknown errors.
func CodeOf(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsRejection reports whether the error is one of the line-entry rejection codes.
func IsRejection(err error) bool {
	switch CodeOf(err) {
	case CodeNoProductSelected, CodeZeroQuantity, CodeInvalidPrice,
		CodeDuplicateProduct, CodeInsufficientStock:
		return true
	}
	return false
}
