package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Session & Authentication (AUTH) ----

func ErrAuthenticationFailed(message string) *AppError {
	if message == "" {
		message = "Invalid API Login ID or Transaction Key"
	}
	return New("AUTH_001", message, http.StatusUnauthorized)
}

func ErrNotAuthenticated() *AppError {
	return New("AUTH_002", "No active merchant session", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired session token", http.StatusUnauthorized)
}

func ErrAppLocked() *AppError {
	return New("AUTH_004", "Application is locked", http.StatusForbidden)
}

func ErrInvalidPasscode() *AppError {
	return New("AUTH_005", "Invalid unlock passcode", http.StatusForbidden)
}

// ---- Gateway (GW) ----

// ErrTransportFailure covers connection errors and non-2xx HTTP statuses.
func ErrTransportFailure(detail string, err error) *AppError {
	return Wrap("GW_001", fmt.Sprintf("Network error: %s", detail), http.StatusBadGateway, err)
}

// ErrGatewayApplication covers replies where the gateway itself reports
// resultCode "Error". The message is the gateway's own text, surfaced verbatim.
func ErrGatewayApplication(message string) *AppError {
	return New("GW_002", message, http.StatusUnprocessableEntity)
}

// ErrDecodeFailure covers malformed replies and missing envelope keys.
func ErrDecodeFailure(err error) *AppError {
	return Wrap("GW_003", "Failed to process gateway response", http.StatusBadGateway, err)
}

// ---- Sale Workflow (SALE) ----

func ErrInvalidTransition(detail string) *AppError {
	return New("SALE_001", detail, http.StatusConflict)
}

func ErrSubmissionInFlight() *AppError {
	return New("SALE_002", "A submission is already in progress for this sale", http.StatusConflict)
}

func ErrSaleNotFound() *AppError {
	return New("SALE_003", "Sale draft not found", http.StatusNotFound)
}

// ---- Validation (VAL) ----

// Validation returns a field-level validation error. Never sent to the gateway.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidField(field string, reason string) *AppError {
	return New("VAL_001", fmt.Sprintf("%s: %s", field, reason), http.StatusBadRequest)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrSecretStore(err error) *AppError {
	return Wrap("SYS_002", "Secure storage failure", http.StatusServiceUnavailable, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}
