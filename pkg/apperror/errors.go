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

// ---- Validation (VAL) ----

func ErrMissingRecipient(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidAmount(message string) *AppError {
	return New("VAL_002", message, http.StatusBadRequest)
}

// Validation returns a generic request validation error.
func Validation(message string) *AppError {
	return New("VAL_000", message, http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrEmailExists() *AppError {
	return New("AUTH_002", "Email already exists", http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrUserNotFound() *AppError {
	return New("AUTH_004", "User not found", http.StatusNotFound)
}

// ---- QR codes (QR) ----

func ErrNoFileUploaded() *AppError {
	return New("QR_001", "No file uploaded", http.StatusBadRequest)
}

func ErrEmptyFilename() *AppError {
	return New("QR_002", "Empty filename", http.StatusBadRequest)
}

func ErrQRCodeNotFound() *AppError {
	return New("QR_003", "QR code not found", http.StatusNotFound)
}

// ---- Portal page (PTL) ----

func ErrSessionNotOpen() *AppError {
	return New("PTL_001", "Portal session is not open", http.StatusNotFound)
}

func ErrSubmissionInFlight() *AppError {
	return New("PTL_002", "A transfer is already being submitted", http.StatusConflict)
}

func ErrSubmissionFailed(err error) *AppError {
	return Wrap("PTL_003", "Transfer could not be submitted", http.StatusBadGateway, err)
}

// NotFound returns a generic not-found error for the given entity.
func NotFound(entity string) *AppError {
	return New("PTL_004", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ErrPayloadTooLarge rejects bodies over the configured limit.
func ErrPayloadTooLarge() *AppError {
	return New("SYS_003", "Request body too large", http.StatusRequestEntityTooLarge)
}
