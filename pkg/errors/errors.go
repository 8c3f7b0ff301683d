package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed client error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// GenericMessage is shown whenever the server gives no usable description.
const GenericMessage = "Đã có lỗi xảy ra, vui lòng thử lại sau"

// Predefined errors for common scenarios.
var (
	ErrSessionExpired = New("SESSION_EXPIRED", http.StatusUnauthorized, "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại")
	ErrForbidden      = New("FORBIDDEN", http.StatusForbidden, "Bạn không có quyền thực hiện thao tác này")
	ErrNotFound       = New("NOT_FOUND", http.StatusNotFound, "Không tìm thấy tài nguyên yêu cầu")
	ErrRateLimited    = New("RATE_LIMITED", http.StatusTooManyRequests, "Thao tác quá nhanh, vui lòng thử lại sau")
	ErrValidation     = New("VALIDATION_ERROR", http.StatusBadRequest, "Dữ liệu không hợp lệ")
	ErrRejected       = New("REJECTED", http.StatusUnprocessableEntity, "Yêu cầu bị từ chối")
	ErrTransport      = New("TRANSPORT_ERROR", http.StatusBadGateway, GenericMessage)
	ErrInternal       = New("INTERNAL_ERROR", http.StatusInternalServerError, GenericMessage)
	ErrCacheMiss      = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromStatus maps an HTTP status code to the matching client error. The
// mapping is applied in one place instead of per call site.
func FromStatus(status int) *Error {
	switch status {
	case http.StatusUnauthorized:
		return ErrSessionExpired
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return New("HTTP_ERROR", status, GenericMessage)
	}
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
