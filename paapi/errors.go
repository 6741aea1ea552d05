package paapi

import (
	"errors"
	"strings"
)

// Service error codes with dedicated error types.
const (
	CodeSignatureDoesNotMatch = "SignatureDoesNotMatch"
	CodeRequestThrottled      = "RequestThrottled"
	CodeRequestExpired        = "RequestExpired"

	// CodeUnknownError is used when a request is flagged invalid without a reason.
	CodeUnknownError = "UNKNOWN_ERROR"
)

// ServiceError is an error reported by the service. Codes without a dedicated
// type are returned as a bare *ServiceError.
type ServiceError struct {
	Code      string
	Message   string
	RequestID string
}

func (e *ServiceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("paapi: ")
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "service error"
	}
	b.WriteString(msg)
	if code := strings.TrimSpace(e.Code); code != "" {
		b.WriteString(" (")
		b.WriteString(code)
		b.WriteString(")")
	}
	if e.RequestID != "" {
		b.WriteString(" request_id=")
		b.WriteString(e.RequestID)
	}
	return b.String()
}

// SignatureDoesNotMatchError means the request signature was rejected.
type SignatureDoesNotMatchError struct{ *ServiceError }

func (e *SignatureDoesNotMatchError) Unwrap() error { return e.ServiceError }

// RequestThrottledError means the caller exceeded the request rate.
type RequestThrottledError struct{ *ServiceError }

func (e *RequestThrottledError) Unwrap() error { return e.ServiceError }

// RequestExpiredError means the request timestamp was too old when the
// service received it, typically because it sat in a queue after signing.
type RequestExpiredError struct{ *ServiceError }

func (e *RequestExpiredError) Unwrap() error { return e.ServiceError }

var errorTypes = map[string]func(*ServiceError) error{
	CodeSignatureDoesNotMatch: func(se *ServiceError) error { return &SignatureDoesNotMatchError{se} },
	CodeRequestThrottled:      func(se *ServiceError) error { return &RequestThrottledError{se} },
	CodeRequestExpired:        func(se *ServiceError) error { return &RequestExpiredError{se} },
}

// NewError maps code to its error type. Unknown codes yield a *ServiceError.
func NewError(code, message string) error {
	return classify(&ServiceError{Code: code, Message: message})
}

func classify(se *ServiceError) error {
	if wrap, ok := errorTypes[se.Code]; ok {
		return wrap(se)
	}
	return se
}

// AsServiceError extracts the *ServiceError behind err, whatever its type.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsThrottled reports whether err is a RequestThrottledError.
func IsThrottled(err error) bool {
	var te *RequestThrottledError
	return errors.As(err, &te)
}

// IsExpired reports whether err is a RequestExpiredError.
func IsExpired(err error) bool {
	var ee *RequestExpiredError
	return errors.As(err, &ee)
}

// IsRetryable reports whether err is transient: throttling or an expired
// signature. A new attempt (re-signed) may succeed.
func IsRetryable(err error) bool {
	return IsThrottled(err) || IsExpired(err)
}
