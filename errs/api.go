package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable classification callers branch on.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindHTTPStatus Kind = "http-status"
	KindNotFound   Kind = "not-found"
	KindValidation Kind = "validation"
	KindUpstream   Kind = "upstream-service"
	KindDatabase   Kind = "database"
)

// Common error sentinel values
var (
	ErrNotFound             = errors.New("not found")
	ErrBadRequest           = errors.New("malformed request")
	ErrInternal             = errors.New("internal server error")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidField         = errors.New("invalid field")
	ErrUpstream             = errors.New("upstream service failure")
)

type ApiErr struct {
	StatusCode int
	Kind       Kind
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewApiErr(statusCode int, kind Kind, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		Kind:       kind,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// Common error constructors with appropriate HTTP status codes
func NewNotFoundError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, Kind: KindNotFound, err: errors.New(message)}
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, Kind: KindValidation, err: errors.New(message)}
}

func NewInternalError(message string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, Kind: KindHTTPStatus, err: errors.New(message)}
}

func NewTransportError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: 0,
		Kind:       KindTransport,
		err:        errors.New("request could not be completed"),
		Cause:      cause,
	}
}

func NewMissingRequiredFieldError(fieldName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Kind:       KindValidation,
		err:        ErrMissingRequiredField,
		Details:    fmt.Sprintf("missing required field: %s", fieldName),
		Field:      fieldName,
	}
}

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		Kind:       KindValidation,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("invalid field %s: %s", fieldName, reason),
		Field:      fieldName,
	}
}

func NewUpstreamError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		Kind:       KindUpstream,
		err:        ErrUpstream,
		Details:    fmt.Sprintf("%s request failed", service),
		Cause:      cause,
	}
}

// FromResponse rebuilds a typed error from an API error body, keeping
// the server-assigned kind when it carried one.
func FromResponse(statusCode int, kind Kind, message, details, field string) *ApiErr {
	if kind == "" {
		kind = KindHTTPStatus
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &ApiErr{
		StatusCode: statusCode,
		Kind:       kind,
		err:        errors.New(message),
		Details:    details,
		Field:      field,
	}
}

func IsNotFound(err error) bool {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindNotFound
	}
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindValidation
	}
	return false
}

func IsTransport(err error) bool {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindTransport
	}
	return false
}

func IsUpstream(err error) bool {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Kind == KindUpstream
	}
	return errors.Is(err, ErrUpstream)
}

// KindOf extracts the Kind from any error, defaulting unknown errors to
// the transport kind so callers always have something to branch on.
func KindOf(err error) Kind {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransport
}
