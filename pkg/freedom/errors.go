package freedom

import (
	"errors"
	"fmt"
	"net/http"
)

// Error classes. Every error returned by a client wraps exactly one of these.
var (
	// ErrTransport covers network failures, timeouts and unclassified non-2xx responses.
	ErrTransport = errors.New("transport error")
	// ErrNotFound means the remote system has no resource with the requested id.
	ErrNotFound = errors.New("resource not found")
	// ErrDecode means a response body did not match the expected resource schema.
	ErrDecode = errors.New("decode error")
	// ErrValidation means the remote system rejected a create or update payload.
	ErrValidation = errors.New("validation error")
)

// Static errors for err113 compliance.
var (
	ErrMissingLink     = errors.New("resource has no such link")
	ErrInvalidID       = errors.New("link does not carry a resource id")
	ErrConfigRequired  = errors.New("config is required")
	ErrCredentials     = errors.New("key and secret are required")
	ErrUnknownEnv      = errors.New("unknown environment")
	ErrUnknownKind     = errors.New("unknown resource kind")
	ErrMissingToken    = errors.New("response has no token field")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrNATSURLRequired = errors.New("NATS URL or connection is required")
)

// ResponseError is returned for every non-2xx response.
type ResponseError struct {
	StatusCode int
	Method     string
	URL        string
	Body       []byte
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Unwrap returns the error class of the response.
func (e *ResponseError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case isValidationStatus(e.StatusCode) && isWriteMethod(e.Method):
		return ErrValidation
	default:
		return ErrTransport
	}
}

func isValidationStatus(code int) bool {
	return code == http.StatusBadRequest || code == http.StatusConflict || code == http.StatusUnprocessableEntity
}

func isWriteMethod(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// NewDecodeError wraps err as a decode failure for what.
func NewDecodeError(what string, err error) error {
	return fmt.Errorf("%w: parsing %s: %w", ErrDecode, what, err)
}

// NewTransportError wraps a failure that happened before any response was read.
func NewTransportError(err error) error {
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransport checks if the error is a transport error.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsDecode checks if the error is a decode error.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}
