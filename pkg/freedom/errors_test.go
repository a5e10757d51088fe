package freedom_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atlasground/freedom/pkg/freedom"
)

func TestResponseError_Error(t *testing.T) {
	t.Parallel()

	err := &freedom.ResponseError{
		StatusCode: http.StatusNotFound,
		Method:     http.MethodGet,
		URL:        "https://test-api.atlasground.com/api/satellites/9",
	}
	assert.Equal(t, "GET https://test-api.atlasground.com/api/satellites/9: 404 Not Found", err.Error())

	err.Body = []byte("no such satellite")
	assert.Equal(t, "GET https://test-api.atlasground.com/api/satellites/9: 404 Not Found: no such satellite", err.Error())
}

//nolint:funlen // Test functions can be longer for detailed testing
func TestResponseError_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		notFound   bool
		validation bool
		transport  bool
		decode     bool
	}{
		{
			name:     "not found",
			err:      &freedom.ResponseError{StatusCode: http.StatusNotFound, Method: http.MethodGet},
			notFound: true,
		},
		{
			name:     "not found on delete",
			err:      &freedom.ResponseError{StatusCode: http.StatusNotFound, Method: http.MethodDelete},
			notFound: true,
		},
		{
			name:       "unprocessable create",
			err:        &freedom.ResponseError{StatusCode: http.StatusUnprocessableEntity, Method: http.MethodPost},
			validation: true,
		},
		{
			name:       "bad update",
			err:        &freedom.ResponseError{StatusCode: http.StatusBadRequest, Method: http.MethodPatch},
			validation: true,
		},
		{
			name:       "conflicting put",
			err:        &freedom.ResponseError{StatusCode: http.StatusConflict, Method: http.MethodPut},
			validation: true,
		},
		{
			name:      "bad read",
			err:       &freedom.ResponseError{StatusCode: http.StatusBadRequest, Method: http.MethodGet},
			transport: true,
		},
		{
			name:      "server error",
			err:       &freedom.ResponseError{StatusCode: http.StatusInternalServerError, Method: http.MethodPost},
			transport: true,
		},
		{
			name:      "unauthorized",
			err:       &freedom.ResponseError{StatusCode: http.StatusUnauthorized, Method: http.MethodGet},
			transport: true,
		},
		{
			name:      "network failure",
			err:       freedom.NewTransportError(errors.New("connection refused")),
			transport: true,
		},
		{
			name:   "decode failure",
			err:    freedom.NewDecodeError("satellite", errors.New("unexpected end of JSON input")),
			decode: true,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("resolving site: %w", &freedom.ResponseError{StatusCode: http.StatusNotFound}),
			notFound: true,
		},
		{
			name: "other error type",
			err:  errors.New("some error"),
		},
		{
			name: "nil error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.notFound, freedom.IsNotFound(tt.err))
			assert.Equal(t, tt.validation, freedom.IsValidation(tt.err))
			assert.Equal(t, tt.transport, freedom.IsTransport(tt.err))
			assert.Equal(t, tt.decode, freedom.IsDecode(tt.err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("listing: %w", &freedom.ResponseError{StatusCode: http.StatusBadGateway})

	assert.Equal(t, http.StatusBadGateway, freedom.StatusCode(wrapped))
	assert.Equal(t, 0, freedom.StatusCode(freedom.NewTransportError(errors.New("timeout"))))
	assert.Equal(t, 0, freedom.StatusCode(nil))
}

func TestNewDecodeError(t *testing.T) {
	t.Parallel()

	cause := errors.New("invalid character")
	err := freedom.NewDecodeError("task request", cause)

	assert.ErrorIs(t, err, freedom.ErrDecode)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "parsing task request")
}
