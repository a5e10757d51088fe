package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// baseToken is replaced by the server's entry point in fixture bodies.
const baseToken = "{{base}}"

type fixture struct {
	status  int
	body    string
	headers map[string]string
}

type recordedRequest struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

// halServer serves canned HAL documents under /api/ and counts requests.
type halServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]fixture
	hits     map[string]int
	requests []recordedRequest
}

func newHALServer(t *testing.T) *halServer {
	t.Helper()

	server := &halServer{
		routes: make(map[string]fixture),
		hits:   make(map[string]int),
	}
	server.Server = httptest.NewServer(http.HandlerFunc(server.serve))
	t.Cleanup(server.Close)

	return server
}

func (s *halServer) base() string {
	return s.URL + "/api/"
}

// handle registers a response. target is a path below /api/, optionally with
// a query; a route without a query matches any query.
func (s *halServer) handle(method, target string, status int, body string) {
	s.handleWithHeaders(method, target, status, body, nil)
}

func (s *halServer) handleWithHeaders(method, target string, status int, body string, headers map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routes[method+" /api/"+target] = fixture{status: status, body: body, headers: headers}
}

func (s *halServer) serve(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	s.mu.Lock()
	key := request.Method + " " + request.URL.Path

	route, ok := s.routes[key+"?"+request.URL.RawQuery]
	if !ok {
		route, ok = s.routes[key]
	}

	s.hits[key]++
	s.requests = append(s.requests, recordedRequest{
		method: request.Method,
		path:   request.URL.Path,
		query:  request.URL.RawQuery,
		header: request.Header.Clone(),
		body:   body,
	})
	s.mu.Unlock()

	if !ok {
		writer.WriteHeader(http.StatusNotFound)

		return
	}

	for name, value := range route.headers {
		writer.Header().Set(name, strings.ReplaceAll(value, baseToken, s.base()))
	}

	if route.body != "" {
		writer.Header().Set("Content-Type", "application/hal+json")
	}

	writer.WriteHeader(route.status)
	_, _ = io.WriteString(writer, strings.ReplaceAll(route.body, baseToken, s.base()))
}

// hitCount returns how many requests reached method and path (query ignored).
func (s *halServer) hitCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hits[method+" /api/"+path]
}

func (s *halServer) lastRequest() recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return recordedRequest{}
	}

	return s.requests[len(s.requests)-1]
}

// recordingLogger keeps warnings for assertions.
type recordingLogger struct {
	freedom.NopLogger

	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Warn(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.warnings)
}

// newTestClient creates a client against server without credentials or retries.
func newTestClient(server *halServer, logger freedom.Logger) *Client {
	httpClient := internalhttp.NewClient(server.base(), nil,
		internalhttp.WithRetryConfig(0, time.Millisecond, time.Millisecond))

	return NewWithHTTPClient(httpClient, logger)
}

func satelliteJSON(id, name string) string {
	return `{
		"name": "` + name + `",
		"description": "test satellite",
		"noradCatId": 25544,
		"_links": {
			"self": {"href": "{{base}}satellites/` + id + `"},
			"satellite": {"href": "{{base}}satellites/` + id + `"},
			"configuration": {"href": "{{base}}satellite_configurations/4"},
			"account": {"href": "{{base}}accounts/2"}
		}
	}`
}

func halPage(rel, next string, items ...string) string {
	links := `"self": {"href": "{{base}}` + rel + `"}`
	if next != "" {
		links += `, "next": {"href": "` + next + `"}`
	}

	return `{
		"_embedded": {"` + rel + `": [` + strings.Join(items, ",") + `]},
		"_links": {` + links + `},
		"page": {"size": 20, "totalElements": ` + strconv.Itoa(len(items)) + `, "totalPages": 1, "number": 0}
	}`
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[T any] struct {
	Name         string
	ID           int
	ExpectedPath string
	StatusCode   int
	Response     string
	WantErr      error
	Check        func(t *testing.T, value *T)
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[T any](
	t *testing.T,
	tests []TestGetOperation[T],
	getFunc func(*Client) func(context.Context, int) (freedom.Container[T], error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := newHALServer(t)
			server.handle(http.MethodGet, testCase.ExpectedPath, testCase.StatusCode, testCase.Response)

			client := newTestClient(server, nil)

			result, err := getFunc(client)(context.Background(), testCase.ID)
			assert.Equal(t, 1, server.hitCount(http.MethodGet, testCase.ExpectedPath))

			if testCase.WantErr != nil {
				require.ErrorIs(t, err, testCase.WantErr)
				assert.True(t, result.IsZero())

				return
			}

			require.NoError(t, err)
			require.False(t, result.IsZero())
			assert.False(t, result.IsShared())

			if testCase.Check != nil {
				testCase.Check(t, result.Ref())
			}
		})
	}
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ID           int
	ExpectedPath string
	StatusCode   int
	WantErr      error
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, int) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := newHALServer(t)
			server.handle(http.MethodDelete, testCase.ExpectedPath, testCase.StatusCode, "")

			err := deleteFunc(newTestClient(server, nil))(context.Background(), testCase.ID)
			assert.Equal(t, 1, server.hitCount(http.MethodDelete, testCase.ExpectedPath))

			if testCase.WantErr != nil {
				require.ErrorIs(t, err, testCase.WantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}
