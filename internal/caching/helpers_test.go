package caching_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atlasground/freedom/internal/caching"
	"github.com/atlasground/freedom/internal/client"
	internalhttp "github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

type reply struct {
	status int
	body   string
}

// countingServer answers fixed replies below /api/ and counts requests per
// method and path. A gate, when set, holds every request until it is closed.
type countingServer struct {
	*httptest.Server

	mu      sync.Mutex
	replies map[string]reply
	hits    map[string]int
	gate    chan struct{}
}

func newCountingServer(t *testing.T) *countingServer {
	t.Helper()

	server := &countingServer{
		replies: make(map[string]reply),
		hits:    make(map[string]int),
	}
	server.Server = httptest.NewServer(http.HandlerFunc(server.serve))
	t.Cleanup(server.Close)

	return server
}

func (s *countingServer) base() string {
	return s.URL + "/api/"
}

func (s *countingServer) reply(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replies[method+" /api/"+path] = reply{status: status, body: body}
}

func (s *countingServer) hold() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gate = make(chan struct{})

	return s.gate
}

func (s *countingServer) hitCount(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hits[method+" /api/"+path]
}

func (s *countingServer) serve(writer http.ResponseWriter, request *http.Request) {
	_, _ = io.Copy(io.Discard, request.Body)

	key := request.Method + " " + request.URL.Path

	s.mu.Lock()
	s.hits[key]++
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	resp, ok := s.replies[key]
	s.mu.Unlock()

	if !ok {
		writer.WriteHeader(http.StatusNotFound)

		return
	}

	writer.Header().Set("Content-Type", "application/hal+json")
	writer.WriteHeader(resp.status)
	_, _ = io.WriteString(writer, strings.ReplaceAll(resp.body, "{{base}}", s.base()))
}

func newDirect(server *countingServer) *client.Client {
	httpClient := internalhttp.NewClient(server.base(), nil,
		internalhttp.WithRetryConfig(0, time.Millisecond, time.Millisecond))

	return client.NewWithHTTPClient(httpClient, nil)
}

func newCaching(server *countingServer, options *freedom.CacheOptions) *caching.Client {
	return caching.NewWithCache(newDirect(server), options, nil, nil)
}

func satellite(id int, name string) string {
	href := "{{base}}satellites/" + strconv.Itoa(id)

	return `{
		"name": "` + name + `",
		"noradCatId": 25544,
		"_links": {
			"self": {"href": "` + href + `"},
			"satellite": {"href": "` + href + `"}
		}
	}`
}

func satellitePath(id int) string {
	return "satellites/" + strconv.Itoa(id)
}
