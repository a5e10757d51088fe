package freedom_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasground/freedom/internal/client"
	internalhttp "github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// linkServer answers every GET with one body and records the paths asked for.
type linkServer struct {
	*httptest.Server

	body string

	mu    sync.Mutex
	paths []string
}

func newLinkServer(t *testing.T, body string) *linkServer {
	t.Helper()

	server := &linkServer{body: body}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		server.mu.Lock()
		server.paths = append(server.paths, strings.TrimPrefix(request.URL.Path, "/api/"))
		server.mu.Unlock()

		writer.Header().Set("Content-Type", "application/hal+json")
		_, _ = io.WriteString(writer, server.body)
	}))
	t.Cleanup(server.Close)

	return server
}

func (s *linkServer) base() string {
	return s.URL + "/api/"
}

func (s *linkServer) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.paths...)
}

func (s *linkServer) api() freedom.API {
	httpClient := internalhttp.NewClient(s.base(), nil,
		internalhttp.WithRetryConfig(0, time.Millisecond, time.Millisecond))

	return client.NewWithHTTPClient(httpClient, nil)
}

func resource(links freedom.Links) freedom.Resource {
	return freedom.Resource{Links: links}
}

//nolint:funlen // One case per resolver
func TestResolvers(t *testing.T) {
	t.Parallel()

	const (
		named   = `{"name": "linked", "type": "RECEIVE"}`
		request = `{"type": "EXACT", "targetDate": "2024-06-01T12:00:00Z", "duration": 300}`
		task    = `{"start": "2024-06-01T12:00:00Z", "end": "2024-06-01T12:05:00Z"}`
		user    = `{"firstName": "Ada", "email": "ada@example.com"}`
	)

	tests := []struct {
		name    string
		rel     string
		kind    freedom.Kind
		body    string
		resolve func(ctx context.Context, api freedom.API, links freedom.Links) error
	}{
		{
			name: "task request site", rel: "site", kind: freedom.KindSite, body: named,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.TaskRequest{Resource: resource(links)}).ResolveSite(ctx, api)

				return err
			},
		},
		{
			name: "task request site configuration", rel: "configuration", kind: freedom.KindSiteConfiguration, body: named,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.TaskRequest{Resource: resource(links)}).ResolveSiteConfiguration(ctx, api)

				return err
			},
		},
		{
			name: "task request satellite", rel: "satellite", kind: freedom.KindSatellite, body: named,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.TaskRequest{Resource: resource(links)}).ResolveSatellite(ctx, api)

				return err
			},
		},
		{
			name: "task request user", rel: "user", kind: freedom.KindUser, body: user,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.TaskRequest{Resource: resource(links)}).ResolveUser(ctx, api)

				return err
			},
		},
		{
			name: "task request task", rel: "task", kind: freedom.KindTask, body: task,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.TaskRequest{Resource: resource(links)}).ResolveTask(ctx, api)

				return err
			},
		},
		{
			name: "task task request", rel: "taskRequest", kind: freedom.KindTaskRequest, body: request,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.Task{Resource: resource(links)}).ResolveTaskRequest(ctx, api)

				return err
			},
		},
		{
			name: "task site configuration", rel: "config", kind: freedom.KindSiteConfiguration, body: named,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.Task{Resource: resource(links)}).ResolveSiteConfiguration(ctx, api)

				return err
			},
		},
		{
			name: "satellite configuration", rel: "configuration", kind: freedom.KindSatelliteConfiguration, body: named,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.Satellite{Resource: resource(links)}).ResolveConfiguration(ctx, api)

				return err
			},
		},
		{
			name: "satellite account", rel: "account", kind: freedom.KindAccount, body: named,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.Satellite{Resource: resource(links)}).ResolveAccount(ctx, api)

				return err
			},
		},
		{
			name: "site configuration site", rel: "site", kind: freedom.KindSite, body: named,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.SiteConfiguration{Resource: resource(links)}).ResolveSite(ctx, api)

				return err
			},
		},
		{
			name: "user account", rel: "account", kind: freedom.KindAccount, body: named,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.User{Resource: resource(links)}).ResolveAccount(ctx, api)

				return err
			},
		},
		{
			name: "band account", rel: "account", kind: freedom.KindAccount, body: named,
			resolve: func(ctx context.Context, api freedom.API, links freedom.Links) error {
				_, err := (&freedom.Band{Resource: resource(links)}).ResolveAccount(ctx, api)

				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, path := range []string{string(tt.kind) + "/7", "owners/5/" + tt.rel} {
				server := newLinkServer(t, tt.body)
				links := freedom.Links{tt.rel: {Href: server.base() + path}}

				require.NoError(t, tt.resolve(context.Background(), server.api(), links), path)
				assert.Equal(t, []string{path}, server.requested())

				err := tt.resolve(context.Background(), server.api(), freedom.Links{})
				require.ErrorIs(t, err, freedom.ErrMissingLink)
			}
		})
	}
}

func TestListResolvers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		rel   string
		item  string
		count func(ctx context.Context, api freedom.API, links freedom.Links) (int, error)
	}{
		{
			name: "task request target bands", rel: "targetBands", item: `{"name": "S-Band", "type": "RECEIVE"}`,
			count: func(ctx context.Context, api freedom.API, links freedom.Links) (int, error) {
				bands, err := freedom.Values((&freedom.TaskRequest{Resource: resource(links)}).ResolveTargetBands(ctx, api))

				return len(bands), err
			},
		},
		{
			name: "site configurations", rel: "configurations", item: `{"name": "7m"}`,
			count: func(ctx context.Context, api freedom.API, links freedom.Links) (int, error) {
				configurations, err := freedom.Values((&freedom.Site{Resource: resource(links)}).ResolveConfigurations(ctx, api))

				return len(configurations), err
			},
		},
		{
			name: "account users", rel: "users", item: `{"email": "ada@example.com"}`,
			count: func(ctx context.Context, api freedom.API, links freedom.Links) (int, error) {
				users, err := freedom.Values((&freedom.Account{Resource: resource(links)}).ResolveUsers(ctx, api))

				return len(users), err
			},
		},
		{
			name: "account satellites", rel: "satellites", item: `{"name": "test-sat"}`,
			count: func(ctx context.Context, api freedom.API, links freedom.Links) (int, error) {
				satellites, err := freedom.Values((&freedom.Account{Resource: resource(links)}).ResolveSatellites(ctx, api))

				return len(satellites), err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newLinkServer(t, `{"_embedded": {"`+tt.rel+`": [`+tt.item+`, `+tt.item+`]}, "_links": {}}`)
			links := freedom.Links{tt.rel: {Href: server.base() + "accounts/2/" + tt.rel}}

			count, err := tt.count(context.Background(), server.api(), links)
			require.NoError(t, err)
			assert.Equal(t, 2, count)
			assert.Equal(t, []string{"accounts/2/" + tt.rel}, server.requested())

			_, err = tt.count(context.Background(), server.api(), freedom.Links{})
			require.ErrorIs(t, err, freedom.ErrMissingLink)
		})
	}
}

func TestTask_ResolveAzEl(t *testing.T) {
	t.Parallel()

	server := newLinkServer(t, `{"points": [{"time": "2024-06-01T12:00:00Z", "azimuth": 10, "elevation": 5}]}`)
	task := &freedom.Task{Resource: resource(freedom.Links{"azel": {Href: server.base() + "tasks/11/azel"}})}

	azel, err := task.ResolveAzEl(context.Background(), server.api())
	require.NoError(t, err)
	require.Len(t, azel.Points, 1)
	assert.InDelta(t, 10.0, azel.Points[0].Azimuth, 1e-9)
	assert.Equal(t, []string{"tasks/11/azel"}, server.requested())

	_, err = (&freedom.Task{}).ResolveAzEl(context.Background(), server.api())
	require.ErrorIs(t, err, freedom.ErrMissingLink)
}
