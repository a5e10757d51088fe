package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasground/freedom/pkg/freedom"
)

func TestClient_GetByName(t *testing.T) {
	t.Parallel()

	server := newHALServer(t)
	server.handle(http.MethodGet, "satellites/findOneByName?name=test-sat", http.StatusOK, satelliteJSON("7", "test-sat"))
	server.handle(http.MethodGet, "accounts/search/findOneByName?name=ATLAS", http.StatusOK,
		`{"name": "ATLAS", "_links": {"self": {"href": "{{base}}accounts/2"}}}`)
	server.handle(http.MethodGet, "sites/search/findOneByName?name=Fairbanks", http.StatusOK,
		`{"name": "Fairbanks", "_links": {"self": {"href": "{{base}}sites/3"}}}`)
	server.handle(http.MethodGet, "configurations/search/findOneByName?name=7m", http.StatusOK,
		`{"name": "7m", "_links": {"self": {"href": "{{base}}configurations/8"}}}`)
	server.handle(http.MethodGet, "satellite_bands/search/findOneByName?name=S-Band", http.StatusOK,
		`{"name": "S-Band", "type": "RECEIVE"}`)
	server.handle(http.MethodGet, "satellite_configurations/search/findOneByName?name=default", http.StatusOK,
		`{"name": "default"}`)

	client := newTestClient(server, nil)
	ctx := context.Background()

	satellite, err := client.Satellites().GetByName(ctx, "test-sat")
	require.NoError(t, err)
	assert.Equal(t, "test-sat", satellite.Ref().Name)

	account, err := client.Accounts().GetByName(ctx, "ATLAS")
	require.NoError(t, err)
	assert.Equal(t, "ATLAS", account.Ref().Name)

	site, err := client.Sites().GetByName(ctx, "Fairbanks")
	require.NoError(t, err)
	assert.Equal(t, "Fairbanks", site.Ref().Name)

	configuration, err := client.SiteConfigurations().GetByName(ctx, "7m")
	require.NoError(t, err)
	assert.Equal(t, "7m", configuration.Ref().Name)

	band, err := client.Bands().GetByName(ctx, "S-Band")
	require.NoError(t, err)
	assert.Equal(t, freedom.BandTypeReceive, band.Ref().Type)

	satelliteConfiguration, err := client.SatelliteConfigurations().GetByName(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "default", satelliteConfiguration.Ref().Name)

	_, err = client.Sites().GetByName(ctx, "Atlantis")
	assert.True(t, freedom.IsNotFound(err))
}

func TestClient_ListByAccountName(t *testing.T) {
	t.Parallel()

	server := newHALServer(t)
	server.handle(http.MethodGet, "satellite_bands/search/findAllByAccountName?accountName=ATLAS", http.StatusOK,
		halPage("satellite_bands", "", `{"name": "S-Band", "type": "RECEIVE"}`, `{"name": "X-Band", "type": "TRANSMIT"}`))
	server.handle(http.MethodGet, "satellite_configurations/search/findAllByAccountName?accountName=ATLAS", http.StatusOK,
		halPage("satellite_configurations", "", `{"name": "default"}`))

	client := newTestClient(server, nil)

	bands, err := freedom.Values(client.Bands().ListByAccountName(context.Background(), "ATLAS"))
	require.NoError(t, err)
	assert.Len(t, bands, 2)

	configurations, err := freedom.Values(client.SatelliteConfigurations().ListByAccountName(context.Background(), "ATLAS"))
	require.NoError(t, err)
	assert.Len(t, configurations, 1)
}

//nolint:funlen // Test functions can be longer for detailed testing
func TestTaskRequestsClient_Search(t *testing.T) {
	t.Parallel()

	request := `{"type": "EXACT", "targetDate": "2024-06-01T12:00:00Z", "duration": 300}`
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	const (
		from          = "start=2024-06-01T00%3A00%3A00Z"
		to            = "end=2024-06-02T00%3A00%3A00Z"
		account       = "account=%2Fapi%2Faccounts%2F2"
		configuration = "configuration=%2Fapi%2Fconfigurations%2F8"
	)

	tests := []struct {
		name  string
		route string
		list  func(*Client) freedom.Seq[freedom.TaskRequest]
	}{
		{
			name:  "by satellite name",
			route: "requests/search/findBySatelliteName?name=test-sat",
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListBySatelliteName(context.Background(), "test-sat")
			},
		},
		{
			name:  "by status",
			route: "requests/search/findByStatus?status=SCHEDULED",
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByStatus(context.Background(), freedom.TaskStatusScheduled)
			},
		},
		{
			name:  "by target date",
			route: "requests/search/findAllByTargetDateBetween?end=2024-06-02T00%3A00%3A00Z&start=2024-06-01T00%3A00%3A00Z",
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByTargetDateBetween(context.Background(), start, end)
			},
		},
		{
			name:  "upcoming today",
			route: "requests/search/findAllUpcomingToday",
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListUpcomingToday(context.Background())
			},
		},
		{
			name:  "passed today",
			route: "requests/search/findAllPassedToday",
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListPassedToday(context.Background())
			},
		},
		{
			name:  "by account and target date",
			route: "requests/search/findAllByAccountAndTargetDateBetween?" + account + "&" + to + "&" + from,
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByAccountAndTargetDateBetween(context.Background(), "/api/accounts/2", start, end)
			},
		},
		{
			name:  "account upcoming today",
			route: "requests/search/findByAccountUpcomingToday",
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByAccountUpcomingToday(context.Background())
			},
		},
		{
			name:  "by configuration",
			route: "requests/search/findAllByConfigurationOrderByCreatedAsc?" + configuration,
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByConfiguration(context.Background(), "/api/configurations/8")
			},
		},
		{
			name: "by configuration, satellite names and target date",
			route: "requests/search/findAllByConfigurationAndSatelliteNamesAndTargetDateBetween?" +
				configuration + "&" + to + "&satelliteNames=sat-a%2Csat-b&" + from,
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByConfigurationAndSatelliteNamesAndTargetDateBetween(
					context.Background(), "/api/configurations/8", []string{"sat-a", "sat-b"}, start, end)
			},
		},
		{
			name:  "by configuration and target date",
			route: "requests/search/findAllByConfigurationAndTargetDateBetween?" + configuration + "&" + to + "&" + from,
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByConfigurationAndTargetDateBetween(
					context.Background(), "/api/configurations/8", start, end)
			},
		},
		{
			name:  "by ids",
			route: "requests/search/findAllByIds?ids=3%2C5%2C8",
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByIDs(context.Background(), []int{3, 5, 8})
			},
		},
		{
			name:  "overlapping public",
			route: "requests/search/findAllByOverlappingPublic?" + to + "&" + from,
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByOverlappingPublic(context.Background(), start, end)
			},
		},
		{
			name:  "by satellite name and target date",
			route: "requests/search/findAllBySatelliteNameAndTargetDateBetween?" + to + "&name=test-sat&" + from,
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListBySatelliteNameAndTargetDateBetween(context.Background(), "test-sat", start, end)
			},
		},
		{
			name: "by status, account and target date",
			route: "requests/search/findAllByStatusAndAccountAndTargetDateBetween?" +
				account + "&" + to + "&" + from + "&status=SCHEDULED",
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByStatusAndAccountAndTargetDateBetween(
					context.Background(), freedom.TaskStatusScheduled, "/api/accounts/2", start, end)
			},
		},
		{
			name:  "by type and target date",
			route: "requests/search/findAllByTypeAndTargetDateBetween?" + to + "&" + from + "&type=EXACT",
			list: func(c *Client) freedom.Seq[freedom.TaskRequest] {
				return c.TaskRequests().ListByTypeAndTargetDateBetween(context.Background(), freedom.TaskTypeExact, start, end)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newHALServer(t)
			server.handle(http.MethodGet, tt.route, http.StatusOK, halPage("requests", "", request))

			requests, err := freedom.Values(tt.list(newTestClient(server, nil)))
			require.NoError(t, err)
			require.Len(t, requests, 1)
			assert.Equal(t, freedom.TaskTypeExact, requests[0].Type)
		})
	}
}

func TestTasksClient_Search(t *testing.T) {
	t.Parallel()

	task := `{"start": "2024-06-01T12:00:00Z", "end": "2024-06-01T12:05:00Z"}`
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	server := newHALServer(t)
	server.handle(http.MethodGet,
		"tasks/search/findByStartBetweenOrderByStartAsc?end=2024-06-01T06%3A00%3A00Z&start=2024-06-01T00%3A00%3A00Z",
		http.StatusOK, halPage("tasks", "", task, task))
	server.handle(http.MethodGet, "tasks/search/findAllUpcomingToday", http.StatusOK, halPage("tasks", "", task))
	server.handle(http.MethodGet, "tasks/search/findAllPassedToday", http.StatusOK, halPage("tasks", ""))

	client := newTestClient(server, nil)
	ctx := context.Background()

	window, err := freedom.Values(client.Tasks().ListByPassWindow(ctx, start, start.Add(6*time.Hour)))
	require.NoError(t, err)
	assert.Len(t, window, 2)

	upcoming, err := freedom.Values(client.Tasks().ListUpcomingToday(ctx))
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	passed, err := freedom.Values(client.Tasks().ListPassedToday(ctx))
	require.NoError(t, err)
	assert.Empty(t, passed)
}

func TestTasksClient_OverlapSearch(t *testing.T) {
	t.Parallel()

	task := `{"start": "2024-06-01T12:00:00Z", "end": "2024-06-01T12:05:00Z"}`
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	const (
		window  = "end=2024-06-02T00%3A00%3A00Z&start=2024-06-01T00%3A00%3A00Z"
		account = "account=%2Fapi%2Faccounts%2F2&"
		search  = "tasks/search/findByAccountAndSiteConfigurationAndBandAndPassOverlapping?"
	)

	tests := []struct {
		name  string
		route string
		list  func(*Client) freedom.Seq[freedom.Task]
	}{
		{
			name:  "by pass overlapping",
			route: "tasks/search/findByOverlapping?" + window,
			list: func(c *Client) freedom.Seq[freedom.Task] {
				return c.Tasks().ListByPassOverlapping(context.Background(), start, end)
			},
		},
		{
			name:  "by account",
			route: "tasks/search/findByAccountAndPassOverlapping?" + account + window,
			list: func(c *Client) freedom.Seq[freedom.Task] {
				return c.Tasks().ListByAccountAndPassOverlapping(context.Background(), "/api/accounts/2", start, end)
			},
		},
		{
			name: "by account, satellite and band",
			route: search + account + "band=S-Band&end=2024-06-02T00%3A00%3A00Z" +
				"&satellite=%2Fapi%2Fsatellite_configurations%2F4&start=2024-06-01T00%3A00%3A00Z",
			list: func(c *Client) freedom.Seq[freedom.Task] {
				return c.Tasks().ListByAccountAndSatelliteAndBandAndPassOverlapping(
					context.Background(), "/api/accounts/2", "/api/satellite_configurations/4", "S-Band", start, end)
			},
		},
		{
			name: "by account, site configuration and band",
			route: search + account + "band=S-Band&end=2024-06-02T00%3A00%3A00Z" +
				"&siteConfig=%2Fapi%2Fconfigurations%2F8&start=2024-06-01T00%3A00%3A00Z",
			list: func(c *Client) freedom.Seq[freedom.Task] {
				return c.Tasks().ListByAccountAndSiteConfigurationAndBandAndPassOverlapping(
					context.Background(), "/api/accounts/2", "/api/configurations/8", "S-Band", start, end)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newHALServer(t)
			server.handle(http.MethodGet, tt.route, http.StatusOK, halPage("tasks", "", task, task))

			tasks, err := freedom.Values(tt.list(newTestClient(server, nil)))
			require.NoError(t, err)
			assert.Len(t, tasks, 2)
		})
	}
}

func TestTasksClient_GetAzEl(t *testing.T) {
	t.Parallel()

	server := newHALServer(t)
	server.handle(http.MethodGet, "tasks/11/azel", http.StatusOK, `{
		"location": {"latitude": 64.8, "longitude": -147.7, "elevation": 136},
		"points": [
			{"time": "2024-06-01T12:00:00Z", "azimuth": 10.5, "elevation": 5},
			{"time": "2024-06-01T12:01:00Z", "azimuth": 20.25, "elevation": 15}
		]
	}`)
	server.handle(http.MethodGet, "tasks/12/azel", http.StatusOK, `{"location": {"latitude": 95}, "points": []}`)

	client := newTestClient(server, nil)

	azel, err := client.Tasks().GetAzEl(context.Background(), server.base()+"tasks/11/azel")
	require.NoError(t, err)
	require.Len(t, azel.Points, 2)
	assert.InDelta(t, 64.8, azel.Location.Latitude, 1e-9)
	assert.InDelta(t, 20.25, azel.Points[1].Azimuth, 1e-9)

	_, err = client.Tasks().GetAzEl(context.Background(), server.base()+"tasks/12/azel")
	assert.True(t, freedom.IsDecode(err))
}

func TestBundlesClient_ListOverlapping(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	route := "fpstaskbundle/search/findByOverlapping?end=2024-06-01T06%3A00%3A00Z&start=2024-06-01T00%3A00%3A00Z"
	bundle := `{
		"task": {"start": "2024-06-01T01:00:00Z", "end": "2024-06-01T01:10:00Z"},
		"satellite": {"name": "test-sat", "noradCatId": 25544},
		"bands": [{"name": "S-Band", "type": "RECEIVE"}]
	}`

	t.Run("array", func(t *testing.T) {
		t.Parallel()

		server := newHALServer(t)
		server.handle(http.MethodGet, route, http.StatusOK, "["+bundle+"]")

		bundles, err := newTestClient(server, nil).Bundles().ListOverlapping(context.Background(), start, start.Add(6*time.Hour))
		require.NoError(t, err)
		require.Len(t, bundles, 1)
		assert.Equal(t, "test-sat", bundles[0].Satellite.Name)
		assert.Equal(t, 10*time.Minute, bundles[0].Task.End.Sub(bundles[0].Task.Start))
		require.Len(t, bundles[0].Bands, 1)
	})

	t.Run("page", func(t *testing.T) {
		t.Parallel()

		server := newHALServer(t)
		server.handle(http.MethodGet, route, http.StatusOK, halPage("fpsTaskBundles", "", bundle, bundle))

		bundles, err := newTestClient(server, nil).Bundles().ListOverlapping(context.Background(), start, start.Add(6*time.Hour))
		require.NoError(t, err)
		assert.Len(t, bundles, 2)
	})

	t.Run("undecodable", func(t *testing.T) {
		t.Parallel()

		server := newHALServer(t)
		server.handle(http.MethodGet, route, http.StatusOK, `[{"task": 5}]`)

		_, err := newTestClient(server, nil).Bundles().ListOverlapping(context.Background(), start, start.Add(6*time.Hour))
		assert.True(t, freedom.IsDecode(err))
	})
}

func TestTasksClient_DownloadFile(t *testing.T) {
	t.Parallel()

	server := newHALServer(t)
	server.handle(http.MethodGet, "downloads/11/iq.bin", http.StatusOK, "\x00\x01\x02")

	client := newTestClient(server, nil)

	data, err := client.Tasks().DownloadFile(context.Background(), 11, "iq.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 2}, data)
	assert.Equal(t, "*/*", server.lastRequest().header.Get("Accept"))

	_, err = client.Tasks().DownloadFile(context.Background(), 11, "missing.bin")
	assert.True(t, freedom.IsNotFound(err))
}

func TestUsersClient_Create(t *testing.T) {
	t.Parallel()

	server := newHALServer(t)
	server.handle(http.MethodPost, "accounts/2/newuser", http.StatusCreated,
		`{"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com", "_links": {"self": {"href": "{{base}}users/31"}}}`)

	client := newTestClient(server, nil)

	payload, err := (&freedom.UserOptions{AccountID: 2, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}).Build()
	require.NoError(t, err)

	user, err := client.Users().Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Ref().Email)
	assert.JSONEq(t, `{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "ada@example.com",
		"machineService": false,
		"roles": []
	}`, string(server.lastRequest().body))

	_, err = client.Users().Create(context.Background(), &freedom.UserPayload{Email: "x@example.com"})
	require.ErrorIs(t, err, freedom.ErrInvalidPayload)
	assert.Equal(t, 1, server.hitCount(http.MethodPost, "accounts/2/newuser"))
}

func TestTokensClient(t *testing.T) {
	t.Parallel()

	server := newHALServer(t)
	server.handle(http.MethodPost, "fps", http.StatusOK, `{"token": "fps-token-123"}`)

	client := newTestClient(server, nil)

	token, err := client.Tokens().NewBySatellite(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "fps-token-123", token)
	assert.JSONEq(t, `{"band": "/api/satellite_bands/1", "satellite": "/api/satellites/7"}`, string(server.lastRequest().body))

	token, err = client.Tokens().NewBySiteConfiguration(context.Background(), 1, 8)
	require.NoError(t, err)
	assert.Equal(t, "fps-token-123", token)
	assert.JSONEq(t, `{"band": "/api/satellite_bands/1", "configuration": "/api/configurations/8"}`, string(server.lastRequest().body))
}

func TestTokensClient_MissingToken(t *testing.T) {
	t.Parallel()

	server := newHALServer(t)
	server.handle(http.MethodPost, "fps", http.StatusOK, `{"message": "ok"}`)

	_, err := newTestClient(server, nil).Tokens().NewBySatellite(context.Background(), 1, 7)
	require.ErrorIs(t, err, freedom.ErrMissingToken)
	assert.True(t, freedom.IsDecode(err))
}

//nolint:funlen // Test functions can be longer for detailed testing
func TestGatewayLicensesClient(t *testing.T) {
	t.Parallel()

	license := `{"id": 5, "name": "edge-01", "licenseKey": "ABCD-1234", "accountId": 2}`

	t.Run("list array", func(t *testing.T) {
		t.Parallel()

		server := newHALServer(t)
		server.handle(http.MethodGet, "gateway-licenses", http.StatusOK, "["+license+"]")

		licenses, err := newTestClient(server, nil).GatewayLicenses().List(context.Background())
		require.NoError(t, err)
		require.Len(t, licenses, 1)
		assert.Equal(t, "ABCD-1234", licenses[0].LicenseKey)
	})

	t.Run("list page", func(t *testing.T) {
		t.Parallel()

		server := newHALServer(t)
		server.handle(http.MethodGet, "gateway-licenses", http.StatusOK, halPage("gatewayLicenses", "", license, license))

		licenses, err := newTestClient(server, nil).GatewayLicenses().List(context.Background())
		require.NoError(t, err)
		assert.Len(t, licenses, 2)
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		server := newHALServer(t)
		server.handle(http.MethodGet, "gateway-licenses/5", http.StatusOK, license)

		got, err := newTestClient(server, nil).GatewayLicenses().Get(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, 5, got.ID)
		assert.Equal(t, "edge-01", got.Name)
	})

	t.Run("verify", func(t *testing.T) {
		t.Parallel()

		server := newHALServer(t)
		server.handle(http.MethodPost, "gateway-licenses/verify", http.StatusOK, `{"valid": true}`)

		verification, err := newTestClient(server, nil).GatewayLicenses().Verify(context.Background(), "ABCD-1234")
		require.NoError(t, err)
		assert.True(t, verification.Valid)
		assert.JSONEq(t, `{"licenseKey": "ABCD-1234"}`, string(server.lastRequest().body))
	})

	t.Run("regenerate", func(t *testing.T) {
		t.Parallel()

		server := newHALServer(t)
		server.handle(http.MethodPost, "gateway-licenses/5/regenerate", http.StatusOK,
			`{"id": 5, "name": "edge-01", "licenseKey": "EFGH-5678"}`)

		regenerated, err := newTestClient(server, nil).GatewayLicenses().Regenerate(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "EFGH-5678", regenerated.LicenseKey)
		assert.JSONEq(t, `{}`, string(server.lastRequest().body))
	})
}
