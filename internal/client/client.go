// Package client is the direct Freedom API backend: every call is one or more
// HTTP requests, and every result is an owned container.
package client

import (
	"net/url"
	"strconv"

	"github.com/atlasground/freedom/internal/auth"
	"github.com/atlasground/freedom/internal/constants"
	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// Client implements the freedom.API interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     freedom.Logger

	// Resource clients
	accounts                *AccountsClient
	bands                   *BandsClient
	satellites              *SatellitesClient
	satelliteConfigurations *SatelliteConfigurationsClient
	sites                   *SitesClient
	siteConfigurations      *SiteConfigurationsClient
	taskRequests            *TaskRequestsClient
	tasks                   *TasksClient
	users                   *UsersClient
	overrides               *OverridesClient
	tokens                  *TokensClient
	gatewayLicenses         *GatewayLicensesClient
	bundles                 *BundlesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *freedom.Config, logger freedom.Logger) []http.Option {
	httpOpts := []http.Option{
		http.WithLogger(logger),
		http.WithDebug(config.Debug),
		http.WithUserAgent(config.UserAgent),
		http.WithHeaders(config.Headers),
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a direct Freedom API client.
func New(config *freedom.Config) (*Client, error) {
	if config == nil {
		return nil, freedom.ErrConfigRequired
	}

	err := config.Validate()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = freedom.NopLogger{}
	}

	authenticator := auth.NewBasicAuthenticator(config.Key, config.Secret)
	httpClient := http.NewClient(config.Entrypoint(), authenticator, createHTTPClientOptions(config, logger)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		logger:     logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithHTTPClient creates a client over an existing transport. It is used
// by tests and by callers that need their own authenticator.
func NewWithHTTPClient(httpClient *http.Client, logger freedom.Logger) *Client {
	if logger == nil {
		logger = freedom.NopLogger{}
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		logger:     logger,
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	basePath := "/"
	if parsed, err := url.Parse(c.baseURL); err == nil && parsed.Path != "" {
		basePath = parsed.Path
	}

	c.accounts = NewAccountsClient(c.httpClient, c.logger)
	c.bands = NewBandsClient(c.httpClient, c.logger)
	c.satellites = NewSatellitesClient(c.httpClient, c.logger)
	c.satelliteConfigurations = NewSatelliteConfigurationsClient(c.httpClient, c.logger)
	c.sites = NewSitesClient(c.httpClient, c.logger)
	c.siteConfigurations = NewSiteConfigurationsClient(c.httpClient, c.logger)
	c.taskRequests = NewTaskRequestsClient(c.httpClient, c.logger)
	c.tasks = NewTasksClient(c.httpClient, c.logger)
	c.users = NewUsersClient(c.httpClient, c.logger)
	c.overrides = NewOverridesClient(c.httpClient, c.logger)
	c.tokens = NewTokensClient(c.httpClient, basePath)
	c.gatewayLicenses = NewGatewayLicensesClient(c.httpClient)
	c.bundles = NewBundlesClient(c.httpClient)
}

// BaseURL implements freedom.API.BaseURL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResourceURL implements freedom.ResourceURLer.
func (c *Client) ResourceURL(kind freedom.Kind, id int) string {
	return c.baseURL + string(kind) + "/" + strconv.Itoa(id)
}

// Resource client accessors

// Accounts implements freedom.API.Accounts.
func (c *Client) Accounts() freedom.AccountsClient {
	return c.accounts
}

// Bands implements freedom.API.Bands.
func (c *Client) Bands() freedom.BandsClient {
	return c.bands
}

// Satellites implements freedom.API.Satellites.
func (c *Client) Satellites() freedom.SatellitesClient {
	return c.satellites
}

// SatelliteConfigurations implements freedom.API.SatelliteConfigurations.
func (c *Client) SatelliteConfigurations() freedom.SatelliteConfigurationsClient {
	return c.satelliteConfigurations
}

// Sites implements freedom.API.Sites.
func (c *Client) Sites() freedom.SitesClient {
	return c.sites
}

// SiteConfigurations implements freedom.API.SiteConfigurations.
func (c *Client) SiteConfigurations() freedom.SiteConfigurationsClient {
	return c.siteConfigurations
}

// TaskRequests implements freedom.API.TaskRequests.
func (c *Client) TaskRequests() freedom.TaskRequestsClient {
	return c.taskRequests
}

// Tasks implements freedom.API.Tasks.
func (c *Client) Tasks() freedom.TasksClient {
	return c.tasks
}

// Users implements freedom.API.Users.
func (c *Client) Users() freedom.UsersClient {
	return c.users
}

// Overrides implements freedom.API.Overrides.
func (c *Client) Overrides() freedom.OverridesClient {
	return c.overrides
}

// Tokens implements freedom.API.Tokens.
func (c *Client) Tokens() freedom.TokensClient {
	return c.tokens
}

// GatewayLicenses implements freedom.API.GatewayLicenses.
func (c *Client) GatewayLicenses() freedom.GatewayLicensesClient {
	return c.gatewayLicenses
}

// Bundles implements freedom.API.Bundles.
func (c *Client) Bundles() freedom.BundlesClient {
	return c.bundles
}

var _ freedom.API = (*Client)(nil)
