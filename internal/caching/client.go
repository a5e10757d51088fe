// Package caching decorates a freedom.API with an in-process cache of
// fetch-by-id results, optionally backed by a shared byte cache.
package caching

import (
	"context"

	"github.com/atlasground/freedom/pkg/freedom"
)

// Client implements freedom.CachingAPI on top of any freedom.API.
//
// Get on a resource client returns a shared container. Lists, searches,
// lookups by name or href, tokens, downloads, bundles and gateway licenses go
// straight to the inner API. Create, Update and Delete drop the affected entry.
type Client struct {
	inner freedom.API
	store *store

	accounts                *accountsClient
	bands                   *bandsClient
	satellites              *satellitesClient
	satelliteConfigurations *satelliteConfigurationsClient
	sites                   *sitesClient
	siteConfigurations      *siteConfigurationsClient
	taskRequests            *taskRequestsClient
	tasks                   *tasksClient
	users                   *usersClient
	overrides               *overridesClient
}

// New wraps inner. A nil config caches in process only with the default
// options.
func New(inner freedom.API, config *freedom.CacheConfig, logger freedom.Logger) (*Client, error) {
	if logger == nil {
		logger = freedom.NopLogger{}
	}

	l2, err := freedom.NewCacheFromConfig(config)
	if err != nil {
		return nil, err
	}

	return NewWithCache(inner, config.CacheOptionsOrDefault(), l2, logger), nil
}

// NewWithCache wraps inner with explicit options and second-level cache. l2
// may be nil.
func NewWithCache(inner freedom.API, options *freedom.CacheOptions, l2 freedom.Cache, logger freedom.Logger) *Client {
	if options == nil {
		options = freedom.DefaultCacheOptions()
	}

	if logger == nil {
		logger = freedom.NopLogger{}
	}

	s := newStore(options, l2, logger)

	return &Client{
		inner: inner,
		store: s,
		accounts: &accountsClient{
			resourceClient: newResourceClient[freedom.Account, freedom.AccountPayload](inner.Accounts(), s, freedom.KindAccount),
			inner:          inner.Accounts(),
		},
		bands: &bandsClient{
			resourceClient: newResourceClient[freedom.Band, freedom.BandPayload](inner.Bands(), s, freedom.KindBand),
			inner:          inner.Bands(),
		},
		satellites: &satellitesClient{
			resourceClient: newResourceClient[freedom.Satellite, freedom.SatellitePayload](
				inner.Satellites(), s, freedom.KindSatellite),
			inner: inner.Satellites(),
		},
		satelliteConfigurations: &satelliteConfigurationsClient{
			resourceClient: newResourceClient[freedom.SatelliteConfiguration, freedom.SatelliteConfigurationPayload](
				inner.SatelliteConfigurations(), s, freedom.KindSatelliteConfiguration),
			inner: inner.SatelliteConfigurations(),
		},
		sites: &sitesClient{
			resourceClient: newResourceClient[freedom.Site, freedom.SitePayload](inner.Sites(), s, freedom.KindSite),
			inner:          inner.Sites(),
		},
		siteConfigurations: &siteConfigurationsClient{
			resourceClient: newResourceClient[freedom.SiteConfiguration, freedom.SiteConfigurationPayload](
				inner.SiteConfigurations(), s, freedom.KindSiteConfiguration),
			inner: inner.SiteConfigurations(),
		},
		taskRequests: &taskRequestsClient{
			resourceClient: newResourceClient[freedom.TaskRequest, freedom.TaskRequestPayload](
				inner.TaskRequests(), s, freedom.KindTaskRequest),
			inner: inner.TaskRequests(),
		},
		tasks: &tasksClient{
			resourceClient: newResourceClient[freedom.Task, freedom.TaskPayload](inner.Tasks(), s, freedom.KindTask),
			inner:          inner.Tasks(),
		},
		users: &usersClient{
			resourceClient: newResourceClient[freedom.User, freedom.UserPayload](inner.Users(), s, freedom.KindUser),
		},
		overrides: &overridesClient{
			resourceClient: newResourceClient[freedom.Override, freedom.OverridePayload](
				inner.Overrides(), s, freedom.KindOverride),
		},
	}
}

// Inner returns the wrapped API.
func (c *Client) Inner() freedom.API {
	return c.inner
}

// BaseURL implements freedom.API.
func (c *Client) BaseURL() string {
	return c.inner.BaseURL()
}

// ResourceURL implements freedom.ResourceURLer.
func (c *Client) ResourceURL(kind freedom.Kind, id int) string {
	return c.inner.ResourceURL(kind, id)
}

// Accounts implements freedom.API.
func (c *Client) Accounts() freedom.AccountsClient {
	return c.accounts
}

// Bands implements freedom.API.
func (c *Client) Bands() freedom.BandsClient {
	return c.bands
}

// Satellites implements freedom.API.
func (c *Client) Satellites() freedom.SatellitesClient {
	return c.satellites
}

// SatelliteConfigurations implements freedom.API.
func (c *Client) SatelliteConfigurations() freedom.SatelliteConfigurationsClient {
	return c.satelliteConfigurations
}

// Sites implements freedom.API.
func (c *Client) Sites() freedom.SitesClient {
	return c.sites
}

// SiteConfigurations implements freedom.API.
func (c *Client) SiteConfigurations() freedom.SiteConfigurationsClient {
	return c.siteConfigurations
}

// TaskRequests implements freedom.API.
func (c *Client) TaskRequests() freedom.TaskRequestsClient {
	return c.taskRequests
}

// Tasks implements freedom.API.
func (c *Client) Tasks() freedom.TasksClient {
	return c.tasks
}

// Users implements freedom.API.
func (c *Client) Users() freedom.UsersClient {
	return c.users
}

// Overrides implements freedom.API.
func (c *Client) Overrides() freedom.OverridesClient {
	return c.overrides
}

// Tokens implements freedom.API. Tokens are never cached.
func (c *Client) Tokens() freedom.TokensClient {
	return c.inner.Tokens()
}

// GatewayLicenses implements freedom.API. Licenses are never cached.
func (c *Client) GatewayLicenses() freedom.GatewayLicensesClient {
	return c.inner.GatewayLicenses()
}

// Bundles implements freedom.API. Bundles are never cached.
func (c *Client) Bundles() freedom.BundlesClient {
	return c.inner.Bundles()
}

// Invalidate implements freedom.CachingAPI.
func (c *Client) Invalidate(kind freedom.Kind, id int) {
	c.store.invalidate(freedom.CacheKey{Kind: kind, ID: id})
}

// InvalidateAll implements freedom.CachingAPI.
func (c *Client) InvalidateAll() {
	c.store.invalidateAll()
}

// Refresh implements freedom.CachingAPI.
func (c *Client) Refresh(ctx context.Context, kind freedom.Kind, id int) error {
	return c.store.refresh(ctx, freedom.CacheKey{Kind: kind, ID: id})
}

// Stats implements freedom.CachingAPI.
func (c *Client) Stats() freedom.CacheStats {
	return c.store.stats()
}

// Close implements freedom.CachingAPI. It closes the second-level cache when
// that cache holds resources of its own. The inner API is left open.
func (c *Client) Close() error {
	return c.store.close()
}

var _ freedom.CachingAPI = (*Client)(nil)
