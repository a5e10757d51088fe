package client

import (
	"context"
	"net/url"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// SiteConfigurationsClient implements freedom.SiteConfigurationsClient.
type SiteConfigurationsClient struct {
	*resourceClient[freedom.SiteConfiguration, freedom.SiteConfigurationPayload]
}

// NewSiteConfigurationsClient creates a new site configurations client.
func NewSiteConfigurationsClient(httpClient *http.Client, logger freedom.Logger) *SiteConfigurationsClient {
	return &SiteConfigurationsClient{
		resourceClient: newResourceClient[freedom.SiteConfiguration, freedom.SiteConfigurationPayload](
			httpClient, logger, freedom.KindSiteConfiguration, "site configuration"),
	}
}

// GetByName implements freedom.SiteConfigurationsClient.GetByName.
func (c *SiteConfigurationsClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.SiteConfiguration], error) {
	return c.findOne(ctx, "search/findOneByName", url.Values{"name": {name}})
}
