package client

import (
	"context"
	"net/url"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// SitesClient implements freedom.SitesClient.
type SitesClient struct {
	*resourceClient[freedom.Site, freedom.SitePayload]
}

// NewSitesClient creates a new sites client.
func NewSitesClient(httpClient *http.Client, logger freedom.Logger) *SitesClient {
	return &SitesClient{
		resourceClient: newResourceClient[freedom.Site, freedom.SitePayload](httpClient, logger, freedom.KindSite, "site"),
	}
}

// GetByName implements freedom.SitesClient.GetByName.
func (c *SitesClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.Site], error) {
	return c.findOne(ctx, "search/findOneByName", url.Values{"name": {name}})
}
