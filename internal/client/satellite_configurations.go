package client

import (
	"context"
	"net/url"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// SatelliteConfigurationsClient implements freedom.SatelliteConfigurationsClient.
type SatelliteConfigurationsClient struct {
	*resourceClient[freedom.SatelliteConfiguration, freedom.SatelliteConfigurationPayload]
}

// NewSatelliteConfigurationsClient creates a new satellite configurations client.
func NewSatelliteConfigurationsClient(httpClient *http.Client, logger freedom.Logger) *SatelliteConfigurationsClient {
	return &SatelliteConfigurationsClient{
		resourceClient: newResourceClient[freedom.SatelliteConfiguration, freedom.SatelliteConfigurationPayload](
			httpClient, logger, freedom.KindSatelliteConfiguration, "satellite configuration"),
	}
}

// GetByName implements freedom.SatelliteConfigurationsClient.GetByName.
func (c *SatelliteConfigurationsClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.SatelliteConfiguration], error) {
	return c.findOne(ctx, "search/findOneByName", url.Values{"name": {name}})
}

// ListByAccountName implements freedom.SatelliteConfigurationsClient.ListByAccountName.
func (c *SatelliteConfigurationsClient) ListByAccountName(ctx context.Context, accountName string) freedom.Seq[freedom.SatelliteConfiguration] {
	return c.findAll(ctx, "findAllByAccountName", url.Values{"accountName": {accountName}})
}
