package client

import (
	"context"
	"net/url"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// SatellitesClient implements freedom.SatellitesClient.
type SatellitesClient struct {
	*resourceClient[freedom.Satellite, freedom.SatellitePayload]
}

// NewSatellitesClient creates a new satellites client.
func NewSatellitesClient(httpClient *http.Client, logger freedom.Logger) *SatellitesClient {
	return &SatellitesClient{
		resourceClient: newResourceClient[freedom.Satellite, freedom.SatellitePayload](httpClient, logger, freedom.KindSatellite, "satellite"),
	}
}

// GetByName implements freedom.SatellitesClient.GetByName.
//
// Unlike the other collections the satellite lookup is not under search/.
func (c *SatellitesClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.Satellite], error) {
	return c.findOne(ctx, "findOneByName", url.Values{"name": {name}})
}
