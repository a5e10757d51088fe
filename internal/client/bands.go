package client

import (
	"context"
	"net/url"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// BandsClient implements freedom.BandsClient.
type BandsClient struct {
	*resourceClient[freedom.Band, freedom.BandPayload]
}

// NewBandsClient creates a new satellite bands client.
func NewBandsClient(httpClient *http.Client, logger freedom.Logger) *BandsClient {
	return &BandsClient{
		resourceClient: newResourceClient[freedom.Band, freedom.BandPayload](httpClient, logger, freedom.KindBand, "band"),
	}
}

// GetByName implements freedom.BandsClient.GetByName.
func (c *BandsClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.Band], error) {
	return c.findOne(ctx, "search/findOneByName", url.Values{"name": {name}})
}

// ListByAccountName implements freedom.BandsClient.ListByAccountName.
func (c *BandsClient) ListByAccountName(ctx context.Context, accountName string) freedom.Seq[freedom.Band] {
	return c.findAll(ctx, "findAllByAccountName", url.Values{"accountName": {accountName}})
}
