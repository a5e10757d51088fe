package client

import (
	"context"
	"net/url"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// AccountsClient implements freedom.AccountsClient.
type AccountsClient struct {
	*resourceClient[freedom.Account, freedom.AccountPayload]
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(httpClient *http.Client, logger freedom.Logger) *AccountsClient {
	return &AccountsClient{
		resourceClient: newResourceClient[freedom.Account, freedom.AccountPayload](httpClient, logger, freedom.KindAccount, "account"),
	}
}

// GetByName implements freedom.AccountsClient.GetByName.
func (c *AccountsClient) GetByName(ctx context.Context, name string) (freedom.Container[freedom.Account], error) {
	return c.findOne(ctx, "search/findOneByName", url.Values{"name": {name}})
}
