package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// UsersClient implements freedom.UsersClient.
type UsersClient struct {
	*resourceClient[freedom.User, freedom.UserPayload]
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client, logger freedom.Logger) *UsersClient {
	return &UsersClient{
		resourceClient: newResourceClient[freedom.User, freedom.UserPayload](httpClient, logger, freedom.KindUser, "user"),
	}
}

// Create implements freedom.UsersClient.Create. Users are created under the
// account named by payload.AccountID.
func (c *UsersClient) Create(ctx context.Context, payload *freedom.UserPayload) (freedom.Container[freedom.User], error) {
	if payload == nil || payload.AccountID == 0 {
		return freedom.Container[freedom.User]{}, fmt.Errorf("%w: user: account id is required", freedom.ErrInvalidPayload)
	}

	return c.create(ctx, string(freedom.KindAccount)+"/"+strconv.Itoa(payload.AccountID)+"/newuser", payload)
}
