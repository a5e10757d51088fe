package client

import (
	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// OverridesClient implements freedom.OverridesClient.
type OverridesClient struct {
	*resourceClient[freedom.Override, freedom.OverridePayload]
}

// NewOverridesClient creates a new overrides client.
func NewOverridesClient(httpClient *http.Client, logger freedom.Logger) *OverridesClient {
	return &OverridesClient{
		resourceClient: newResourceClient[freedom.Override, freedom.OverridePayload](httpClient, logger, freedom.KindOverride, "override"),
	}
}
