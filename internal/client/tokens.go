package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// TokensClient implements freedom.TokensClient.
type TokensClient struct {
	httpClient *http.Client
	// basePath is the path of the entry point, e.g. "/api/".
	basePath string
}

// NewTokensClient creates a new FPS tokens client.
func NewTokensClient(httpClient *http.Client, basePath string) *TokensClient {
	return &TokensClient{
		httpClient: httpClient,
		basePath:   basePath,
	}
}

// NewBySatellite implements freedom.TokensClient.NewBySatellite.
func (c *TokensClient) NewBySatellite(ctx context.Context, bandID, satelliteID int) (string, error) {
	return c.newToken(ctx, map[string]string{
		"band":      c.path(freedom.KindBand, bandID),
		"satellite": c.path(freedom.KindSatellite, satelliteID),
	})
}

// NewBySiteConfiguration implements freedom.TokensClient.NewBySiteConfiguration.
func (c *TokensClient) NewBySiteConfiguration(ctx context.Context, bandID, siteConfigurationID int) (string, error) {
	return c.newToken(ctx, map[string]string{
		"band":          c.path(freedom.KindBand, bandID),
		"configuration": c.path(freedom.KindSiteConfiguration, siteConfigurationID),
	})
}

func (c *TokensClient) path(kind freedom.Kind, id int) string {
	return c.basePath + string(kind) + "/" + strconv.Itoa(id)
}

func (c *TokensClient) newToken(ctx context.Context, payload map[string]string) (string, error) {
	resp, err := c.httpClient.Post(ctx, "fps", payload)
	if err != nil {
		return "", fmt.Errorf("requesting FPS token: %w", err)
	}

	var body struct {
		Token *string `json:"token"`
	}

	err = json.Unmarshal(resp.Body, &body)
	if err != nil {
		return "", freedom.NewDecodeError("token response", err)
	}

	if body.Token == nil {
		return "", freedom.NewDecodeError("token response", freedom.ErrMissingToken)
	}

	return *body.Token, nil
}
