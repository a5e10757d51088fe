package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

const bundlesPath = "fpstaskbundle/search/findByOverlapping"

// BundlesClient implements freedom.BundlesClient.
type BundlesClient struct {
	httpClient *http.Client
}

// NewBundlesClient creates a new FPS task bundles client.
func NewBundlesClient(httpClient *http.Client) *BundlesClient {
	return &BundlesClient{
		httpClient: httpClient,
	}
}

// ListOverlapping implements freedom.BundlesClient.ListOverlapping.
func (c *BundlesClient) ListOverlapping(ctx context.Context, start, end time.Time) ([]freedom.TaskBundle, error) {
	resp, err := c.httpClient.Get(ctx, bundlesPath, windowQuery(start, end))
	if err != nil {
		return nil, fmt.Errorf("listing task bundles: %w", err)
	}

	return decodeList[freedom.TaskBundle]("task bundles", resp.Body)
}

// decodeList decodes either a bare JSON array or the items of a HAL page.
func decodeList[T any](noun string, data []byte) ([]T, error) {
	var values []T

	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		err := json.Unmarshal(data, &values)
		if err != nil {
			return nil, freedom.NewDecodeError(noun, err)
		}

		return values, nil
	}

	var page freedom.ListResponse

	err := json.Unmarshal(data, &page)
	if err != nil {
		return nil, freedom.NewDecodeError(noun, err)
	}

	for _, raw := range page.Items() {
		var value T

		err = json.Unmarshal(raw, &value)
		if err != nil {
			return nil, freedom.NewDecodeError(noun, err)
		}

		values = append(values, value)
	}

	return values, nil
}
