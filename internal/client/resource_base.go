package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/atlasground/freedom/internal/http"
	"github.com/atlasground/freedom/pkg/freedom"
)

// resourceClient provides the operations every Freedom collection shares.
// Kind-specific clients embed it and add their search endpoints.
type resourceClient[T, R any] struct {
	httpClient *http.Client
	logger     freedom.Logger
	kind       freedom.Kind
	noun       string
}

func newResourceClient[T, R any](httpClient *http.Client, logger freedom.Logger, kind freedom.Kind, noun string) *resourceClient[T, R] {
	return &resourceClient[T, R]{
		httpClient: httpClient,
		logger:     logger,
		kind:       kind,
		noun:       noun,
	}
}

func (c *resourceClient[T, R]) itemPath(id int) string {
	return string(c.kind) + "/" + strconv.Itoa(id)
}

// Get retrieves one resource by id.
func (c *resourceClient[T, R]) Get(ctx context.Context, id int) (freedom.Container[T], error) {
	return c.fetch(ctx, c.itemPath(id), nil)
}

// List pages through the collection.
func (c *resourceClient[T, R]) List(ctx context.Context, params *freedom.QueryParams) freedom.Seq[T] {
	return c.pages(ctx, string(c.kind), params.ToValues())
}

// ListLinked pages through the collection behind a relation href.
func (c *resourceClient[T, R]) ListLinked(ctx context.Context, href string) freedom.Seq[T] {
	return c.pages(ctx, href, nil)
}

// GetHref retrieves the resource behind href, which may be an association
// link such as ".../requests/42/site" rather than a canonical item href.
func (c *resourceClient[T, R]) GetHref(ctx context.Context, href string) (freedom.Container[T], error) {
	resp, err := c.httpClient.Get(ctx, href, nil)
	if err != nil {
		return freedom.Container[T]{}, fmt.Errorf("getting %s: %w", c.noun, err)
	}

	value, err := decodeRecord[T](c.noun, unwrapContent(resp.Body))
	if err != nil {
		return freedom.Container[T]{}, err
	}

	return freedom.Owned(value), nil
}

// Create posts payload to the collection.
func (c *resourceClient[T, R]) Create(ctx context.Context, payload *R) (freedom.Container[T], error) {
	if payload == nil {
		return freedom.Container[T]{}, fmt.Errorf("%w: %s: payload is required", freedom.ErrInvalidPayload, c.noun)
	}

	return c.create(ctx, string(c.kind), payload)
}

// Update patches the resource with the non-empty fields of payload.
func (c *resourceClient[T, R]) Update(ctx context.Context, id int, payload *R) (freedom.Container[T], error) {
	if payload == nil {
		return freedom.Container[T]{}, fmt.Errorf("%w: %s: payload is required", freedom.ErrInvalidPayload, c.noun)
	}

	resp, err := c.httpClient.Patch(ctx, c.itemPath(id), payload)
	if err != nil {
		return freedom.Container[T]{}, fmt.Errorf("updating %s %d: %w", c.noun, id, err)
	}

	return c.decodeOne(resp)
}

// Delete removes the resource.
func (c *resourceClient[T, R]) Delete(ctx context.Context, id int) error {
	_, err := c.httpClient.Delete(ctx, c.itemPath(id))
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", c.noun, id, err)
	}

	return nil
}

// findOne fetches a single resource from a search endpoint.
func (c *resourceClient[T, R]) findOne(ctx context.Context, search string, query url.Values) (freedom.Container[T], error) {
	return c.fetch(ctx, string(c.kind)+"/"+search, query)
}

// findAll pages through a search endpoint.
func (c *resourceClient[T, R]) findAll(ctx context.Context, search string, query url.Values) freedom.Seq[T] {
	return c.pages(ctx, string(c.kind)+"/search/"+search, query)
}

func (c *resourceClient[T, R]) create(ctx context.Context, path string, payload any) (freedom.Container[T], error) {
	resp, err := c.httpClient.Post(ctx, path, payload)
	if err != nil {
		return freedom.Container[T]{}, fmt.Errorf("creating %s: %w", c.noun, err)
	}

	// Spring Data REST may answer 201 with only a Location header.
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		location := resp.Headers.Get("Location")
		if location != "" {
			return c.fetch(ctx, location, nil)
		}
	}

	return c.decodeOne(resp)
}

func (c *resourceClient[T, R]) fetch(ctx context.Context, path string, query url.Values) (freedom.Container[T], error) {
	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return freedom.Container[T]{}, fmt.Errorf("getting %s: %w", c.noun, err)
	}

	return c.decodeOne(resp)
}

func (c *resourceClient[T, R]) decodeOne(resp *http.Response) (freedom.Container[T], error) {
	value, err := decodeRecord[T](c.noun, resp.Body)
	if err != nil {
		return freedom.Container[T]{}, err
	}

	return freedom.Owned(value), nil
}

// pages follows the HAL next links starting at path. Records that fail to
// decode are logged and skipped; a failed page ends the sequence with an error.
func (c *resourceClient[T, R]) pages(ctx context.Context, path string, query url.Values) freedom.Seq[T] {
	return func(yield func(freedom.Container[T], error) bool) {
		next := path

		for next != "" {
			resp, err := c.httpClient.Get(ctx, next, query)
			if err != nil {
				yield(freedom.Container[T]{}, fmt.Errorf("listing %s: %w", c.kind, err))

				return
			}

			var page freedom.ListResponse

			err = json.Unmarshal(resp.Body, &page)
			if err != nil {
				yield(freedom.Container[T]{}, freedom.NewDecodeError(string(c.kind)+" page", err))

				return
			}

			for _, raw := range page.Items() {
				value, err := decodeRecord[T](c.noun, raw)
				if err != nil {
					c.logger.Warn("Skipping undecodable record", map[string]interface{}{
						"kind":  string(c.kind),
						"error": err.Error(),
					})

					continue
				}

				if !yield(freedom.Owned(value), nil) {
					return
				}
			}

			// The next href carries its own query.
			next = page.Next()
			query = nil
		}
	}
}

// unwrapContent returns the object inside a {"content": {...}, "_links": {...}}
// wrapper, moving the outer links into it. Other documents are returned as is.
func unwrapContent(data []byte) []byte {
	var wrapper struct {
		Content json.RawMessage `json:"content"`
		Links   json.RawMessage `json:"_links"`
	}

	err := json.Unmarshal(data, &wrapper)
	if err != nil || !bytes.HasPrefix(bytes.TrimSpace(wrapper.Content), []byte("{")) {
		return data
	}

	var inner map[string]json.RawMessage

	err = json.Unmarshal(wrapper.Content, &inner)
	if err != nil {
		return data
	}

	if _, ok := inner["_links"]; !ok && len(wrapper.Links) > 0 {
		inner["_links"] = wrapper.Links
	}

	unwrapped, err := json.Marshal(inner)
	if err != nil {
		return data
	}

	return unwrapped
}

func decodeRecord[T any](noun string, data []byte) (T, error) {
	var value T

	err := json.Unmarshal(data, &value)
	if err != nil {
		return value, freedom.NewDecodeError(noun, err)
	}

	if validatable, ok := any(&value).(freedom.Validatable); ok {
		err = validatable.Validate()
		if err != nil {
			return value, freedom.NewDecodeError(noun, err)
		}
	}

	return value, nil
}
