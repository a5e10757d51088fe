package freedom

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies a resource collection. Its value is the collection's API path segment.
type Kind string

const (
	KindAccount                Kind = "accounts"
	KindBand                   Kind = "satellite_bands"
	KindSatellite              Kind = "satellites"
	KindSatelliteConfiguration Kind = "satellite_configurations"
	KindSite                   Kind = "sites"
	KindSiteConfiguration      Kind = "configurations"
	KindTaskRequest            Kind = "requests"
	KindTask                   Kind = "tasks"
	KindUser                   Kind = "users"
	KindOverride               Kind = "overrides"
)

var kindNames = map[string]Kind{
	"account":                 KindAccount,
	"band":                    KindBand,
	"satellite":               KindSatellite,
	"satellite_configuration": KindSatelliteConfiguration,
	"site":                    KindSite,
	"site_configuration":      KindSiteConfiguration,
	"task_request":            KindTaskRequest,
	"task":                    KindTask,
	"user":                    KindUser,
	"override":                KindOverride,
}

// Kinds returns every resource kind the API exposes.
func Kinds() []Kind {
	return []Kind{
		KindAccount, KindBand, KindSatellite, KindSatelliteConfiguration, KindSite,
		KindSiteConfiguration, KindTaskRequest, KindTask, KindUser, KindOverride,
	}
}

// ParseKind accepts either a path segment ("satellite_bands") or a singular
// name ("band", "task-request").
func ParseKind(s string) (Kind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")

	for _, kind := range Kinds() {
		if string(kind) == normalized {
			return kind, nil
		}
	}

	if kind, ok := kindNames[normalized]; ok {
		return kind, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// CacheKey identifies one resource.
type CacheKey struct {
	Kind Kind
	ID   int
}

func (k CacheKey) String() string {
	return string(k.Kind) + ":" + strconv.Itoa(k.ID)
}

// Links represents HAL resource links.
type Links map[string]Link

// Link represents a single link.
type Link struct {
	Href      string `json:"href"                yaml:"href"`
	Templated bool   `json:"templated,omitempty" yaml:"templated,omitempty"`
}

// Resource represents the base structure for all Freedom API resources.
type Resource struct {
	Links Links `json:"_links,omitempty" yaml:"links,omitempty"`
}

// ID returns the id carried by the self link.
func (r *Resource) ID() (int, error) {
	self, ok := r.Links["self"]
	if !ok {
		return 0, fmt.Errorf("%w: self", ErrMissingLink)
	}

	return lastSegmentID(self.Href)
}

// LinkID returns the id of the kind resource that rel points at. The href
// must be canonical, e.g. ".../api/sites/3".
func (r *Resource) LinkID(rel string, kind Kind) (int, error) {
	link, ok := r.Links[rel]
	if !ok || link.Href == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingLink, rel)
	}

	return ParseResourceHref(link.Href, kind)
}

// Href returns the href of rel.
func (r *Resource) Href(rel string) (string, error) {
	link, ok := r.Links[rel]
	if !ok || link.Href == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingLink, rel)
	}

	return link.Href, nil
}

// ParseResourceHref extracts the id from an href of the form ".../<kind>/<id>".
func ParseResourceHref(href string, kind Kind) (int, error) {
	segments := hrefSegments(href)

	for i := len(segments) - 2; i >= 0; i-- {
		if segments[i] != string(kind) {
			continue
		}

		if i != len(segments)-2 {
			break
		}

		id, err := strconv.Atoi(segments[i+1])
		if err != nil {
			break
		}

		return id, nil
	}

	return 0, fmt.Errorf("%w: %q is not a %s href", ErrInvalidID, href, kind)
}

func lastSegmentID(href string) (int, error) {
	segments := hrefSegments(href)
	if len(segments) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, href)
	}

	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, href)
	}

	return id, nil
}

func hrefSegments(href string) []string {
	path := href

	parsed, err := url.Parse(href)
	if err == nil {
		path = parsed.Path
	}

	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}

	return strings.Split(path, "/")
}

// PageInfo is the Spring Data REST page block.
type PageInfo struct {
	Size          int `json:"size"          yaml:"size"`
	TotalElements int `json:"totalElements" yaml:"total_elements"`
	TotalPages    int `json:"totalPages"    yaml:"total_pages"`
	Number        int `json:"number"        yaml:"number"`
}

// ListResponse is one HAL page. Items stay raw so each can be decoded on its own.
type ListResponse struct {
	Embedded map[string][]json.RawMessage `json:"_embedded"`
	Links    Links                        `json:"_links"`
	Page     *PageInfo                    `json:"page,omitempty"`
}

// Items returns the embedded collection. Pages carry a single one; if there
// are several, the first by name wins.
func (l *ListResponse) Items() []json.RawMessage {
	if len(l.Embedded) == 0 {
		return nil
	}

	return l.Embedded[slices.Sorted(maps.Keys(l.Embedded))[0]]
}

// Next returns the next page href, or "".
func (l *ListResponse) Next() string {
	if next, ok := l.Links["next"]; ok {
		return next.Href
	}

	return ""
}
