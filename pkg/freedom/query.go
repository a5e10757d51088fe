package freedom

import (
	"net/url"
	"strconv"
	"time"

	"github.com/atlasground/freedom/internal/constants"
)

// QueryParams represents the paging and filter options of a list call.
type QueryParams struct {
	Page    int
	Size    int
	Sort    []string
	Filters map[string]string
}

// NewQueryParams creates new query parameters.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string]string),
	}
}

// WithPage sets the zero-based page number.
func (q *QueryParams) WithPage(page int) *QueryParams {
	q.Page = page

	return q
}

// WithSize sets the page size.
func (q *QueryParams) WithSize(size int) *QueryParams {
	q.Size = size

	return q
}

// WithSort adds a sort clause such as "name,asc".
func (q *QueryParams) WithSort(sort string) *QueryParams {
	q.Sort = append(q.Sort, sort)

	return q
}

// WithFilter sets a raw query parameter.
func (q *QueryParams) WithFilter(key, value string) *QueryParams {
	if q.Filters == nil {
		q.Filters = make(map[string]string)
	}

	q.Filters[key] = value

	return q
}

// ToValues converts the parameters to url.Values.
func (q *QueryParams) ToValues() url.Values {
	values := url.Values{}
	if q == nil {
		return values
	}

	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}

	if q.Size > 0 {
		values.Set("size", strconv.Itoa(q.Size))
	}

	for _, sort := range q.Sort {
		values.Add("sort", sort)
	}

	for key, value := range q.Filters {
		values.Set(key, value)
	}

	return values
}

// FormatTime renders t the way the search endpoints expect it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(constants.QueryTimeFormat)
}
