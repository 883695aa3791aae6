package api

import (
	"net/url"
	"strconv"
	"strings"
)

// ListFilter is the view state behind a paginated list. Values are copied,
// never mutated in place: every With* setter returns a new filter, and every
// setter that changes a filter field resets the page to 1. Only WithPage
// moves through pages without touching the filters.
type ListFilter struct {
	page         int
	pageSize     int
	status       string
	subtype      string
	search       string
	featuredOnly bool
	sort         string
}

// NewListFilter returns page 1 with the given page size (0 means the server
// default).
func NewListFilter(pageSize int) ListFilter {
	return ListFilter{page: 1, pageSize: pageSize}
}

func (f ListFilter) Page() int { return f.page }

func (f ListFilter) PageSize() int { return f.pageSize }

func (f ListFilter) Status() string { return f.status }

func (f ListFilter) Subtype() string { return f.subtype }

func (f ListFilter) Search() string { return f.search }

func (f ListFilter) FeaturedOnly() bool { return f.featuredOnly }

func (f ListFilter) WithPage(page int) ListFilter {
	if page < 1 {
		page = 1
	}
	f.page = page
	return f
}

func (f ListFilter) WithStatus(status string) ListFilter {
	f.status = strings.TrimSpace(status)
	f.page = 1
	return f
}

func (f ListFilter) WithSubtype(subtype string) ListFilter {
	f.subtype = strings.TrimSpace(subtype)
	f.page = 1
	return f
}

func (f ListFilter) WithSearch(search string) ListFilter {
	f.search = search
	f.page = 1
	return f
}

func (f ListFilter) WithFeaturedOnly(on bool) ListFilter {
	f.featuredOnly = on
	f.page = 1
	return f
}

func (f ListFilter) WithSort(sort string) ListFilter {
	f.sort = strings.TrimSpace(sort)
	f.page = 1
	return f
}

// Params builds the request query. Empty and false fields are omitted
// entirely; search is trimmed and dropped when empty after trimming.
func (f ListFilter) Params() url.Values {
	v := url.Values{}
	page := f.page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if f.pageSize > 0 {
		v.Set("limit", strconv.Itoa(f.pageSize))
	}
	if f.status != "" {
		v.Set("status", f.status)
	}
	if f.subtype != "" {
		v.Set("type", f.subtype)
	}
	if s := strings.TrimSpace(f.search); s != "" {
		v.Set("search", s)
	}
	if f.featuredOnly {
		v.Set("featured", "true")
	}
	if f.sort != "" {
		v.Set("sort", f.sort)
	}
	return v
}

// CacheKeyPart is a canonical encoding of the filter, used as part of the
// list cache key so distinct views cache independently.
func (f ListFilter) CacheKeyPart() string {
	return f.Params().Encode()
}
