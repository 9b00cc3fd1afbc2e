// Package responses contains the HAL representations returned by the messaging-api.
package responses

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"jan-server/services/messaging-api/internal/domain/query"
)

// Link is a HAL link object.
type Link struct {
	Href string `json:"href"`
}

// LinkBuilder produces absolute hrefs for one request.
type LinkBuilder struct {
	base string
}

// LinkSettings controls how the base URL of hrefs is resolved.
type LinkSettings struct {
	PublicBaseURL         string
	TrustForwardedHeaders bool
}

// NewLinkBuilder uses the configured public base URL when set, otherwise the
// request's scheme and host. X-Forwarded-Proto and X-Forwarded-Host are only
// honoured when TrustForwardedHeaders is set.
func NewLinkBuilder(c *gin.Context, settings LinkSettings) LinkBuilder {
	if settings.PublicBaseURL != "" {
		return LinkBuilder{base: strings.TrimRight(settings.PublicBaseURL, "/")}
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	host := c.Request.Host
	if settings.TrustForwardedHeaders {
		switch proto := strings.ToLower(firstHeaderValue(c.GetHeader("X-Forwarded-Proto"))); proto {
		case "http", "https":
			scheme = proto
		}
		if forwarded := firstHeaderValue(c.GetHeader("X-Forwarded-Host")); forwarded != "" && !strings.ContainsAny(forwarded, "/?#@ ") {
			host = forwarded
		}
	}
	return LinkBuilder{base: scheme + "://" + host}
}

// NewStaticLinkBuilder builds hrefs under a fixed base URL.
func NewStaticLinkBuilder(base string) LinkBuilder {
	return LinkBuilder{base: strings.TrimRight(base, "/")}
}

func firstHeaderValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}

// Link formats path (fmt style) under the base URL.
func (b LinkBuilder) Link(format string, args ...any) Link {
	return Link{Href: b.base + fmt.Sprintf(format, args...)}
}

// PageLinks navigates a paged collection.
type PageLinks struct {
	Self  Link  `json:"self"`
	First Link  `json:"first"`
	Prev  *Link `json:"prev,omitempty"`
	Next  *Link `json:"next,omitempty"`
	Last  Link  `json:"last"`
}

// PageMetadata mirrors the page object of a HAL paged collection.
type PageMetadata struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

// PagedModel is a HAL collection page. The embedded list is always present, even when empty.
type PagedModel[T any] struct {
	Embedded map[string][]T `json:"_embedded"`
	Links    PageLinks      `json:"_links"`
	Page     PageMetadata   `json:"page"`
}

// NewPagedModel converts a domain page, naming the embedded list rel.
func NewPagedModel[D any, T any](b LinkBuilder, path, rel string, page query.Page[D], convert func(D) T) PagedModel[T] {
	items := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, convert(item))
	}

	size := page.Pagination.Size
	pageLink := func(number int) Link {
		q := url.Values{}
		q.Set("page", fmt.Sprint(number))
		q.Set("size", fmt.Sprint(size))
		return b.Link("%s?%s", path, q.Encode())
	}

	lastPage := page.LastPage()
	links := PageLinks{
		Self:  pageLink(page.Pagination.Page),
		First: pageLink(0),
		Last:  pageLink(lastPage),
	}
	if page.HasPrevious() {
		prev := pageLink(page.Pagination.Page - 1)
		links.Prev = &prev
	}
	if page.HasNext() {
		next := pageLink(page.Pagination.Page + 1)
		links.Next = &next
	}

	return PagedModel[T]{
		Embedded: map[string][]T{rel: items},
		Links:    links,
		Page: PageMetadata{
			Size:          size,
			TotalElements: page.Total,
			TotalPages:    page.TotalPages(),
			Number:        page.Pagination.Page,
		},
	}
}
