package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 6
	maxPageSize     = 100
)

var errInvalidPage = errors.New("invalid page")

// pageParams reads the page and page_size query parameters. A malformed
// page is an error; a malformed or non-positive page_size silently
// falls back to the default, and oversized values are clamped.
func pageParams(c *gin.Context) (page, pageSize int, err error) {
	page = 1
	if raw := c.Query("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, errInvalidPage
		}
	}

	pageSize = defaultPageSize
	if raw := c.Query("page_size"); raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 {
			pageSize = n
			if pageSize > maxPageSize {
				pageSize = maxPageSize
			}
		}
	}
	return page, pageSize, nil
}

// pageCount returns the number of pages for count items. An empty
// result set still has one (empty) first page.
func pageCount(count int64, pageSize int) int {
	pages := int((count + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// paginatedResponse wraps results in the count/next/previous envelope.
func paginatedResponse(c *gin.Context, count int64, page, pageSize int, results interface{}) gin.H {
	var next, previous interface{}
	if int64(page)*int64(pageSize) < count {
		next = pageLink(c, page+1)
	}
	if page > 1 {
		previous = pageLink(c, page-1)
	}
	return gin.H{
		"count":    count,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}

// pageLink rebuilds the request URL pointing at the given page. Links
// to the first page drop the page parameter entirely.
func pageLink(c *gin.Context, page int) string {
	u := *c.Request.URL
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return absoluteURL(c, u.String())
}

// absoluteURL prefixes a server-relative path with the request scheme
// and host.
func absoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + path
}
