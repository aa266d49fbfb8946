package utils

import (
	"net/http"
	"strconv"
)

// Pagination carries the page window parsed from a request. Every paginated
// route uses the same contract: page starts at 1, skip = (page-1)*limit.
type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page/limit query parameters, falling back to page 1
// and the route's default limit on absent or garbage values.
func ParsePagination(r *http.Request, defaultLimit int) Pagination {
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	limit := defaultLimit
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}
	return Pagination{Page: page, Limit: limit}
}

// Skip returns the number of documents to skip for this window.
func (p Pagination) Skip() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes ceil(total/limit).
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
