package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/Allposts", nil)
	p := ParsePagination(r, 5)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, 0, p.Skip())
}

func TestParsePaginationExplicit(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/Allposts?page=3&limit=20", nil)
	p := ParsePagination(r, 5)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 20, p.Limit)
	assert.Equal(t, 40, p.Skip())
}

func TestParsePaginationGarbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/Allposts?page=zero&limit=-4", nil)
	p := ParsePagination(r, 10)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
}

func TestTotalPages(t *testing.T) {
	assert.EqualValues(t, 0, TotalPages(0, 5))
	assert.EqualValues(t, 1, TotalPages(5, 5))
	assert.EqualValues(t, 2, TotalPages(6, 5))
	assert.EqualValues(t, 2, TotalPages(7, 5))
	assert.EqualValues(t, 1, TotalPages(1, 10))
	assert.EqualValues(t, 0, TotalPages(3, 0))
}
