package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewPaginationMiddlePage(t *testing.T) {
	p := NewPagination(45, 2, 10, 10)

	assert.Equal(t, int64(45), p.TotalItems)
	assert.Equal(t, 5, p.TotalPages)
	assert.Equal(t, 2, p.CurrentPage)
	assert.True(t, p.IsPrevious)
	assert.True(t, p.IsNext)
	assert.Equal(t, 11, p.PageStartCount)
	assert.Equal(t, 20, p.PageEndCount)
}

func TestNewPaginationFirstPage(t *testing.T) {
	p := NewPagination(45, 1, 10, 10)

	assert.False(t, p.IsPrevious)
	assert.True(t, p.IsNext)
	assert.Equal(t, 1, p.PageStartCount)
	assert.Equal(t, 10, p.PageEndCount)
}

func TestNewPaginationLastPartialPage(t *testing.T) {
	p := NewPagination(45, 5, 10, 5)

	assert.Equal(t, 5, p.TotalPages)
	assert.True(t, p.IsPrevious)
	assert.False(t, p.IsNext)
	assert.Equal(t, 41, p.PageStartCount)
	assert.Equal(t, 45, p.PageEndCount)
}

func TestNewPaginationExactMultiple(t *testing.T) {
	p := NewPagination(40, 4, 10, 10)

	assert.Equal(t, 4, p.TotalPages)
	assert.False(t, p.IsNext)
	assert.Equal(t, 40, p.PageEndCount)
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(0, 1, 10, 0)

	assert.Equal(t, 0, p.TotalPages)
	assert.False(t, p.IsPrevious)
	assert.False(t, p.IsNext)
	assert.Equal(t, 0, p.PageEndCount)
}

func TestBuildPaginationFilterSearch(t *testing.T) {
	filter := BuildPaginationFilter(PaginationParams{
		Search:       "acme",
		SearchFields: []string{"name", "email"},
	})

	or, ok := filter["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 2)
}

func TestBuildPaginationFilterDateRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	filter := BuildPaginationFilter(PaginationParams{
		DateField: "created_at",
		StartDate: &start,
		EndDate:   &end,
	})

	dateRange, ok := filter["created_at"].(bson.M)
	assert.True(t, ok)
	assert.Equal(t, start, dateRange["$gte"])
	assert.Equal(t, end, dateRange["$lte"])
}

func TestBuildPaginationFilterDoesNotMutateBaseQuery(t *testing.T) {
	base := bson.M{"company_id": "x"}

	filter := BuildPaginationFilter(PaginationParams{
		Query:        base,
		Search:       "go",
		SearchFields: []string{"title"},
	})

	assert.Len(t, base, 1)
	assert.Contains(t, filter, "company_id")
	assert.Contains(t, filter, "$or")
}

func TestBuildPaginationFilterEmptySearchIgnored(t *testing.T) {
	filter := BuildPaginationFilter(PaginationParams{
		SearchFields: []string{"title"},
	})
	assert.NotContains(t, filter, "$or")
}
