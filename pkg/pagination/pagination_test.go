package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Validate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 0, p.Offset())

	p = &PaginationParams{Page: 3, PerPage: 20}
	p.Validate()
	assert.Equal(t, 40, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 10, 25)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(1, 10, 0)
	assert.Equal(t, 0, pg.TotalPages)
	assert.False(t, pg.HasNext)
}

func TestNewPaginatedResult_NilItems(t *testing.T) {
	res := NewPaginatedResult[int](nil, NewPagination(1, 15, 0))
	assert.NotNil(t, res.Items)
}

func TestNewSort(t *testing.T) {
	fallback := Sort{Column: "created_at"}
	allowed := []string{"issue_date", "total_amount"}

	assert.Equal(t, "total_amount ASC", NewSort("TOTAL_AMOUNT", "asc", allowed, fallback).Clause())
	assert.Equal(t, "created_at DESC", NewSort("name; DROP TABLE quotations", "", allowed, fallback).Clause())
	assert.Equal(t, "created_at ASC", NewSort("", "ASC", allowed, fallback).Clause())
}
