package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsParams(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PerPage)

	p = &PaginationParams{Page: 2, PerPage: 500}
	p.Validate()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 100, p.PerPage)
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 15}
	assert.Equal(t, 30, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 25)
	assert.Equal(t, 2, pag.CurrentPage)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := NewPagination(3, 10, 25)
	assert.False(t, last.HasNext)
}

func TestSliceWindows(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	first := Slice(items, &PaginationParams{Page: 1, PerPage: 10})
	assert.Len(t, first, 10)
	assert.Equal(t, 0, first[0])

	last := Slice(items, &PaginationParams{Page: 3, PerPage: 10})
	assert.Len(t, last, 5)
	assert.Equal(t, 20, last[0])

	beyond := Slice(items, &PaginationParams{Page: 4, PerPage: 10})
	assert.Empty(t, beyond)
}

func TestSliceEmptyInput(t *testing.T) {
	assert.Empty(t, Slice([]string{}, &PaginationParams{Page: 1, PerPage: 10}))
}
