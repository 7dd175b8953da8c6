package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 2, Size: 20}.Offset())

	last := PageRequest{Page: MaxPage, Size: MaxPageSize}.Offset()
	assert.Positive(t, last)
	assert.LessOrEqual(t, last, math.MaxInt32)
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, PageRequest{Page: 1, Size: 20}, 41)
	assert.NotNil(t, p.Content)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 1, p.Page)
}
