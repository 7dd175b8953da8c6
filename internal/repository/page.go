package repository

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps Offset within 32 bits for every accepted page size.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// PageRequest selects a zero-based page and the sort key to order it by.
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// Offset returns the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Content       []T
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewPage assembles a page and computes the page count.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// Map converts the content of a page while keeping its position.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, item := range p.Content {
		out[i] = fn(item)
	}
	return Page[U]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}
