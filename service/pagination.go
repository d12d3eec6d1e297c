package service

import (
	"math"

	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// maxOffset bounds page*size so the offset never overflows.
	maxOffset = math.MaxInt32
)

// PageRequest is a zero-based page index and a page size.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest clamps size to 1..MaxPageSize, defaulting it when unset, and page to
// 0..maxOffset/size.
func NewPageRequest(page, size int) PageRequest {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page > maxOffset/size {
		page = maxOffset / size
	}
	return PageRequest{Page: page, Size: size}
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Paginate applies the page window to a query.
func (p PageRequest) Paginate(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.Size)
}

// Page is one window of a list plus the size of the whole filtered set.
type Page[T any] struct {
	Content []T
	Total   int64
	Request PageRequest
}

func mapPage[S any, T any](rows []S, total int64, req PageRequest, fn func(S) T) Page[T] {
	content := make([]T, 0, len(rows))
	for _, r := range rows {
		content = append(content, fn(r))
	}
	return Page[T]{Content: content, Total: total, Request: req}
}
