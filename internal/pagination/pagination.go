package pagination

import (
	"errors"
	"math"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	// WindowSpan is the number of page buttons the pager shows at once
	WindowSpan = 5
)

var (
	ErrNegativePage    = errors.New("page must be zero or greater")
	ErrInvalidPageSize = errors.New("page size must be greater than zero")
	ErrPageOutOfRange  = errors.New("page is beyond the last addressable row")
)

// PageRequest is a zero-based page index and a page size
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// First returns page 0 at the given size
func First(size int) PageRequest {
	return PageRequest{Page: 0, Size: size}
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return ErrNegativePage
	}
	if p.Size <= 0 {
		return ErrInvalidPageSize
	}
	if p.Page > math.MaxInt32/p.Size {
		return ErrPageOutOfRange
	}
	return nil
}

// Offset is the number of rows skipped before this page. Only meaningful for a
// request that passed Validate.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// WithPage moves to another page and keeps the size
func (p PageRequest) WithPage(page int) PageRequest {
	p.Page = page
	return p
}

// ReducePageSize applies a page-size change. Any size change lands on page 0;
// re-applying the current size is a no-op.
func ReducePageSize(p PageRequest, size int) PageRequest {
	if size == p.Size {
		return p
	}
	return PageRequest{Page: 0, Size: size}
}

// TotalPages returns ceil(totalCount/size). An empty result has zero pages.
func TotalPages(totalCount int64, size int) int {
	if totalCount <= 0 || size <= 0 {
		return 0
	}
	s := int64(size)
	return int((totalCount + s - 1) / s)
}

// Window returns the page indexes a pager of span buttons shows around current,
// keeping current centred where the bounds allow.
func Window(current, totalPages, span int) []int {
	if totalPages <= 0 || span <= 0 {
		return nil
	}
	if span > totalPages {
		span = totalPages
	}

	start := current - span/2
	if start > totalPages-span {
		start = totalPages - span
	}
	if start < 0 {
		start = 0
	}

	pages := make([]int, span)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

// Clamp caps a requested size to MaxPageSize and substitutes the default for non-positive sizes
func Clamp(size int) int {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}
