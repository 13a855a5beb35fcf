package pagination

import (
	"context"
	"fmt"
	"strconv"
)

// Source supplies one ordered window of items plus the total count.
// Both search-engine and relational listings satisfy it.
type Source[T any] interface {
	Slice(ctx context.Context, offset, limit int) ([]T, error)
	Count(ctx context.Context) (int64, error)
}

// Page is one resolved page of results.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Number     int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
	TotalCount int64 `json:"total"`
}

func (p *Page[T]) HasNext() bool     { return p.Number < p.TotalPages }
func (p *Page[T]) HasPrevious() bool { return p.Number > 1 }

// Paginator resolves raw page selectors against a Source. Selection is
// forgiving: anything that is not a positive integer falls back to the
// first page, and numbers past the end clamp to the last page.
type Paginator[T any] struct {
	source Source[T]
	size   int
}

func NewPaginator[T any](source Source[T], size int) *Paginator[T] {
	if size <= 0 {
		size = PageDefaultSize
	}
	if size > PageMaxSize {
		size = PageMaxSize
	}
	return &Paginator[T]{source: source, size: size}
}

// Page fetches the page named by raw. An empty set yields a single empty
// page numbered 1.
func (p *Paginator[T]) Page(ctx context.Context, raw string) (*Page[T], error) {
	total, err := p.source.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	totalPages := int((total + int64(p.size) - 1) / int64(p.size))
	if totalPages < 1 {
		totalPages = 1
	}

	number := resolveNumber(raw, totalPages)

	items, err := p.source.Slice(ctx, (number-1)*p.size, p.size)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %d: %w", number, err)
	}

	return &Page[T]{
		Items:      items,
		Number:     number,
		Size:       p.size,
		TotalPages: totalPages,
		TotalCount: total,
	}, nil
}

func resolveNumber(raw string, totalPages int) int {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 1
	}
	if number > totalPages {
		return totalPages
	}
	return number
}
