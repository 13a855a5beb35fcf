package storage

import (
	"context"

	"github.com/eaudeweb/lawkit/internal/domain"
)

// LawOrder is the explicit-sort listing order for the relational path.
type LawOrder int

const (
	OrderYearAsc LawOrder = iota
	OrderYearDesc
	OrderCountryAsc
	OrderCountryDesc
)

// LawStore is the relational read side for legislation records.
type LawStore interface {
	// FetchByIDs materializes laws in the order of ids. Identifiers with no
	// backing record are skipped: the index can be transiently ahead of the
	// store and a stale hit is dropped, not an error.
	FetchByIDs(ctx context.Context, ids []int64) ([]domain.Legislation, error)

	// List returns one page of laws in the requested order, and Count the
	// total, for the explicit-sort path that bypasses the index.
	List(ctx context.Context, order LawOrder, offset, limit int) ([]domain.Legislation, error)
	Count(ctx context.Context) (int64, error)

	// ArticlesMatching fetches a law's articles whose tag or classification
	// name sets intersect the given lists. Used to reconstruct the
	// highlighted-article list when the index returns no inner-hit payload.
	ArticlesMatching(ctx context.Context, lawID int64, tagNames, classificationNames []string) ([]domain.Article, error)

	// Articles returns all articles of a law, for index projection builds.
	Articles(ctx context.Context, lawID int64) ([]domain.Article, error)
}

// TaxonomyStore resolves facet identifiers to names. Unknown identifiers
// resolve to nothing; the resulting empty facet matches no document, which
// is documented behavior rather than an error.
type TaxonomyStore interface {
	ClassificationNames(ctx context.Context, ids []int64) ([]string, error)
	TagNames(ctx context.Context, ids []int64) ([]string, error)
}

// CountryStore reads the static country reference set.
type CountryStore interface {
	All(ctx context.Context) ([]domain.Country, error)
}
