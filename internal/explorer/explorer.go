// Package explorer orchestrates the legislation search pipeline: it resolves
// the raw request into a composed query, runs it against the document index
// or the relational store, and pages the hydrated results.
package explorer

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/eaudeweb/lawkit/internal/apperr"
	"github.com/eaudeweb/lawkit/internal/config"
	"github.com/eaudeweb/lawkit/internal/domain/query"
	"github.com/eaudeweb/lawkit/internal/filter"
	"github.com/eaudeweb/lawkit/internal/storage"
	"github.com/eaudeweb/lawkit/pkg/pagination"
)

// Request is one parsed search request. Taxonomy facets arrive as raw
// identifiers; CountryMeta carries the country-metadata filter parameters.
type Request struct {
	Text              string
	ClassificationIDs []int64
	TagIDs            []int64
	Countries         []string
	CountryMeta       url.Values
	LawTypes          []string
	FromYear          *int
	ToYear            *int
	Page              string
	PromulgationSort  string
	CountrySort       string
}

type Explorer struct {
	cfg       config.Explorer
	laws      storage.LawStore
	taxonomy  storage.TaxonomyStore
	countries storage.CountryStore
	searcher  storage.LawSearcher
	hydrator  *Hydrator
}

func NewExplorer(
	cfg config.Explorer,
	laws storage.LawStore,
	taxonomy storage.TaxonomyStore,
	countries storage.CountryStore,
	searcher storage.LawSearcher,
) *Explorer {
	return &Explorer{
		cfg:       cfg,
		laws:      laws,
		taxonomy:  taxonomy,
		countries: countries,
		searcher:  searcher,
		hydrator:  NewHydrator(laws, cfg.FacetJoinToken),
	}
}

// Explore resolves and executes one search request. An explicit sort routes
// the whole request to the relational store and ignores every other
// parameter; anything else goes through the index.
func (e *Explorer) Explore(ctx context.Context, req *Request) (*pagination.Page[LawResult], error) {
	if sort := query.ParseSort(req.PromulgationSort, req.CountrySort); sort != query.SortNone {
		slog.Info("Explicit sort requested, serving from store", "sort", sort)
		src := &storeSource{store: e.laws, order: orderFor(sort)}
		return pagination.NewPaginator[LawResult](src, e.cfg.PageSize).Page(ctx, req.Page)
	}

	q, err := e.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	src := &searchSource{searcher: e.searcher, hydrator: e.hydrator, q: q}
	return pagination.NewPaginator[LawResult](src, e.cfg.PageSize).Page(ctx, req.Page)
}

// resolve turns raw request parameters into the fully resolved LawQuery the
// composer consumes.
func (e *Explorer) resolve(ctx context.Context, req *Request) (*query.LawQuery, error) {
	q := &query.LawQuery{
		Text:     strings.TrimSpace(req.Text),
		LawTypes: req.LawTypes,
	}

	if len(req.ClassificationIDs) > 0 {
		names, err := e.taxonomy.ClassificationNames(ctx, req.ClassificationIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve classifications: %w", err)
		}
		q.ClassificationNames = names
		q.ClassificationsSelected = true
	}
	if len(req.TagIDs) > 0 {
		names, err := e.taxonomy.TagNames(ctx, req.TagIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tags: %w", err)
		}
		q.TagNames = names
		q.TagsSelected = true
	}

	countries, err := e.countryFilter(ctx, req.Countries, req.CountryMeta)
	if err != nil {
		return nil, err
	}
	q.CountryISOs = countries

	from, to, err := e.yearBounds(req.FromYear, req.ToYear)
	if err != nil {
		return nil, err
	}
	q.FromYear, q.ToYear = from, to

	return q, nil
}

// countryFilter resolves the effective country restriction: the explicit
// selection, widened by every country passing the metadata predicates. A
// predicate set that excludes nothing contributes nothing, so an explicit
// selection alone stays narrow.
func (e *Explorer) countryFilter(ctx context.Context, explicit []string, meta url.Values) ([]string, error) {
	preds, err := filter.Build(meta)
	if err != nil {
		return nil, err
	}
	if len(preds) == 0 {
		return explicit, nil
	}

	all, err := e.countries.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load countries: %w", err)
	}

	matching := filter.Apply(all, preds)
	if len(matching) == len(all) {
		return explicit, nil
	}

	isos := make([]string, 0, len(explicit)+len(matching))
	isos = append(isos, explicit...)
	for _, c := range matching {
		if !contains(isos, c.ISO) {
			isos = append(isos, c.ISO)
		}
	}
	return isos, nil
}

// yearBounds validates the requested year range. A single bound is
// discarded; an inverted range is a client error. Clamping to the configured
// year window happens where the range query is built.
func (e *Explorer) yearBounds(from, to *int) (*int, *int, error) {
	if from == nil || to == nil {
		return nil, nil, nil
	}
	if *from > *to {
		return nil, nil, apperr.NewValidation(
			fmt.Sprintf("from_year %d exceeds to_year %d", *from, *to))
	}

	lo, hi := *from, *to
	return &lo, &hi, nil
}

func orderFor(s query.Sort) storage.LawOrder {
	switch s {
	case query.SortYearAsc:
		return storage.OrderYearAsc
	case query.SortYearDesc:
		return storage.OrderYearDesc
	case query.SortCountryAsc:
		return storage.OrderCountryAsc
	default:
		return storage.OrderCountryDesc
	}
}

// storeSource pages the relational listing for the explicit-sort path.
type storeSource struct {
	store storage.LawStore
	order storage.LawOrder
}

func (s *storeSource) Slice(ctx context.Context, offset, limit int) ([]LawResult, error) {
	laws, err := s.store.List(ctx, s.order, offset, limit)
	if err != nil {
		return nil, err
	}
	results := make([]LawResult, 0, len(laws))
	for _, law := range laws {
		results = append(results, plainResult(law))
	}
	return results, nil
}

func (s *storeSource) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// searchSource pages ranked index hits and hydrates each window.
type searchSource struct {
	searcher storage.LawSearcher
	hydrator *Hydrator
	q        *query.LawQuery
}

func (s *searchSource) Slice(ctx context.Context, offset, limit int) ([]LawResult, error) {
	page, err := s.searcher.Search(ctx, s.q, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.hydrator.Hydrate(ctx, page.Hits)
}

func (s *searchSource) Count(ctx context.Context) (int64, error) {
	return s.searcher.Count(ctx, s.q)
}
