// Package query holds the resolved search request the query composer
// consumes. Taxonomy facet identifiers are already resolved to names here;
// an identifier unknown to the store resolves to nothing, so a selected
// facet with zero names still counts as selected and matches no document.
package query

// LawQuery is the fully resolved filter set for one search request.
type LawQuery struct {
	// Text is the free-text query. Empty means facet/filter-only search.
	Text string

	// ClassificationNames and TagNames are the resolved facet name sets.
	// The Selected flags distinguish "facet not used" from "facet used but
	// resolved to no known names".
	ClassificationNames     []string
	TagNames                []string
	ClassificationsSelected bool
	TagsSelected            bool

	// CountryISOs restricts results to these country codes when non-empty.
	CountryISOs []string

	LawTypes []string

	// FromYear/ToYear bound the adoption/amendment/mention years. Both are
	// set together or not at all; a single bound is discarded upstream.
	FromYear *int
	ToYear   *int
}

// HasFacets reports whether any taxonomy facet was selected.
func (q *LawQuery) HasFacets() bool {
	return q.ClassificationsSelected || q.TagsSelected
}

// HasPredicates reports whether anything will contribute to relevance
// scoring. Without predicates results must be sorted by a stable key so
// pagination is deterministic.
func (q *LawQuery) HasPredicates() bool {
	return q.Text != "" || q.HasFacets()
}

// Sort is an explicit result ordering that bypasses relevance scoring.
type Sort int

const (
	SortNone Sort = iota
	SortYearAsc
	SortYearDesc
	SortCountryAsc
	SortCountryDesc
)

// ParseSort maps the promulgation_sort/country_sort request parameters to a
// Sort. "1" means ascending, any other non-empty value descending.
// promulgation_sort wins when both are present.
func ParseSort(promulgationSort, countrySort string) Sort {
	if promulgationSort != "" {
		if promulgationSort == "1" {
			return SortYearAsc
		}
		return SortYearDesc
	}
	if countrySort != "" {
		if countrySort == "1" {
			return SortCountryAsc
		}
		return SortCountryDesc
	}
	return SortNone
}
