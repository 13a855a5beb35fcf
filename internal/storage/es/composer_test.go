package es

import (
	"encoding/json"
	"testing"

	"github.com/eaudeweb/lawkit/internal/config"
	"github.com/eaudeweb/lawkit/internal/domain/query"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer() *Composer {
	return NewComposer(config.DefaultExplorer())
}

func intPtr(i int) *int { return &i }

func TestCompose_NoPredicatesNoFilters(t *testing.T) {
	q := &query.LawQuery{}
	composed, highlight, sorts := newTestComposer().Compose(q)

	assert.Nil(t, composed, "match-all request composes no query")
	require.NotNil(t, highlight)

	// stable id order guarantees deterministic pagination
	require.Len(t, sorts, 1)
	opts, ok := sorts[0].(*types.SortOptions)
	require.True(t, ok)
	_, ok = opts.SortOptions["id"]
	assert.True(t, ok)
}

func TestCompose_RelevanceSortHasIdTiebreak(t *testing.T) {
	q := &query.LawQuery{Text: "climate resilience"}
	_, _, sorts := newTestComposer().Compose(q)

	require.Len(t, sorts, 2)
	first, ok := sorts[0].(*types.SortOptions)
	require.True(t, ok)
	_, ok = first.SortOptions["_score"]
	assert.True(t, ok)
}

func TestCompose_FacetsOnly(t *testing.T) {
	q := &query.LawQuery{
		TagNames:     []string{"Adaptation"},
		TagsSelected: true,
	}
	composed, highlight, _ := newTestComposer().Compose(q)

	require.NotNil(t, composed)
	require.NotNil(t, composed.Bool)
	require.Len(t, composed.Bool.Should, 2, "document branch OR nested branch")

	docBranch := composed.Bool.Should[0]
	require.NotNil(t, docBranch.Bool)
	// one phrase per name per field: tags + article_tags
	assert.Len(t, docBranch.Bool.Should, 2)

	nestedBranch := composed.Bool.Should[1]
	require.NotNil(t, nestedBranch.Nested)
	assert.Equal(t, "articles", nestedBranch.Nested.Path)
	require.NotNil(t, nestedBranch.Nested.InnerHits)
	require.NotNil(t, nestedBranch.Nested.InnerHits.Highlight)
	_, ok := nestedBranch.Nested.InnerHits.Highlight.Fields["articles.tags_text"]
	assert.True(t, ok, "nested branch requests tag highlights")

	// document-level exact-match fields come back whole, not windowed
	hf, ok := highlight.Fields["article_tags"]
	require.True(t, ok)
	require.NotNil(t, hf.NumberOfFragments)
	assert.Equal(t, 0, *hf.NumberOfFragments)

	// no free text, so no snippet fields requested
	_, ok = highlight.Fields["abstract"]
	assert.False(t, ok)
}

func TestCompose_UnknownFacetMatchesNothing(t *testing.T) {
	q := &query.LawQuery{
		ClassificationsSelected: true, // ids resolved to no names
	}
	composed, _, _ := newTestComposer().Compose(q)

	require.NotNil(t, composed)
	require.NotNil(t, composed.Bool)
	docBranch := composed.Bool.Should[0]
	assert.NotNil(t, docBranch.MatchNone)
}

func TestCompose_TextWithFacetsBuildsDualDisjunct(t *testing.T) {
	q := &query.LawQuery{
		Text:         "flood",
		TagNames:     []string{"Adaptation"},
		TagsSelected: true,
	}
	composed, highlight, _ := newTestComposer().Compose(q)

	require.NotNil(t, composed)
	require.NotNil(t, composed.Bool)
	require.Len(t, composed.Bool.Should, 2, "text-in-law OR text-in-article")

	inLaw := composed.Bool.Should[0]
	require.NotNil(t, inLaw.Bool)
	var foundMultiMatch, foundNested bool
	for _, part := range inLaw.Bool.Must {
		if part.MultiMatch != nil {
			foundMultiMatch = true
			assert.Contains(t, part.MultiMatch.Fields, "pdf_text")
		}
		if part.Nested != nil {
			foundNested = true
			// this branch carries only the facet predicates
			_, ok := part.Nested.InnerHits.Highlight.Fields["articles.text"]
			assert.False(t, ok)
		}
	}
	assert.True(t, foundMultiMatch)
	assert.True(t, foundNested)

	inArticle := composed.Bool.Should[1]
	require.NotNil(t, inArticle.Bool)
	foundNested = false
	for _, part := range inArticle.Bool.Must {
		if part.Nested != nil {
			foundNested = true
			_, ok := part.Nested.InnerHits.Highlight.Fields["articles.text"]
			assert.True(t, ok, "text branch highlights article text")
		}
	}
	assert.True(t, foundNested)

	// free text requests snippet windows on the long fields
	_, ok := highlight.Fields["abstract"]
	assert.True(t, ok)
	_, ok = highlight.Fields["pdf_text"]
	assert.True(t, ok)
}

func TestCompose_Filters(t *testing.T) {
	t.Run("country and law type become terms filters", func(t *testing.T) {
		q := &query.LawQuery{
			Text:        "energy",
			CountryISOs: []string{"ROU", "FJI"},
			LawTypes:    []string{"Law"},
		}
		composed, _, _ := newTestComposer().Compose(q)

		require.NotNil(t, composed)
		require.NotNil(t, composed.Bool)
		require.Len(t, composed.Bool.Must, 3, "main query plus two terms filters")

		var countryTerms, typeTerms bool
		for _, part := range composed.Bool.Must {
			if part.Terms == nil {
				continue
			}
			if vals, ok := part.Terms.TermsQuery["country"]; ok {
				countryTerms = true
				assert.Len(t, vals, 2)
			}
			if _, ok := part.Terms.TermsQuery["law_type"]; ok {
				typeTerms = true
			}
		}
		assert.True(t, countryTerms)
		assert.True(t, typeTerms)
	})

	t.Run("year filter spans the three year fields", func(t *testing.T) {
		q := &query.LawQuery{
			Text:     "energy",
			FromYear: intPtr(2010),
			ToYear:   intPtr(2015),
		}
		composed, _, _ := newTestComposer().Compose(q)

		require.NotNil(t, composed)
		require.Len(t, composed.Bool.Must, 2)

		yearPart := composed.Bool.Must[1]
		require.NotNil(t, yearPart.Bool)
		require.Len(t, yearPart.Bool.Should, 3)
		fields := map[string]bool{}
		for _, r := range yearPart.Bool.Should {
			for field := range r.Range {
				fields[field] = true
			}
		}
		assert.True(t, fields["year"])
		assert.True(t, fields["year_amendment"])
		assert.True(t, fields["year_mentions"])
	})

	t.Run("year bounds clamp to the configured window", func(t *testing.T) {
		q := &query.LawQuery{
			Text:     "energy",
			FromYear: intPtr(1800),
			ToYear:   intPtr(3000),
		}
		composed, _, _ := newTestComposer().Compose(q)

		require.NotNil(t, composed)
		yearPart := composed.Bool.Must[1]
		require.NotNil(t, yearPart.Bool)
		for _, r := range yearPart.Bool.Should {
			for _, rq := range r.Range {
				nr, ok := rq.(types.NumberRangeQuery)
				require.True(t, ok)
				assert.Equal(t, types.Float64(config.DefaultExplorer().MinYear), *nr.Gte)
				assert.Equal(t, types.Float64(config.DefaultExplorer().MaxYear), *nr.Lte)
			}
		}
	})

	t.Run("filters alone compose without a main query", func(t *testing.T) {
		q := &query.LawQuery{LawTypes: []string{"Constitution"}}
		composed, _, _ := newTestComposer().Compose(q)

		require.NotNil(t, composed)
		assert.NotNil(t, composed.Terms, "single filter is used directly")
	})
}

func TestCompose_FullQuerySerializes(t *testing.T) {
	// the composed tree must survive wire serialization with every clause
	// type it can carry
	from, to := 2010, 2015
	q := &query.LawQuery{
		Text:         "flood",
		TagNames:     []string{"Adaptation"},
		TagsSelected: true,
		CountryISOs:  []string{"FJI"},
		LawTypes:     []string{"Law"},
		FromYear:     &from,
		ToYear:       &to,
	}
	composed, highlight, _ := newTestComposer().Compose(q)
	require.NotNil(t, composed)

	payload, err := json.Marshal(composed)
	require.NoError(t, err)
	body := string(payload)
	for _, clause := range []string{
		"multi_match", "constant_score", "match_phrase", "nested",
		"inner_hits", "terms", "year_amendment", "year_mentions",
	} {
		assert.Contains(t, body, clause)
	}

	_, err = json.Marshal(highlight)
	require.NoError(t, err)
}

func TestCompose_FiltersVsTermsOrdering(t *testing.T) {
	// two filters, no predicates: bool must of both, still id-sorted
	q := &query.LawQuery{
		CountryISOs: []string{"ROU"},
		LawTypes:    []string{"Law"},
	}
	composed, _, sorts := newTestComposer().Compose(q)

	require.NotNil(t, composed)
	require.NotNil(t, composed.Bool)
	assert.Len(t, composed.Bool.Must, 2)

	require.Len(t, sorts, 1)
}
