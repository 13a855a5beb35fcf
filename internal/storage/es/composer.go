package es

import (
	"github.com/eaudeweb/lawkit/internal/config"
	"github.com/eaudeweb/lawkit/internal/domain/query"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/childscoremode"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

// articlePhraseBoost is the constant_score boost for an exact phrase match
// of the free text inside an article, so a verbatim hit outranks loose
// token matches.
const articlePhraseBoost = float32(50)

var lawTextFields = []string{"title", "abstract", "pdf_text", "classifications", "tags"}

// Composer translates a resolved LawQuery into one Elasticsearch query with
// its highlight request and sort order.
//
// When free text and facets combine, two top-level disjuncts are built:
// text matches the document while articles satisfy the facets, OR facets
// match the document while an article satisfies facets and text. The nested
// query model cannot score a parent-level and a child-level text match in
// one expression, so both directions are spelled out and unioned. This dual
// construction is a contract; do not collapse it.
type Composer struct {
	cfg config.Explorer
}

func NewComposer(cfg config.Explorer) *Composer {
	return &Composer{cfg: cfg}
}

// Compose builds the query, the highlight request and the sort order for
// one request. A nil query means match-all. The highlight request covers
// every field the query matched against, with zero-fragment mode on the
// exact-match facet fields so the whole joined value comes back.
func (c *Composer) Compose(q *query.LawQuery) (*types.Query, *types.Highlight, []types.SortCombinations) {
	var lawQueries, articleQueries []types.Query
	articleHighlights := map[string]types.HighlightField{}

	if q.ClassificationsSelected {
		lawQueries = append(lawQueries, phrasePair(
			q.ClassificationNames, "classifications", "article_classifications"))
		articleQueries = append(articleQueries, phrasePair(
			q.ClassificationNames, "articles.classifications_text", "articles.parent_classifications"))
		articleHighlights["articles.classifications_text"] = wholeField()
	}

	if q.TagsSelected {
		lawQueries = append(lawQueries, phrasePair(
			q.TagNames, "tags", "article_tags"))
		articleQueries = append(articleQueries, phrasePair(
			q.TagNames, "articles.tags_text", "articles.parent_tags"))
		articleHighlights["articles.tags_text"] = wholeField()
	}

	highlightFields := map[string]types.HighlightField{
		"title":                   wholeField(),
		"classifications":         wholeField(),
		"article_classifications": wholeField(),
		"tags":                    wholeField(),
		"article_tags":            wholeField(),
	}

	var main *types.Query
	if q.Text != "" {
		textLaw := types.Query{MultiMatch: &types.MultiMatchQuery{
			Query:  q.Text,
			Fields: lawTextFields,
		}}
		boost := articlePhraseBoost
		textArticle := types.Query{Bool: &types.BoolQuery{
			Should: []types.Query{
				{MultiMatch: &types.MultiMatchQuery{
					Query:  q.Text,
					Fields: []string{"articles.text"},
				}},
				{ConstantScore: &types.ConstantScoreQuery{
					Boost: &boost,
					Filter: types.Query{MatchPhrase: map[string]types.MatchPhraseQuery{
						"articles.text": {Query: q.Text},
					}},
				}},
			},
			MinimumShouldMatch: 1,
		}}

		// Text hit in the document itself; articles only carry the facets.
		inLaw := append([]types.Query{}, lawQueries...)
		inLaw = append(inLaw, textLaw)
		if len(articleQueries) > 0 {
			inLaw = append(inLaw, nested(mustAll(articleQueries), articleHighlights))
		}

		// Text hit inside an article, alongside the article facets.
		merged := map[string]types.HighlightField{"articles.text": {}}
		for field, hf := range articleHighlights {
			merged[field] = hf
		}
		inArticle := append([]types.Query{}, lawQueries...)
		inArticle = append(inArticle, nested(
			mustAll(append(append([]types.Query{}, articleQueries...), textArticle)), merged))

		main = &types.Query{Bool: &types.BoolQuery{
			Should:             []types.Query{mustAll(inLaw), mustAll(inArticle)},
			MinimumShouldMatch: 1,
		}}

		highlightFields["abstract"] = types.HighlightField{}
		highlightFields["pdf_text"] = types.HighlightField{}
	} else if len(lawQueries) > 0 {
		// Document-level OR nested match; the nested branch is also what
		// produces the article inner-hit highlights.
		main = &types.Query{Bool: &types.BoolQuery{
			Should: []types.Query{
				mustAll(lawQueries),
				nested(mustAll(articleQueries), articleHighlights),
			},
			MinimumShouldMatch: 1,
		}}
	}

	var filters []types.Query
	if len(q.CountryISOs) > 0 {
		filters = append(filters, terms("country", q.CountryISOs))
	}
	if len(q.LawTypes) > 0 {
		filters = append(filters, terms("law_type", q.LawTypes))
	}
	if q.FromYear != nil && q.ToYear != nil {
		filters = append(filters, c.yearRange(*q.FromYear, *q.ToYear))
	}

	var parts []types.Query
	if main != nil {
		parts = append(parts, *main)
	}
	parts = append(parts, filters...)

	var composed *types.Query
	switch len(parts) {
	case 0:
	case 1:
		composed = &parts[0]
	default:
		composed = &types.Query{Bool: &types.BoolQuery{Must: parts}}
	}

	return composed, &types.Highlight{Fields: highlightFields}, c.sortOrder(q)
}

// sortOrder guarantees deterministic pagination: relevance with an id
// tiebreak when anything scores, plain id order otherwise.
func (c *Composer) sortOrder(q *query.LawQuery) []types.SortCombinations {
	asc := sortorder.Asc
	if !q.HasPredicates() {
		return []types.SortCombinations{
			&types.SortOptions{SortOptions: map[string]types.FieldSort{
				"id": {Order: &asc},
			}},
		}
	}
	desc := sortorder.Desc
	return []types.SortCombinations{
		&types.SortOptions{SortOptions: map[string]types.FieldSort{
			"_score": {Order: &desc},
		}},
		&types.SortOptions{SortOptions: map[string]types.FieldSort{
			"id": {Order: &asc},
		}},
	}
}

// phrasePair builds the facet predicate for one facet type: any of the
// names as an exact phrase in either field. An empty name set (unknown
// identifiers) matches nothing by contract.
func phrasePair(names []string, fieldA, fieldB string) types.Query {
	if len(names) == 0 {
		return types.Query{MatchNone: &types.MatchNoneQuery{}}
	}
	should := make([]types.Query, 0, len(names)*2)
	for _, field := range []string{fieldA, fieldB} {
		for _, name := range names {
			should = append(should, types.Query{
				MatchPhrase: map[string]types.MatchPhraseQuery{field: {Query: name}},
			})
		}
	}
	return types.Query{Bool: &types.BoolQuery{
		Should:             should,
		MinimumShouldMatch: 1,
	}}
}

// nested wraps a query into the articles path, scored by the best matching
// article, requesting inner-hit highlights for the given fields.
func nested(inner types.Query, highlights map[string]types.HighlightField) types.Query {
	scoreMode := childscoremode.Max
	return types.Query{Nested: &types.NestedQuery{
		Path:      "articles",
		ScoreMode: &scoreMode,
		Query:     inner,
		InnerHits: &types.InnerHits{
			Highlight: &types.Highlight{Fields: highlights},
		},
	}}
}

func mustAll(qs []types.Query) types.Query {
	if len(qs) == 1 {
		return qs[0]
	}
	return types.Query{Bool: &types.BoolQuery{Must: qs}}
}

func terms(field string, values []string) types.Query {
	vals := make([]types.FieldValue, 0, len(values))
	for _, v := range values {
		vals = append(vals, v)
	}
	return types.Query{Terms: &types.TermsQuery{
		TermsQuery: map[string]types.TermsQueryField{field: vals},
	}}
}

// yearRange matches when any of the three year fields falls inside the
// inclusive [from, to] bound, clamped to the configured year window.
func (c *Composer) yearRange(from, to int) types.Query {
	if from < c.cfg.MinYear {
		from = c.cfg.MinYear
	}
	if to > c.cfg.MaxYear {
		to = c.cfg.MaxYear
	}
	gte := types.Float64(from)
	lte := types.Float64(to)
	rangeOn := func(field string) types.Query {
		return types.Query{Range: map[string]types.RangeQuery{
			field: types.NumberRangeQuery{Gte: &gte, Lte: &lte},
		}}
	}
	return types.Query{Bool: &types.BoolQuery{
		Should: []types.Query{
			rangeOn("year"),
			rangeOn("year_amendment"),
			rangeOn("year_mentions"),
		},
		MinimumShouldMatch: 1,
	}}
}

// wholeField requests the entire matched value instead of a snippet window.
func wholeField() types.HighlightField {
	zero := 0
	return types.HighlightField{NumberOfFragments: &zero}
}
