package storage

import (
	"context"

	"github.com/eaudeweb/lawkit/internal/domain/query"
)

// Highlight field names returned by the index, as the hydrator consumes
// them. Nested fields use the articles. prefix.
const (
	HighlightTitle                  = "title"
	HighlightAbstract               = "abstract"
	HighlightPDFText                = "pdf_text"
	HighlightClassifications        = "classifications"
	HighlightTags                   = "tags"
	HighlightArticleClassifications = "article_classifications"
	HighlightArticleTags            = "article_tags"

	HighlightArticleText      = "articles.text"
	HighlightArticleClassText = "articles.classifications_text"
	HighlightArticleTagText   = "articles.tags_text"
)

// ArticleHit is one nested article inner hit with its highlight fragments.
// Text and the taxonomy strings come from the stored sub-document, so a
// field the highlighter skipped can still be rendered.
type ArticleHit struct {
	ID                  int64
	Code                string
	Text                string
	ClassificationsText string
	TagsText            string
	Highlights          map[string][]string
}

// LawHit is one ranked document hit. Highlights maps field name to the raw
// fragments the index returned; Articles holds the nested inner hits in
// ranking order.
type LawHit struct {
	ID         int64
	Highlights map[string][]string
	Articles   []ArticleHit
}

// SearchPage is one page of ranked hits plus the index-reported total.
type SearchPage struct {
	Hits  []LawHit
	Total int64
}

// LawSearcher executes a composed query against the document index.
type LawSearcher interface {
	// Search returns one page of ranked hits with highlight payloads.
	Search(ctx context.Context, q *query.LawQuery, offset, limit int) (*SearchPage, error)
	// Count returns the total match count without fetching hits.
	Count(ctx context.Context, q *query.LawQuery) (int64, error)
}
