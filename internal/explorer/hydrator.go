package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/eaudeweb/lawkit/internal/storage"
)

const (
	// fragmentJoin separates highlighter snippet windows in rendered text.
	fragmentJoin = " […] "

	emOpen  = "<em>"
	emClose = "</em>"
)

// Hydrator zips ranked index hits with their relational records and folds
// the highlight payloads into renderable results.
type Hydrator struct {
	laws      storage.LawStore
	joinToken string
}

func NewHydrator(laws storage.LawStore, joinToken string) *Hydrator {
	return &Hydrator{laws: laws, joinToken: joinToken}
}

// Hydrate materializes one page of hits in ranking order. A hit whose
// backing record is gone is dropped.
func (h *Hydrator) Hydrate(ctx context.Context, hits []storage.LawHit) ([]LawResult, error) {
	ids := make([]int64, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ID)
	}

	laws, err := h.laws.FetchByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize hits: %w", err)
	}

	byID := make(map[int64]int, len(laws))
	for i, law := range laws {
		byID[law.ID] = i
	}

	results := make([]LawResult, 0, len(hits))
	for _, hit := range hits {
		i, ok := byID[hit.ID]
		if !ok {
			continue
		}

		r := plainResult(laws[i])
		h.applyHighlights(&r, hit)

		if err := h.attachArticles(ctx, &r, hit); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, nil
}

func (h *Hydrator) applyHighlights(r *LawResult, hit storage.LawHit) {
	if frags := hit.Highlights[storage.HighlightTitle]; len(frags) > 0 {
		r.Title = frags[0]
	}
	if frags := hit.Highlights[storage.HighlightAbstract]; len(frags) > 0 {
		r.Abstract = strings.Join(frags, fragmentJoin)
	}
	if frags := hit.Highlights[storage.HighlightPDFText]; len(frags) > 0 {
		// stored pdf text keeps its extraction markup; never render it
		joined := strings.Join(frags, fragmentJoin)
		joined = strings.ReplaceAll(joined, "<pre>", "")
		joined = strings.ReplaceAll(joined, "</pre>", "")
		r.PDFText = joined
	}
	if frags := hit.Highlights[storage.HighlightClassifications]; len(frags) > 0 {
		r.Classifications = h.splitNames(frags[0])
	}
	if frags := hit.Highlights[storage.HighlightTags]; len(frags) > 0 {
		r.Tags = h.splitNames(frags[0])
	}
}

// attachArticles fills r.Articles from the nested inner hits, or, when the
// index matched articles but returned no inner-hit payload, reconstructs
// the list from the relational store.
func (h *Hydrator) attachArticles(ctx context.Context, r *LawResult, hit storage.LawHit) error {
	if len(hit.Articles) > 0 {
		for _, a := range hit.Articles {
			r.Articles = append(r.Articles, h.renderArticle(a))
		}
		return nil
	}

	matchedTags := h.matchedNames(hit.Highlights[storage.HighlightArticleTags])
	matchedClassifications := h.matchedNames(hit.Highlights[storage.HighlightArticleClassifications])
	if len(matchedTags) == 0 && len(matchedClassifications) == 0 {
		return nil
	}

	articles, err := h.laws.ArticlesMatching(ctx, hit.ID, matchedTags, matchedClassifications)
	if err != nil {
		return fmt.Errorf("failed to reconstruct matched articles: %w", err)
	}

	for _, a := range articles {
		r.Articles = append(r.Articles, HighlightedArticle{
			ID:              a.ID,
			Code:            a.Code,
			Text:            a.Text,
			Classifications: markMatched(a.Classifications, matchedClassifications),
			Tags:            markMatched(a.Tags, matchedTags),
		})
	}
	return nil
}

func (h *Hydrator) renderArticle(a storage.ArticleHit) HighlightedArticle {
	out := HighlightedArticle{
		ID:              a.ID,
		Code:            a.Code,
		Text:            a.Text,
		Classifications: h.splitNames(a.ClassificationsText),
		Tags:            h.splitNames(a.TagsText),
	}

	if frags := a.Highlights[storage.HighlightArticleText]; len(frags) > 0 {
		out.Text = strings.Join(frags, fragmentJoin)
	}
	if frags := a.Highlights[storage.HighlightArticleClassText]; len(frags) > 0 {
		out.Classifications = h.splitNames(frags[0])
	}
	if frags := a.Highlights[storage.HighlightArticleTagText]; len(frags) > 0 {
		out.Tags = h.splitNames(frags[0])
	}
	return out
}

// matchedNames extracts the facet names the highlighter marked, markers
// stripped, from a whole-field highlight fragment list.
func (h *Hydrator) matchedNames(frags []string) []string {
	var names []string
	for _, frag := range frags {
		for _, name := range h.splitNames(frag) {
			if !strings.Contains(name, emOpen) {
				continue
			}
			clean := strings.ReplaceAll(name, emOpen, "")
			clean = strings.ReplaceAll(clean, emClose, "")
			if !contains(names, clean) {
				names = append(names, clean)
			}
		}
	}
	return names
}

func (h *Hydrator) splitNames(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, h.joinToken)
}

// markMatched wraps names present in matched with emphasis markers, so a
// reconstructed article renders like a highlighted inner hit.
func markMatched(names, matched []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		if contains(matched, name) {
			out[i] = emOpen + name + emClose
		} else {
			out[i] = name
		}
	}
	return out
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
