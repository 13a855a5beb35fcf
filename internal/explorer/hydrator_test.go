package explorer

import (
	"context"
	"testing"

	"github.com/eaudeweb/lawkit/internal/domain"
	"github.com/eaudeweb/lawkit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLawStore struct {
	laws             map[int64]domain.Legislation
	matchingArticles map[int64][]domain.Article

	matchingCalls   int
	lastTagNames    []string
	lastClassNames  []string
	listLaws        []domain.Legislation
	countTotal      int64
	lastListOrder   storage.LawOrder
	lastListOffset  int
	lastListLimit   int
}

func (f *fakeLawStore) FetchByIDs(_ context.Context, ids []int64) ([]domain.Legislation, error) {
	var out []domain.Legislation
	for _, id := range ids {
		if law, ok := f.laws[id]; ok {
			out = append(out, law)
		}
	}
	return out, nil
}

func (f *fakeLawStore) List(_ context.Context, order storage.LawOrder, offset, limit int) ([]domain.Legislation, error) {
	f.lastListOrder, f.lastListOffset, f.lastListLimit = order, offset, limit
	return f.listLaws, nil
}

func (f *fakeLawStore) Count(_ context.Context) (int64, error) {
	return f.countTotal, nil
}

func (f *fakeLawStore) ArticlesMatching(_ context.Context, lawID int64, tagNames, classificationNames []string) ([]domain.Article, error) {
	f.matchingCalls++
	f.lastTagNames = tagNames
	f.lastClassNames = classificationNames
	return f.matchingArticles[lawID], nil
}

func (f *fakeLawStore) Articles(_ context.Context, lawID int64) ([]domain.Article, error) {
	return f.matchingArticles[lawID], nil
}

func newHydratorStore() *fakeLawStore {
	return &fakeLawStore{
		laws: map[int64]domain.Legislation{
			1: {
				ID: 1, Title: "Climate Change Act", Abstract: "An act about adaptation",
				CountryISO: "FJI", CountryName: "Fiji", LawType: domain.LawTypeLaw, Year: 2012,
				Classifications: []string{"Energy"}, Tags: []string{"Adaptation", "Mitigation"},
			},
			2: {
				ID: 2, Title: "Water Act", CountryISO: "ROU", CountryName: "Romania",
				LawType: domain.LawTypeLaw, Year: 1998,
			},
		},
	}
}

func TestHydrate_RankingOrderPreserved(t *testing.T) {
	h := NewHydrator(newHydratorStore(), "; ")

	results, err := h.Hydrate(context.Background(), []storage.LawHit{
		{ID: 2}, {ID: 1},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(2), results[0].ID)
	assert.Equal(t, int64(1), results[1].ID)
}

func TestHydrate_StaleHitDropped(t *testing.T) {
	h := NewHydrator(newHydratorStore(), "; ")

	results, err := h.Hydrate(context.Background(), []storage.LawHit{
		{ID: 99}, {ID: 1},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0].ID)
}

func TestHydrate_DocumentHighlights(t *testing.T) {
	h := NewHydrator(newHydratorStore(), "; ")

	results, err := h.Hydrate(context.Background(), []storage.LawHit{{
		ID: 1,
		Highlights: map[string][]string{
			storage.HighlightTitle:    {"<em>Climate</em> Change Act"},
			storage.HighlightAbstract: {"about <em>adaptation</em>", "second window"},
			storage.HighlightPDFText:  {"<pre>raw <em>climate</em> text</pre>"},
			storage.HighlightTags:     {"<em>Adaptation</em>; Mitigation"},
		},
	}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, "<em>Climate</em> Change Act", r.Title)
	assert.Equal(t, "about <em>adaptation</em> […] second window", r.Abstract)
	assert.Equal(t, "raw <em>climate</em> text", r.PDFText, "extraction markup stripped")
	assert.Equal(t, []string{"<em>Adaptation</em>", "Mitigation"}, r.Tags)
	// untouched fields keep their stored values
	assert.Equal(t, []string{"Energy"}, r.Classifications)
}

func TestHydrate_InnerHitArticles(t *testing.T) {
	h := NewHydrator(newHydratorStore(), "; ")

	results, err := h.Hydrate(context.Background(), []storage.LawHit{{
		ID: 1,
		Articles: []storage.ArticleHit{{
			ID: 10, Code: "Art. 3", Text: "stored text",
			TagsText: "Adaptation; Mitigation",
			Highlights: map[string][]string{
				storage.HighlightArticleText:    {"matched <em>flood</em> text"},
				storage.HighlightArticleTagText: {"<em>Adaptation</em>; Mitigation"},
			},
		}},
	}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Articles, 1)

	a := results[0].Articles[0]
	assert.Equal(t, int64(10), a.ID)
	assert.Equal(t, "Art. 3", a.Code)
	assert.Equal(t, "matched <em>flood</em> text", a.Text)
	assert.Equal(t, []string{"<em>Adaptation</em>", "Mitigation"}, a.Tags)
}

func TestHydrate_InnerHitWithoutTextHighlightKeepsStoredText(t *testing.T) {
	h := NewHydrator(newHydratorStore(), "; ")

	results, err := h.Hydrate(context.Background(), []storage.LawHit{{
		ID: 1,
		Articles: []storage.ArticleHit{{
			ID: 10, Code: "Art. 3", Text: "stored text", TagsText: "Adaptation",
		}},
	}})
	require.NoError(t, err)
	require.Len(t, results[0].Articles, 1)
	assert.Equal(t, "stored text", results[0].Articles[0].Text)
	assert.Equal(t, []string{"Adaptation"}, results[0].Articles[0].Tags)
}

func TestHydrate_ReconstructsArticlesWhenInnerHitsEmpty(t *testing.T) {
	store := newHydratorStore()
	store.matchingArticles = map[int64][]domain.Article{
		1: {{
			ID: 11, LegislationID: 1, Code: "Art. 5", Text: "adaptation measures",
			Tags: []string{"Adaptation", "Mitigation"},
		}},
	}
	h := NewHydrator(store, "; ")

	results, err := h.Hydrate(context.Background(), []storage.LawHit{{
		ID: 1,
		Highlights: map[string][]string{
			storage.HighlightArticleTags: {"<em>Adaptation</em>; Mitigation"},
		},
	}})
	require.NoError(t, err)

	require.Equal(t, 1, store.matchingCalls)
	assert.Equal(t, []string{"Adaptation"}, store.lastTagNames)
	assert.Empty(t, store.lastClassNames)

	require.Len(t, results[0].Articles, 1)
	a := results[0].Articles[0]
	assert.Equal(t, "Art. 5", a.Code)
	assert.Equal(t, "adaptation measures", a.Text)
	// the matched name gets emphasis markers, the rest stay plain
	assert.Equal(t, []string{"<em>Adaptation</em>", "Mitigation"}, a.Tags)
}

func TestHydrate_NoReconstructionWithoutMatchedNames(t *testing.T) {
	store := newHydratorStore()
	h := NewHydrator(store, "; ")

	results, err := h.Hydrate(context.Background(), []storage.LawHit{{
		ID: 1,
		Highlights: map[string][]string{
			storage.HighlightArticleTags: {"Adaptation; Mitigation"},
		},
	}})
	require.NoError(t, err)
	assert.Zero(t, store.matchingCalls)
	assert.Empty(t, results[0].Articles)
}
