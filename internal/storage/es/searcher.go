package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/eaudeweb/lawkit/internal/apperr"
	"github.com/eaudeweb/lawkit/internal/config"
	"github.com/eaudeweb/lawkit/internal/domain/query"
	"github.com/eaudeweb/lawkit/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// Searcher executes composed legislation queries against the index. Index
// or transport failures surface as apperr.UpstreamError; the caller decides
// what to do, this layer never retries.
type Searcher struct {
	client    *elasticsearch.TypedClient
	indexName string
	composer  *Composer
}

func NewSearcher(clientCfg ClientConfig, cfg config.Explorer) (*Searcher, error) {
	client, err := newClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Searcher{
		client:    client,
		indexName: clientCfg.IndexName,
		composer:  NewComposer(cfg),
	}, nil
}

// Search implements storage.LawSearcher. Returns one page of ranked hits
// with document-level highlight payloads and nested article inner hits.
func (s *Searcher) Search(ctx context.Context, q *query.LawQuery, offset, limit int) (*storage.SearchPage, error) {
	composed, highlight, sorts := s.composer.Compose(q)

	slog.Info("Executing es legislation search",
		"has_text", q.Text != "",
		"has_facets", q.HasFacets(),
		"countries", len(q.CountryISOs),
		"offset", offset,
		"size", limit)

	searchReq := s.client.Search().
		Index(s.indexName).
		From(offset).
		Size(limit).
		Highlight(highlight).
		Sort(sorts...).
		TrackTotalHits(true)

	if composed != nil {
		searchReq = searchReq.Query(composed)
	}

	res, err := searchReq.Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err)
		return nil, apperr.NewUpstream("elasticsearch", err)
	}

	hits, err := s.mapHits(res.Hits.Hits)
	if err != nil {
		return nil, fmt.Errorf("failed to map search hits: %w", err)
	}

	var total int64
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
	}

	slog.Info("Es legislation search results fetched",
		"total_matches", total,
		"returned_count", len(hits))

	return &storage.SearchPage{Hits: hits, Total: total}, nil
}

// Count implements storage.LawSearcher without fetching hits.
func (s *Searcher) Count(ctx context.Context, q *query.LawQuery) (int64, error) {
	composed, _, _ := s.composer.Compose(q)

	countReq := s.client.Count().Index(s.indexName)
	if composed != nil {
		countReq = countReq.Query(composed)
	}

	res, err := countReq.Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch count failed", "error", err)
		return 0, apperr.NewUpstream("elasticsearch", err)
	}

	return res.Count, nil
}

func (s *Searcher) mapHits(raw []types.Hit) ([]storage.LawHit, error) {
	hits := make([]storage.LawHit, 0, len(raw))

	for _, hit := range raw {
		var doc LawDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal law document: %w", err)
		}

		lawHit := storage.LawHit{
			ID:         doc.ID,
			Highlights: hit.Highlight,
		}

		if inner, ok := hit.InnerHits["articles"]; ok {
			for _, articleHit := range inner.Hits.Hits {
				var articleDoc ArticleDoc
				if err := json.Unmarshal(articleHit.Source_, &articleDoc); err != nil {
					return nil, fmt.Errorf("failed to unmarshal article inner hit: %w", err)
				}
				lawHit.Articles = append(lawHit.Articles, storage.ArticleHit{
					ID:                  articleDoc.PK,
					Code:                articleDoc.Code,
					Text:                articleDoc.Text,
					ClassificationsText: articleDoc.ClassificationsText,
					TagsText:            articleDoc.TagsText,
					Highlights:          articleHit.Highlight,
				})
			}
		}

		hits = append(hits, lawHit)
	}

	return hits, nil
}

// Compile-time interface assertion
var _ storage.LawSearcher = (*Searcher)(nil)
