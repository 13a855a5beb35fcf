package pg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eaudeweb/lawkit/internal/apperr"
	"github.com/eaudeweb/lawkit/internal/domain"
	"github.com/eaudeweb/lawkit/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LawStore is the relational read side for legislation and articles.
type LawStore struct {
	db *pgxpool.Pool
}

func NewLawStore(pool *ConnectionPool) *LawStore {
	return &LawStore{db: pool.conn}
}

const lawColumns = `
	l.id, l.title, COALESCE(l.abstract, ''), COALESCE(l.pdf_text, ''),
	l.country_iso, c.name, l.law_type, l.year,
	COALESCE(l.year_amendment, '{}'), COALESCE(l.year_mentions, '{}'),
	l.created_at,
	COALESCE(cls.names, '{}'), COALESCE(tgs.names, '{}')`

const lawJoins = `
	JOIN countries c ON c.iso = l.country_iso
	LEFT JOIN LATERAL (
		SELECT array_agg(tc.name ORDER BY tc.code) AS names
		FROM legislation_classifications lc
		JOIN taxonomy_classifications tc ON tc.id = lc.classification_id
		WHERE lc.legislation_id = l.id
	) cls ON true
	LEFT JOIN LATERAL (
		SELECT array_agg(tt.name ORDER BY tt.name) AS names
		FROM legislation_tags lt
		JOIN taxonomy_tags tt ON tt.id = lt.tag_id
		WHERE lt.legislation_id = l.id
	) tgs ON true`

// FetchByIDs materializes laws preserving the order of ids. Identifiers
// without a backing row are skipped; the index can be ahead of the store.
func (s *LawStore) FetchByIDs(ctx context.Context, ids []int64) ([]domain.Legislation, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql := `
		SELECT ` + lawColumns + `
		FROM unnest($1::bigint[]) WITH ORDINALITY AS ranked(id, pos)
		JOIN legislation l ON l.id = ranked.id` + lawJoins + `
		ORDER BY ranked.pos`

	rows, err := s.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, apperr.NewUpstream("postgres", fmt.Errorf("failed to fetch laws: %w", err))
	}
	defer rows.Close()

	laws, err := scanLaws(rows)
	if err != nil {
		return nil, err
	}

	if len(laws) < len(ids) {
		slog.Warn("some ranked hits have no backing record, dropped",
			"requested", len(ids), "found", len(laws))
	}
	return laws, nil
}

// List returns one page of laws in the requested explicit order.
func (s *LawStore) List(ctx context.Context, order storage.LawOrder, offset, limit int) ([]domain.Legislation, error) {
	sql := `
		SELECT ` + lawColumns + `
		FROM legislation l` + lawJoins + `
		ORDER BY ` + orderClause(order) + `
		OFFSET $1 LIMIT $2`

	rows, err := s.db.Query(ctx, sql, offset, limit)
	if err != nil {
		return nil, apperr.NewUpstream("postgres", fmt.Errorf("failed to list laws: %w", err))
	}
	defer rows.Close()

	return scanLaws(rows)
}

func (s *LawStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM legislation`).Scan(&count); err != nil {
		return 0, apperr.NewUpstream("postgres", fmt.Errorf("failed to count laws: %w", err))
	}
	return count, nil
}

func orderClause(order storage.LawOrder) string {
	switch order {
	case storage.OrderYearAsc:
		return "l.year ASC, l.id ASC"
	case storage.OrderYearDesc:
		return "l.year DESC, l.id ASC"
	case storage.OrderCountryAsc:
		return "c.name ASC, l.id ASC"
	case storage.OrderCountryDesc:
		return "c.name DESC, l.id ASC"
	default:
		return "l.id ASC"
	}
}

const articleColumns = `
	a.id, a.legislation_id, a.code, a.text,
	COALESCE(cls.names, '{}'), COALESCE(tgs.names, '{}')`

const articleJoins = `
	LEFT JOIN LATERAL (
		SELECT array_agg(tc.name ORDER BY tc.code) AS names
		FROM article_classifications ac
		JOIN taxonomy_classifications tc ON tc.id = ac.classification_id
		WHERE ac.article_id = a.id
	) cls ON true
	LEFT JOIN LATERAL (
		SELECT array_agg(tt.name ORDER BY tt.name) AS names
		FROM article_tags at
		JOIN taxonomy_tags tt ON tt.id = at.tag_id
		WHERE at.article_id = a.id
	) tgs ON true`

// ArticlesMatching fetches the law's articles whose tag or classification
// names intersect the given lists. This is the reconstruction path for
// nested matches the index reported without inner-hit payloads.
func (s *LawStore) ArticlesMatching(ctx context.Context, lawID int64, tagNames, classificationNames []string) ([]domain.Article, error) {
	sql := `
		SELECT ` + articleColumns + `
		FROM articles a` + articleJoins + `
		WHERE a.legislation_id = $1
		  AND (
			EXISTS (
				SELECT 1 FROM article_tags at
				JOIN taxonomy_tags tt ON tt.id = at.tag_id
				WHERE at.article_id = a.id AND tt.name = ANY($2)
			)
			OR EXISTS (
				SELECT 1 FROM article_classifications ac
				JOIN taxonomy_classifications tc ON tc.id = ac.classification_id
				WHERE ac.article_id = a.id AND tc.name = ANY($3)
			)
		  )
		ORDER BY a.id`

	rows, err := s.db.Query(ctx, sql, lawID, tagNames, classificationNames)
	if err != nil {
		return nil, apperr.NewUpstream("postgres", fmt.Errorf("failed to fetch matching articles: %w", err))
	}
	defer rows.Close()

	return scanArticles(rows)
}

// Articles returns all articles of a law in code order, for index builds.
func (s *LawStore) Articles(ctx context.Context, lawID int64) ([]domain.Article, error) {
	sql := `
		SELECT ` + articleColumns + `
		FROM articles a` + articleJoins + `
		WHERE a.legislation_id = $1
		ORDER BY a.id`

	rows, err := s.db.Query(ctx, sql, lawID)
	if err != nil {
		return nil, apperr.NewUpstream("postgres", fmt.Errorf("failed to fetch articles: %w", err))
	}
	defer rows.Close()

	return scanArticles(rows)
}

func scanLaws(rows pgx.Rows) ([]domain.Legislation, error) {
	var laws []domain.Legislation
	for rows.Next() {
		var law domain.Legislation
		if err := rows.Scan(
			&law.ID,
			&law.Title,
			&law.Abstract,
			&law.PDFText,
			&law.CountryISO,
			&law.CountryName,
			&law.LawType,
			&law.Year,
			&law.YearAmendment,
			&law.YearMentions,
			&law.CreatedAt,
			&law.Classifications,
			&law.Tags,
		); err != nil {
			return nil, fmt.Errorf("failed to scan law: %w", err)
		}
		laws = append(laws, law)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating law rows: %w", err)
	}
	return laws, nil
}

func scanArticles(rows pgx.Rows) ([]domain.Article, error) {
	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID,
			&a.LegislationID,
			&a.Code,
			&a.Text,
			&a.Classifications,
			&a.Tags,
		); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}
	return articles, nil
}

// Compile-time interface assertion
var _ storage.LawStore = (*LawStore)(nil)
