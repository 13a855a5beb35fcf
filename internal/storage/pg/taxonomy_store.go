package pg

import (
	"context"
	"fmt"

	"github.com/eaudeweb/lawkit/internal/apperr"
	"github.com/eaudeweb/lawkit/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaxonomyStore resolves classification and tag identifiers to their names.
type TaxonomyStore struct {
	db *pgxpool.Pool
}

func NewTaxonomyStore(pool *ConnectionPool) *TaxonomyStore {
	return &TaxonomyStore{db: pool.conn}
}

// ClassificationNames resolves ids to names in id order. Unknown ids yield
// fewer names, never an error.
func (s *TaxonomyStore) ClassificationNames(ctx context.Context, ids []int64) ([]string, error) {
	return s.names(ctx, `
		SELECT name FROM taxonomy_classifications
		WHERE id = ANY($1) ORDER BY id`, ids)
}

func (s *TaxonomyStore) TagNames(ctx context.Context, ids []int64) ([]string, error) {
	return s.names(ctx, `
		SELECT name FROM taxonomy_tags
		WHERE id = ANY($1) ORDER BY id`, ids)
}

func (s *TaxonomyStore) names(ctx context.Context, sql string, ids []int64) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, sql, ids)
	if err != nil {
		return nil, apperr.NewUpstream("postgres", fmt.Errorf("failed to resolve taxonomy names: %w", err))
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan taxonomy name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating taxonomy rows: %w", err)
	}
	return names, nil
}

var _ storage.TaxonomyStore = (*TaxonomyStore)(nil)
