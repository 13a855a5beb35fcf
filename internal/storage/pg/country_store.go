package pg

import (
	"context"
	"fmt"

	"github.com/eaudeweb/lawkit/internal/apperr"
	"github.com/eaudeweb/lawkit/internal/domain"
	"github.com/eaudeweb/lawkit/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CountryStore reads the static country reference set. The set is small
// (under 250 rows) and metadata filtering happens in memory.
type CountryStore struct {
	db *pgxpool.Pool
}

func NewCountryStore(pool *ConnectionPool) *CountryStore {
	return &CountryStore{db: pool.conn}
}

func (s *CountryStore) All(ctx context.Context) ([]domain.Country, error) {
	rows, err := s.db.Query(ctx, `
		SELECT iso, name,
		       cw, small_cw, un, ldc, lldc, sid,
		       COALESCE(region, ''), COALESCE(sub_region, ''),
		       COALESCE(legal_systems, '{}'),
		       COALESCE(population, 0), COALESCE(hdi2015, 0),
		       COALESCE(gdp_capita, 0),
		       COALESCE(ghg_no_lucf, 0), COALESCE(ghg_lucf, 0)
		FROM countries
		ORDER BY iso`)
	if err != nil {
		return nil, apperr.NewUpstream("postgres", fmt.Errorf("failed to fetch countries: %w", err))
	}
	defer rows.Close()

	var countries []domain.Country
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(
			&c.ISO, &c.Name,
			&c.CW, &c.SmallCW, &c.UN, &c.LDC, &c.LLDC, &c.SID,
			&c.Region, &c.SubRegion,
			&c.LegalSystems,
			&c.Population, &c.HDI2015,
			&c.GDPCapita,
			&c.GHGNoLUCF, &c.GHGLUCF,
		); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating country rows: %w", err)
	}
	return countries, nil
}

var _ storage.CountryStore = (*CountryStore)(nil)
