package pg

import (
	"context"
	"os"
	"testing"

	"github.com/eaudeweb/lawkit/internal/storage"
	pkgtesting "github.com/eaudeweb/lawkit/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var (
	testCtx  context.Context
	testPool *ConnectionPool
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "lawkit_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}
	defer testcontainers.TerminateContainer(pg.Container)

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		panic(err)
	}
	defer testPool.Close()

	if err := seed(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func seed() error {
	_, err := testPool.GetConn().Exec(testCtx, `
		INSERT INTO countries (iso, name, sid, region, legal_systems, population) VALUES
			('FJI', 'Fiji', true, 'Oceania', '{"Common law"}', 900000),
			('ROU', 'Romania', false, 'Europe', '{"Civil law"}', 19000000);

		INSERT INTO taxonomy_classifications (id, name, code) VALUES
			(1, 'Energy', '1'),
			(2, 'Transport', '2');
		INSERT INTO taxonomy_tags (id, name) VALUES
			(5, 'Adaptation'),
			(6, 'Mitigation');

		INSERT INTO legislation (id, title, abstract, country_iso, law_type, year) VALUES
			(1, 'Climate Change Act', 'An act about adaptation', 'FJI', 'Law', 2012),
			(2, 'Water Act', NULL, 'ROU', 'Law', 1998);

		INSERT INTO legislation_classifications VALUES (1, 1);
		INSERT INTO legislation_tags VALUES (1, 5), (1, 6);

		INSERT INTO articles (id, legislation_id, code, text) VALUES
			(10, 1, 'Art. 1', 'adaptation measures'),
			(11, 1, 'Art. 2', 'transport provisions');
		INSERT INTO article_tags VALUES (10, 5);
		INSERT INTO article_classifications VALUES (11, 2);
	`)
	return err
}

func TestLawStore_FetchByIDs(t *testing.T) {
	store := NewLawStore(testPool)

	t.Run("preserves requested order", func(t *testing.T) {
		laws, err := store.FetchByIDs(testCtx, []int64{2, 1})
		require.NoError(t, err)
		require.Len(t, laws, 2)
		assert.Equal(t, int64(2), laws[0].ID)
		assert.Equal(t, int64(1), laws[1].ID)
	})

	t.Run("aggregates names and country", func(t *testing.T) {
		laws, err := store.FetchByIDs(testCtx, []int64{1})
		require.NoError(t, err)
		require.Len(t, laws, 1)

		law := laws[0]
		assert.Equal(t, "Climate Change Act", law.Title)
		assert.Equal(t, "Fiji", law.CountryName)
		assert.Equal(t, []string{"Energy"}, law.Classifications)
		assert.Equal(t, []string{"Adaptation", "Mitigation"}, law.Tags)
	})

	t.Run("skips unknown ids", func(t *testing.T) {
		laws, err := store.FetchByIDs(testCtx, []int64{99, 1})
		require.NoError(t, err)
		require.Len(t, laws, 1)
		assert.Equal(t, int64(1), laws[0].ID)
	})

	t.Run("empty input fetches nothing", func(t *testing.T) {
		laws, err := store.FetchByIDs(testCtx, nil)
		require.NoError(t, err)
		assert.Empty(t, laws)
	})
}

func TestLawStore_ListAndCount(t *testing.T) {
	store := NewLawStore(testPool)

	total, err := store.Count(testCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	t.Run("year ascending", func(t *testing.T) {
		laws, err := store.List(testCtx, storage.OrderYearAsc, 0, 10)
		require.NoError(t, err)
		require.Len(t, laws, 2)
		assert.Equal(t, 1998, laws[0].Year)
		assert.Equal(t, 2012, laws[1].Year)
	})

	t.Run("country descending", func(t *testing.T) {
		laws, err := store.List(testCtx, storage.OrderCountryDesc, 0, 10)
		require.NoError(t, err)
		require.Len(t, laws, 2)
		assert.Equal(t, "Romania", laws[0].CountryName)
	})

	t.Run("offset and limit page through", func(t *testing.T) {
		laws, err := store.List(testCtx, storage.OrderYearAsc, 1, 10)
		require.NoError(t, err)
		require.Len(t, laws, 1)
		assert.Equal(t, 2012, laws[0].Year)
	})
}

func TestLawStore_ArticlesMatching(t *testing.T) {
	store := NewLawStore(testPool)

	t.Run("by tag name", func(t *testing.T) {
		articles, err := store.ArticlesMatching(testCtx, 1, []string{"Adaptation"}, nil)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "Art. 1", articles[0].Code)
		assert.Equal(t, []string{"Adaptation"}, articles[0].Tags)
	})

	t.Run("by classification name", func(t *testing.T) {
		articles, err := store.ArticlesMatching(testCtx, 1, nil, []string{"Transport"})
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "Art. 2", articles[0].Code)
	})

	t.Run("no intersection yields nothing", func(t *testing.T) {
		articles, err := store.ArticlesMatching(testCtx, 1, []string{"Unknown"}, nil)
		require.NoError(t, err)
		assert.Empty(t, articles)
	})
}

func TestLawStore_Articles(t *testing.T) {
	store := NewLawStore(testPool)

	articles, err := store.Articles(testCtx, 1)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Art. 1", articles[0].Code)
	assert.Equal(t, "Art. 2", articles[1].Code)
}

func TestTaxonomyStore(t *testing.T) {
	store := NewTaxonomyStore(testPool)

	names, err := store.ClassificationNames(testCtx, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Energy", "Transport"}, names)

	t.Run("unknown ids resolve to fewer names", func(t *testing.T) {
		names, err := store.TagNames(testCtx, []int64{5, 404})
		require.NoError(t, err)
		assert.Equal(t, []string{"Adaptation"}, names)
	})

	t.Run("empty input resolves to nothing", func(t *testing.T) {
		names, err := store.TagNames(testCtx, nil)
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestCountryStore_All(t *testing.T) {
	store := NewCountryStore(testPool)

	countries, err := store.All(testCtx)
	require.NoError(t, err)
	require.Len(t, countries, 2)

	fiji := countries[0]
	assert.Equal(t, "FJI", fiji.ISO)
	assert.True(t, fiji.SID)
	assert.Equal(t, "Oceania", fiji.Region)
	assert.Equal(t, []string{"Common law"}, fiji.LegalSystems)
	assert.Equal(t, float64(900000), fiji.Population)
}
