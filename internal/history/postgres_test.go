package history

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/g1nlyf/bikewerk/internal/testutil"
)

// connectTestDB opens the integration database or skips the test when none is
// configured.
func connectTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testutil.LoadEnv()

	url := testutil.GetTestDatabaseURL()
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("database not reachable: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresStoreQueries(t *testing.T) {
	pool := connectTestDB(t)
	store := NewPostgresStore(pool)
	ctx := context.Background()

	// Smoke the query shapes against the live schema; a fresh database
	// legitimately returns zero rows.
	if _, err := store.ExactModelStats(ctx, "Spectral", 2019, 2021, 500); err != nil {
		t.Errorf("ExactModelStats: %v", err)
	}
	if _, err := store.SimilarModelStats(ctx, "Canyon", "Spectral", 500); err != nil {
		t.Errorf("SimilarModelStats: %v", err)
	}
	if _, err := store.CategoryStats(ctx, "enduro", "carbon", 800, 5000); err != nil {
		t.Errorf("CategoryStats: %v", err)
	}
	if _, err := store.YearBuckets(ctx, "Canyon", "Spectral", 500, 3); err != nil {
		t.Errorf("YearBuckets: %v", err)
	}
	if _, err := store.Comparables(ctx, ComparableQuery{
		Brand:    "Canyon",
		Patterns: []string{"%spectral%"},
		Since:    time.Now().AddDate(-1, 0, 0),
		Limit:    10,
	}); err != nil {
		t.Errorf("Comparables: %v", err)
	}
}
