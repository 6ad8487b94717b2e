package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// Connect creates a connection pool for the market history database.
func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	connStr := BuildConnString(cfg)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// PostgresStore reads the market_history table through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Close releases the underlying pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) ExactModelStats(ctx context.Context, modelName string, yearMin, yearMax int, minPrice float64) (Stats, error) {
	const q = `
		SELECT COALESCE(AVG(price_eur), 0), COUNT(*)
		FROM market_history
		WHERE model ILIKE $1
		  AND year BETWEEN $2 AND $3
		  AND price_eur > $4`

	var st Stats
	err := s.pool.QueryRow(ctx, q, contains(modelName), yearMin, yearMax, minPrice).
		Scan(&st.Average, &st.Count)
	if err != nil {
		return Stats{}, fmt.Errorf("exact model stats: %w", err)
	}
	return st, nil
}

func (s *PostgresStore) SimilarModelStats(ctx context.Context, brand, modelPattern string, minPrice float64) (Stats, error) {
	const q = `
		SELECT COALESCE(AVG(price_eur), 0), COUNT(*)
		FROM market_history
		WHERE brand = $1
		  AND model ILIKE $2
		  AND price_eur > $3`

	var st Stats
	err := s.pool.QueryRow(ctx, q, brand, contains(modelPattern), minPrice).
		Scan(&st.Average, &st.Count)
	if err != nil {
		return Stats{}, fmt.Errorf("similar model stats: %w", err)
	}
	return st, nil
}

func (s *PostgresStore) CategoryStats(ctx context.Context, category, frameMaterial string, minPrice, maxPrice float64) (Stats, error) {
	q := `
		SELECT COALESCE(AVG(price_eur), 0), COUNT(*)
		FROM market_history
		WHERE category = $1
		  AND price_eur BETWEEN $2 AND $3`
	args := []any{category, minPrice, maxPrice}

	if frameMaterial != "" {
		q += ` AND frame_material = $4`
		args = append(args, frameMaterial)
	}

	var st Stats
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&st.Average, &st.Count); err != nil {
		return Stats{}, fmt.Errorf("category stats: %w", err)
	}
	return st, nil
}

func (s *PostgresStore) YearBuckets(ctx context.Context, brand, modelPattern string, minPrice float64, minCount int) ([]YearBucket, error) {
	const q = `
		SELECT year, AVG(price_eur), COUNT(*)
		FROM market_history
		WHERE brand = $1
		  AND model ILIKE $2
		  AND price_eur > $3
		  AND year > 0
		GROUP BY year
		HAVING COUNT(*) >= $4
		ORDER BY year`

	rows, err := s.pool.Query(ctx, q, brand, contains(modelPattern), minPrice, minCount)
	if err != nil {
		return nil, fmt.Errorf("year buckets: %w", err)
	}
	defer rows.Close()

	var buckets []YearBucket
	for rows.Next() {
		var b YearBucket
		if err := rows.Scan(&b.Year, &b.AvgPrice, &b.Count); err != nil {
			return nil, fmt.Errorf("scan year bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("year buckets: %w", err)
	}
	return buckets, nil
}

func (s *PostgresStore) Comparables(ctx context.Context, cq ComparableQuery) ([]model.MarketHistoryRecord, error) {
	q := `
		SELECT brand, model, COALESCE(title, ''), COALESCE(year, 0), price_eur,
		       COALESCE(category, ''), COALESCE(frame_size, ''),
		       COALESCE(frame_material, ''), COALESCE(quality_score, 0), created_at
		FROM market_history
		WHERE LOWER(brand) = LOWER($1)
		  AND price_eur > 0
		  AND created_at > $2`
	args := []any{cq.Brand, cq.Since}

	if len(cq.Patterns) > 0 {
		clause := ""
		for i, p := range cq.Patterns {
			if i > 0 {
				clause += " OR "
			}
			args = append(args, p)
			ph := len(args)
			clause += fmt.Sprintf("(model ILIKE $%d OR title ILIKE $%d)", ph, ph)
		}
		q += " AND (" + clause + ")"
	}

	args = append(args, cq.Limit)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("comparables: %w", err)
	}
	defer rows.Close()

	var out []model.MarketHistoryRecord
	for rows.Next() {
		var r model.MarketHistoryRecord
		if err := rows.Scan(&r.Brand, &r.Model, &r.Title, &r.Year, &r.PriceEUR,
			&r.Category, &r.FrameSize, &r.FrameMaterial, &r.QualityScore, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comparable: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("comparables: %w", err)
	}
	return out, nil
}

// contains wraps a term in LIKE wildcards.
func contains(term string) string {
	return "%" + term + "%"
}
