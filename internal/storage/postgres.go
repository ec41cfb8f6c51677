package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"travel/internal/models"
)

// NewPool opens a pgx pool and checks it can reach the database.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS search_history (
	id           TEXT PRIMARY KEY,
	query        TEXT NOT NULL,
	place        TEXT NOT NULL,
	display_name TEXT NOT NULL DEFAULT '',
	kind         TEXT NOT NULL DEFAULT '',
	temperature  DOUBLE PRECISION,
	rain_chance  DOUBLE PRECISION,
	places       JSONB,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS search_history_created_at_idx ON search_history (created_at DESC);`

const insertSQL = `
INSERT INTO search_history (id, query, place, display_name, kind, temperature, rain_chance, places, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO NOTHING`

const recentSQL = `
SELECT id, query, place, display_name, kind, temperature, rain_chance, places, created_at
FROM search_history
ORDER BY created_at DESC
LIMIT $1`

// HistoryStore keeps a log of finished explorations in Postgres.
type HistoryStore struct {
	db DBTX
}

func NewHistoryStore(db DBTX) *HistoryStore {
	return &HistoryStore{db: db}
}

func (s *HistoryStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create search_history: %w", err)
	}
	return nil
}

// SaveResult inserts r. Saving the same result twice is a no-op.
func (s *HistoryStore) SaveResult(ctx context.Context, r *models.Result) error {
	var temperature, rainChance *float64
	if r.Weather != nil {
		temperature, rainChance = &r.Weather.Temperature, &r.Weather.RainChance
	}

	var places []byte
	if r.Places != nil {
		var err error
		if places, err = json.Marshal(r.Places); err != nil {
			return fmt.Errorf("marshal places: %w", err)
		}
	}

	_, err := s.db.Exec(ctx, insertSQL,
		r.ID, r.Query, r.Place, r.DisplayName, r.Kind,
		temperature, rainChance, places, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert search_history: %w", err)
	}
	return nil
}

// Recent returns up to limit results, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]models.Result, error) {
	rows, err := s.db.Query(ctx, recentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query search_history: %w", err)
	}
	defer rows.Close()

	results := []models.Result{}
	for rows.Next() {
		var (
			r                       models.Result
			temperature, rainChance *float64
			places                  []byte
		)
		if err := rows.Scan(&r.ID, &r.Query, &r.Place, &r.DisplayName, &r.Kind,
			&temperature, &rainChance, &places, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search_history: %w", err)
		}
		if temperature != nil {
			r.Weather = &models.Weather{Temperature: *temperature}
			if rainChance != nil {
				r.Weather.RainChance = *rainChance
			}
		}
		if places != nil {
			if err := json.Unmarshal(places, &r.Places); err != nil {
				return nil, fmt.Errorf("decode places for %s: %w", r.ID, err)
			}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search_history: %w", err)
	}
	return results, nil
}
