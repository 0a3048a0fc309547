package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jjenkins/vinlookup/internal/model"
)

const schema = `
	CREATE TABLE IF NOT EXISTS lookups (
		id          UUID PRIMARY KEY,
		vin         VARCHAR(17) NOT NULL,
		make        TEXT NOT NULL,
		model       TEXT NOT NULL DEFAULT '',
		model_year  TEXT NOT NULL DEFAULT '',
		body_class  TEXT NOT NULL DEFAULT '',
		searched_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_lookups_searched_at ON lookups (searched_at DESC);
`

// LookupStore handles database operations for the lookup history.
// Nothing here is consulted when decoding: the history is write-mostly.
type LookupStore struct {
	db *sql.DB
}

// NewLookupStore creates a new LookupStore
func NewLookupStore(db *sql.DB) *LookupStore {
	return &LookupStore{db: db}
}

// EnsureSchema creates the lookups table if it does not exist
func (s *LookupStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create lookups schema: %w", err)
	}
	return nil
}

// Save inserts a lookup
func (s *LookupStore) Save(ctx context.Context, l *model.Lookup) error {
	query := `
		INSERT INTO lookups (id, vin, make, model, model_year, body_class, searched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		l.ID,
		l.VIN,
		l.Make,
		l.Model,
		l.ModelYear,
		l.BodyClass,
		l.SearchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lookup %s: %w", l.VIN, err)
	}

	return nil
}

// Recent retrieves the most recent lookups, newest first
func (s *LookupStore) Recent(ctx context.Context, limit int) ([]model.Lookup, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, vin, make, model, model_year, body_class, searched_at
		FROM lookups
		ORDER BY searched_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer rows.Close()

	var lookups []model.Lookup
	for rows.Next() {
		var l model.Lookup
		if err := rows.Scan(
			&l.ID,
			&l.VIN,
			&l.Make,
			&l.Model,
			&l.ModelYear,
			&l.BodyClass,
			&l.SearchedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}
		lookups = append(lookups, l)
	}

	return lookups, rows.Err()
}

// Summary calculates aggregate figures over the whole history
func (s *LookupStore) Summary(ctx context.Context) (*model.LookupSummary, error) {
	summary := &model.LookupSummary{}

	countQuery := `SELECT COUNT(*), COUNT(DISTINCT vin) FROM lookups`
	if err := s.db.QueryRowContext(ctx, countQuery).Scan(&summary.TotalLookups, &summary.UniqueVINs); err != nil {
		return nil, fmt.Errorf("failed to count lookups: %w", err)
	}

	topMakeQuery := `
		SELECT make, COUNT(*) AS n
		FROM lookups
		GROUP BY make
		ORDER BY n DESC, make ASC
		LIMIT 1
	`
	err := s.db.QueryRowContext(ctx, topMakeQuery).Scan(&summary.TopMake, &summary.TopMakeCount)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to find top make: %w", err)
	}

	return summary, nil
}
