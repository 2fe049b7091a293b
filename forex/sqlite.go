package forex

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE IF NOT EXISTS quotes (
	code       TEXT PRIMARY KEY,
	rate       TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL
)`

// SQLiteStore is a Store persisted in a SQLite database, so that quotes
// survive between runs.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens, and creates if needed, the quote database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open rate store %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize rate store %q: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Load(ctx context.Context, codes []string) (map[string]Quote, error) {
	found := make(map[string]Quote, len(codes))
	if len(codes) == 0 {
		return found, nil
	}
	args := make([]any, len(codes))
	for i, code := range codes {
		args[i] = code
	}
	query := "SELECT code, rate, fetched_at FROM quotes WHERE code IN (?" + strings.Repeat(",?", len(codes)-1) + ")"
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("cannot load quotes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			q    Quote
			rate string
		)
		if err := rows.Scan(&q.Code, &rate, &q.FetchedAt); err != nil {
			return nil, fmt.Errorf("cannot read quote: %w", err)
		}
		if q.Rate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("invalid stored rate for %s: %w", q.Code, err)
		}
		found[q.Code] = q
	}
	return found, rows.Err()
}

func (s *SQLiteStore) Save(ctx context.Context, quotes []Quote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quotes (code, rate, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET rate = excluded.rate, fetched_at = excluded.fetched_at`)
	if err != nil {
		return fmt.Errorf("cannot prepare quote upsert: %w", err)
	}
	defer stmt.Close()
	for _, q := range quotes {
		if _, err := stmt.ExecContext(ctx, q.Code, q.Rate.String(), q.FetchedAt.UTC()); err != nil {
			return fmt.Errorf("cannot save quote %s: %w", q.Code, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug().Int("quotes", len(quotes)).Msg("quotes saved")
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)
