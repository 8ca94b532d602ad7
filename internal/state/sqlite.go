package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore is the database-backed alternative to FileStore, for
// deployments that already keep the data dir on sqlite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (and migrates) the state database at path. Use
// ":memory:" in tests.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	// sqlite wants a single writer
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping state db: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sent_ids (id TEXT PRIMARY KEY);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", ErrCorrupt, err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (IDSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM sent_ids`)
	if err != nil {
		return nil, fmt.Errorf("%w: query ids: %v", ErrCorrupt, err)
	}
	defer func() { _ = rows.Close() }()

	set := IDSet{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan id: %v", ErrCorrupt, err)
		}
		set[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate ids: %v", ErrCorrupt, err)
	}
	return set, nil
}

// Save replaces the whole table in one transaction; a reader never sees
// the set half-swapped.
func (s *SQLiteStore) Save(ctx context.Context, ids IDSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save state: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sent_ids`); err != nil {
		return fmt.Errorf("save state: clear: %w", err)
	}
	for id := range ids {
		if _, err := tx.ExecContext(ctx, `INSERT INTO sent_ids(id) VALUES (?)`, id); err != nil {
			return fmt.Errorf("save state: insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save state: commit: %w", err)
	}
	return nil
}
