package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/waygate-dev/waygate/internal/domain"
)

// Store persists items in a local SQLite database. Every method issues a
// single statement; callers must not assume atomicity across calls.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the database at path, applying the
// schema idempotently. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Pragmas in the connection string apply to every pooled connection.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS items (
	  id        INTEGER PRIMARY KEY AUTOINCREMENT,
	  item      TEXT NOT NULL,
	  title     TEXT NOT NULL,
	  favicon   TEXT,
	  createdAt TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_items_created
	ON items(createdAt DESC, id DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Insert creates a new row and returns it as stored, including the assigned
// id and createdAt (read-after-write).
func (s *Store) Insert(ctx context.Context, item, title string) (*domain.Item, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (item, title) VALUES (?, ?)`, item, title)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return s.getByID(ctx, id)
}

// List returns a snapshot of all items, newest first. Ties on createdAt are
// broken by id descending so insertion order is preserved.
func (s *Store) List(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item, title, favicon, createdAt
		 FROM items
		 ORDER BY createdAt DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// Delete removes the row with the given id. The returned bool reports
// whether a row was actually removed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n > 0, nil
}

// UpdateMetadata sets title and favicon on the row with the given id, if and
// only if it still exists. The affected-row count is the existence check: a
// false return means the item was deleted in the meantime and nothing was
// written. This single conditional statement is what makes enrichment safe
// against concurrent deletion; there is deliberately no prior existence check.
func (s *Store) UpdateMetadata(ctx context.Context, id int64, meta domain.Metadata) (bool, error) {
	favicon := sql.NullString{String: meta.Favicon, Valid: meta.Favicon != ""}

	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET title = ?, favicon = ? WHERE id = ?`,
		meta.Title, favicon, id)
	if err != nil {
		return false, fmt.Errorf("failed to update item metadata: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n > 0, nil
}

// Count returns the number of stored items.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

// Ping verifies the database connection is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) getByID(ctx context.Context, id int64) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, item, title, favicon, createdAt FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		return nil, err
	}
	return it, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*domain.Item, error) {
	var (
		it      domain.Item
		favicon sql.NullString
	)
	if err := row.Scan(&it.ID, &it.Item, &it.Title, &favicon, &it.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	if favicon.Valid {
		it.Favicon = &favicon.String
	}
	return &it, nil
}
