package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// timestampLayout keeps a fixed width so updated_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const entryColumns = "id, source_path, source_size, source_mtime, output_path, title, status, error_message, run_id, changes_json, created_at, updated_at"

// Store manages processed-file persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts or replaces the entry for entry.SourcePath. CreatedAt is
// preserved across updates.
func (s *Store) Record(ctx context.Context, entry Entry) (*Entry, error) {
	if strings.TrimSpace(entry.SourcePath) == "" {
		return nil, errors.New("source path is required")
	}
	if entry.Status == "" {
		return nil, errors.New("status is required")
	}
	changes, err := marshalChanges(entry.Changes)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(timestampLayout)
	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO processed_files (
            source_path, source_size, source_mtime, output_path, title, status,
            error_message, run_id, changes_json, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(source_path) DO UPDATE SET
            source_size = excluded.source_size,
            source_mtime = excluded.source_mtime,
            output_path = excluded.output_path,
            title = excluded.title,
            status = excluded.status,
            error_message = excluded.error_message,
            run_id = excluded.run_id,
            changes_json = excluded.changes_json,
            updated_at = excluded.updated_at`,
		entry.SourcePath,
		entry.SourceSize,
		entry.SourceMTime.UnixNano(),
		nullableString(entry.OutputPath),
		nullableString(entry.Title),
		entry.Status,
		nullableString(entry.ErrorMessage),
		nullableString(entry.RunID),
		changes,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", entry.SourcePath, err)
	}
	return s.Lookup(ctx, entry.SourcePath)
}

// Lookup returns the entry for sourcePath or nil when none exists.
func (s *Store) Lookup(ctx context.Context, sourcePath string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM processed_files WHERE source_path = ?`, sourcePath)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", sourcePath, err)
	}
	return entry, nil
}

// AlreadyProcessed reports whether sourcePath was processed successfully and
// is unchanged since (same size and modification time).
func (s *Store) AlreadyProcessed(ctx context.Context, sourcePath string, size int64, mtime time.Time) (bool, error) {
	entry, err := s.Lookup(ctx, sourcePath)
	if err != nil || entry == nil {
		return false, err
	}
	return entry.Status == StatusProcessed && entry.Matches(size, mtime), nil
}

// List returns the most recently updated entries first. limit <= 0 returns
// every entry.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM processed_files ORDER BY updated_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Counts returns the number of entries per status.
func (s *Store) Counts(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM processed_files GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[Status(status)] = count
	}
	return counts, rows.Err()
}

// Remove deletes the entry for sourcePath, reporting whether one existed.
func (s *Store) Remove(ctx context.Context, sourcePath string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM processed_files WHERE source_path = ?`, sourcePath)
	if err != nil {
		return false, fmt.Errorf("remove %s: %w", sourcePath, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM processed_files`)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}
