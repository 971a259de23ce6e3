package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/swamp/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/swamp/internal/core/domain"
	"github.com/custodia-labs/swamp/internal/core/ports/driven"
)

// maxBatch bounds the number of ids bound into a single IN clause.
const maxBatch = 500

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store is a SQLite-backed record store over a private in-memory database.
type Store struct {
	db   *sql.DB
	name string

	mu     sync.Mutex
	closed bool
}

// NewStore opens a fresh in-memory database and applies migrations.
func NewStore() (*Store, error) {
	name := uuid.New().String()

	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// The database disappears with its last connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{
		db:   db,
		name: name,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Name returns the name of the in-memory database.
func (s *Store) Name() string {
	return s.name
}

// Close closes the database connection and discards all records.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Append stores a new record with the next id.
func (s *Store) Append(ctx context.Context, words, tags []string) (domain.Record, error) {
	if err := s.check(); err != nil {
		return domain.Record{}, err
	}

	wordsJSON, err := marshalStrings(words)
	if err != nil {
		return domain.Record{}, fmt.Errorf("marshalling words: %w", err)
	}
	tagsJSON, err := marshalStrings(tags)
	if err != nil {
		return domain.Record{}, fmt.Errorf("marshalling tags: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Record{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var id int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(id) + 1, 0) FROM records").Scan(&id); err != nil {
		return domain.Record{}, fmt.Errorf("allocating id: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO records (id, words, tags, done) VALUES (?, ?, ?, 0)",
		id, wordsJSON, tagsJSON,
	)
	if err != nil {
		return domain.Record{}, fmt.Errorf("inserting record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Record{}, fmt.Errorf("committing record: %w", err)
	}

	return domain.Record{
		ID:    uint64(id),
		Words: append([]string(nil), words...),
		Tags:  append([]string(nil), tags...),
	}, nil
}

// MarkDone flags the record with id as done.
func (s *Store) MarkDone(ctx context.Context, id uint64) error {
	if err := s.check(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "UPDATE records SET done = 1 WHERE id = ?", int64(id))
	if err != nil {
		return fmt.Errorf("marking record %d done: %w", id, err)
	}

	// SQLite counts rows matched by the WHERE clause, so a second call on a
	// done record still reports one row.
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("record %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Get returns the records with the given ids in ascending id order.
func (s *Store) Get(ctx context.Context, ids []uint64, includeDone bool) ([]domain.Record, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	sorted := dedupe(ids)
	out := make([]domain.Record, 0, len(sorted))
	for start := 0; start < len(sorted); start += maxBatch {
		end := min(start+maxBatch, len(sorted))
		batch, err := s.getBatch(ctx, sorted[start:end], includeDone)
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}
	return out, nil
}

func (s *Store) getBatch(ctx context.Context, ids []uint64, includeDone bool) ([]domain.Record, error) {
	placeholders := strings.Repeat("?, ", len(ids))
	placeholders = placeholders[:len(placeholders)-2]

	query := "SELECT id, words, tags, done FROM records WHERE id IN (" + placeholders + ")"
	if !includeDone {
		query += " AND done = 0"
	}
	query += " ORDER BY id"

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = int64(id)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return out, nil
}

// Len returns the number of records ever appended.
func (s *Store) Len(ctx context.Context) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}

func (s *Store) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	return nil
}

// migrate applies all pending migrations from the embedded filesystem.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_records.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func scanRecord(rows *sql.Rows) (domain.Record, error) {
	var (
		id        int64
		wordsJSON string
		tagsJSON  string
		done      int
	)
	if err := rows.Scan(&id, &wordsJSON, &tagsJSON, &done); err != nil {
		return domain.Record{}, fmt.Errorf("scanning record: %w", err)
	}

	r := domain.Record{ID: uint64(id), Done: done != 0}
	if err := json.Unmarshal([]byte(wordsJSON), &r.Words); err != nil {
		return domain.Record{}, fmt.Errorf("unmarshalling words of record %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &r.Tags); err != nil {
		return domain.Record{}, fmt.Errorf("unmarshalling tags of record %d: %w", id, err)
	}
	if len(r.Words) == 0 {
		r.Words = nil
	}
	if len(r.Tags) == 0 {
		r.Tags = nil
	}
	return r, nil
}

func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// dedupe returns the distinct ids in ascending order.
func dedupe(ids []uint64) []uint64 {
	sorted := append([]uint64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := sorted[:0]
	for i, id := range sorted {
		if i > 0 && sorted[i-1] == id {
			continue
		}
		out = append(out, id)
	}
	return out
}
