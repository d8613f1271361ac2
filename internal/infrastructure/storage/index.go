package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSaves - в индексе нет ни одного сейва
var ErrNoSaves = errors.New("no saves")

// SlotEntry - строка индекса: где лежит слот и что в нем
type SlotEntry struct {
	ID      string
	Path    string
	Seed    int64
	Depth   int
	Round   int
	Level   int
	SavedAt time.Time
}

// Index - побочный sqlite-индекс слотов. Файлы сейвов первичны, индекс
// нужен только для списка и поиска последнего.
type Index struct {
	db *sql.DB
}

func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty index path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS slots (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			seed INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			round INTEGER NOT NULL,
			level INTEGER NOT NULL,
			saved_at TEXT NOT NULL,
			seq INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_slots_seq ON slots(seq);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Record добавляет слот или обновляет его. seq растет с каждой записью,
// по нему определяется последний сейв (время может совпасть).
func (x *Index) Record(ctx context.Context, e SlotEntry) error {
	_, err := x.db.ExecContext(ctx, `
		INSERT INTO slots (id, path, seed, depth, round, level, saved_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM slots))
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			seed = excluded.seed,
			depth = excluded.depth,
			round = excluded.round,
			level = excluded.level,
			saved_at = excluded.saved_at,
			seq = excluded.seq`,
		e.ID, e.Path, e.Seed, e.Depth, e.Round, e.Level, e.SavedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record slot %s: %w", e.ID, err)
	}
	return nil
}

// Latest - последний записанный слот
func (x *Index) Latest(ctx context.Context) (SlotEntry, error) {
	rows, err := x.query(ctx, `ORDER BY seq DESC LIMIT 1`)
	if err != nil {
		return SlotEntry{}, err
	}
	if len(rows) == 0 {
		return SlotEntry{}, ErrNoSaves
	}
	return rows[0], nil
}

// List - все слоты, свежие первыми
func (x *Index) List(ctx context.Context) ([]SlotEntry, error) {
	return x.query(ctx, `ORDER BY seq DESC`)
}

// FindByPath ищет слот по пути файла
func (x *Index) FindByPath(ctx context.Context, path string) (SlotEntry, error) {
	rows, err := x.query(ctx, `WHERE path = ? LIMIT 1`, path)
	if err != nil {
		return SlotEntry{}, err
	}
	if len(rows) == 0 {
		return SlotEntry{}, ErrNoSaves
	}
	return rows[0], nil
}

func (x *Index) query(ctx context.Context, tail string, args ...any) ([]SlotEntry, error) {
	rows, err := x.db.QueryContext(ctx,
		`SELECT id, path, seed, depth, round, level, saved_at FROM slots `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("query slots: %w", err)
	}
	defer rows.Close()

	var out []SlotEntry
	for rows.Next() {
		var e SlotEntry
		var savedAt string
		if err := rows.Scan(&e.ID, &e.Path, &e.Seed, &e.Depth, &e.Round, &e.Level, &savedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		if e.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
			return nil, fmt.Errorf("slot %s saved_at: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (x *Index) Close() error {
	if x == nil || x.db == nil {
		return nil
	}
	return x.db.Close()
}
