package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"voxelchunks/internal/delscript"
	"voxelchunks/internal/world/chunk"
	"voxelchunks/internal/world/chunkstore"
)

// SQLiteIndex is a queryable read model of generated deletion scripts. The
// zstd audit log stays the source of truth.
type SQLiteIndex struct {
	db   *sql.DB
	once sync.Once
}

// createdLayout is fixed-width so created_at sorts chronologically as text.
const createdLayout = "2006-01-02T15:04:05.000000000Z"

// ScriptRow is one indexed script.
type ScriptRow struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Actor     string `json:"actor"`
	Dialect   string `json:"dialect"`
	Path      string `json:"path"`
	WorldDir  string `json:"world_dir"`
	Chunks    int    `json:"chunks"`
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
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
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
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
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scripts (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			actor TEXT NOT NULL,
			dialect TEXT NOT NULL,
			path TEXT NOT NULL,
			world_dir TEXT NOT NULL,
			chunks INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_scripts_created ON scripts(created_at);`,
		`CREATE TABLE IF NOT EXISTS script_chunks (
			script_id TEXT NOT NULL REFERENCES scripts(id) ON DELETE CASCADE,
			x INTEGER NOT NULL,
			z INTEGER NOT NULL,
			legacy_file TEXT NOT NULL,
			region_file TEXT NOT NULL,
			PRIMARY KEY (script_id, x, z)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_script_chunks_pos ON script_chunks(x, z);`,
		`INSERT OR IGNORE INTO meta(key,value) VALUES('schema_version','1');`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		err = s.db.Close()
	})
	return err
}

// RecordScript stores r and one row per chunk in a single transaction.
func (s *SQLiteIndex) RecordScript(r delscript.Record) error {
	if s == nil {
		return nil
	}
	ctx := context.Background()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	created := r.Time
	if created.IsZero() {
		created = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO scripts(id,created_at,actor,dialect,path,world_dir,chunks) VALUES(?,?,?,?,?,?,?)`,
		r.ID, created.UTC().Format(createdLayout), r.Actor, r.Dialect, r.Path, r.WorldDir, len(r.Chunks),
	); err != nil {
		return fmt.Errorf("insert script: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO script_chunks(script_id,x,z,legacy_file,region_file) VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, c := range r.Chunks {
		if _, err := stmt.ExecContext(ctx, r.ID, c.X, c.Z, chunkstore.LegacyFilename(c), chunkstore.McRegionName(c)); err != nil {
			return fmt.Errorf("insert chunk %v: %w", c, err)
		}
	}
	return tx.Commit()
}

// Recent returns the newest scripts first.
func (s *SQLiteIndex) Recent(ctx context.Context, limit int) ([]ScriptRow, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryScripts(ctx,
		`SELECT id,created_at,actor,dialect,path,world_dir,chunks FROM scripts ORDER BY created_at DESC LIMIT ?`, limit)
}

// ScriptsForChunk returns the scripts that included c, newest first.
func (s *SQLiteIndex) ScriptsForChunk(ctx context.Context, c chunk.Coord) ([]ScriptRow, error) {
	return s.queryScripts(ctx,
		`SELECT s.id,s.created_at,s.actor,s.dialect,s.path,s.world_dir,s.chunks
		 FROM scripts s JOIN script_chunks sc ON sc.script_id = s.id
		 WHERE sc.x = ? AND sc.z = ? ORDER BY s.created_at DESC`, c.X, c.Z)
}

// Chunks returns the chunks of one script sorted by x, then z.
func (s *SQLiteIndex) Chunks(ctx context.Context, scriptID string) ([]chunk.Coord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT x,z FROM script_chunks WHERE script_id = ? ORDER BY x, z`, scriptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []chunk.Coord
	for rows.Next() {
		var c chunk.Coord
		if err := rows.Scan(&c.X, &c.Z); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteIndex) queryScripts(ctx context.Context, q string, args ...any) ([]ScriptRow, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ScriptRow
	for rows.Next() {
		var r ScriptRow
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Actor, &r.Dialect, &r.Path, &r.WorldDir, &r.Chunks); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
