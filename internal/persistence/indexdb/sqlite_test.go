package indexdb

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"voxelchunks/internal/delscript"
	"voxelchunks/internal/world/chunk"
)

func TestSQLiteIndex_RecordScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index", "delchunks.sqlite")

	idx, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	rec := delscript.NewRecord("op", delscript.Posix, "worldedit-delchunks.sh", "", []chunk.Coord{chunk.At(1, 0), chunk.At(0, 0), chunk.At(-33, 5)})
	if err := idx.RecordScript(rec); err != nil {
		t.Fatalf("RecordScript: %v", err)
	}

	ctx := context.Background()
	recent, err := idx.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != rec.ID || recent[0].Chunks != 3 || recent[0].Dialect != "bash" || recent[0].WorldDir != "world" {
		t.Fatalf("recent mismatch: %+v", recent)
	}
	got, err := idx.Chunks(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Chunks: %v", err)
	}
	want := []chunk.Coord{chunk.At(-33, 5), chunk.At(0, 0), chunk.At(1, 0)}
	if len(got) != len(want) {
		t.Fatalf("chunks=%v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("chunks[%d]=%v want %v", i, got[i], want[i])
		}
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()
	var legacy, region string
	row := db.QueryRow(`SELECT legacy_file,region_file FROM script_chunks WHERE script_id=? AND x=-33 AND z=5`, rec.ID)
	if err := row.Scan(&legacy, &region); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if legacy != "c.-x.5.dat" || region != "r.-2.0.mcr" {
		t.Fatalf("row mismatch: legacy=%q region=%q", legacy, region)
	}
}

func TestSQLiteIndex_ScriptsForChunk(t *testing.T) {
	idx, err := OpenSQLite(filepath.Join(t.TempDir(), "i.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer idx.Close()

	older := delscript.NewRecord("a", delscript.Windows, "a.bat", "", []chunk.Coord{chunk.At(2, 2)})
	older.Time = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := delscript.NewRecord("b", delscript.Posix, "b.sh", "", []chunk.Coord{chunk.At(2, 2), chunk.At(3, 3)})
	newer.Time = older.Time.Add(time.Hour)
	other := delscript.NewRecord("c", delscript.Posix, "c.sh", "", []chunk.Coord{chunk.At(9, 9)})
	for _, r := range []delscript.Record{older, newer, other} {
		if err := idx.RecordScript(r); err != nil {
			t.Fatalf("RecordScript: %v", err)
		}
	}

	rows, err := idx.ScriptsForChunk(context.Background(), chunk.At(2, 2))
	if err != nil {
		t.Fatalf("ScriptsForChunk: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != newer.ID || rows[1].ID != older.ID {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSQLiteIndex_NilIsNoop(t *testing.T) {
	var idx *SQLiteIndex
	if err := idx.RecordScript(delscript.Record{ID: "x"}); err != nil {
		t.Fatalf("nil index RecordScript: %v", err)
	}
}
