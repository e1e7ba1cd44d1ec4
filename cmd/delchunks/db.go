package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"voxelchunks/internal/persistence/indexdb"
	persistlog "voxelchunks/internal/persistence/log"
	"voxelchunks/internal/selection"
	"voxelchunks/internal/world/chunk"
)

func historyCmd(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to delchunks.yaml (optional)")
	dbPath := fs.String("db", "", "sqlite index path (default: index_db from config)")
	limit := fs.Int("limit", 20, "result limit")
	at := fs.String("chunk", "", "only scripts that included chunk x,z")
	id := fs.String("id", "", "list the chunks of one script")
	_ = fs.Parse(args)

	path := strings.TrimSpace(*dbPath)
	if path == "" {
		path = loadConfig(*cfgPath).IndexDB
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "missing -db (index_db is disabled in config)")
		os.Exit(2)
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	idx, err := indexdb.OpenSQLite(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer idx.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	if strings.TrimSpace(*id) != "" {
		coords, err := idx.Chunks(ctx, *id)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		for _, c := range coords {
			_ = enc.Encode(c)
		}
		return
	}

	var rows []indexdb.ScriptRow
	if strings.TrimSpace(*at) != "" {
		c, err := parseChunkXZ(*at)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bad -chunk:", err)
			os.Exit(2)
		}
		rows, err = idx.ScriptsForChunk(ctx, c)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
	} else {
		rows, err = idx.Recent(ctx, *limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
	}
	for _, r := range rows {
		_ = enc.Encode(r)
	}
}

func auditCmd(args []string) {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	cfgPath := fs.String("config", "", "path to delchunks.yaml (optional)")
	dir := fs.String("dir", "", "audit directory (default: audit_dir from config)")
	_ = fs.Parse(args)

	d := strings.TrimSpace(*dir)
	if d == "" {
		d = loadConfig(*cfgPath).AuditDir
	}
	recs, err := persistlog.ReadAudit(d)
	if len(recs) == 0 && err == nil {
		fmt.Println("no audit entries")
		return
	}
	for _, r := range recs {
		fmt.Printf("%s %s actor=%s dialect=%s chunks=%d path=%s\n",
			r.Time.Format(time.RFC3339), r.ID, r.Actor, r.Dialect, r.Count, r.Path)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "read audit:", err)
		os.Exit(1)
	}
}

func parseChunkXZ(s string) (chunk.Coord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return chunk.Coord{}, fmt.Errorf("expected x,z")
	}
	v, err := selection.ParseVec3(parts[0] + ",0," + parts[1])
	if err != nil {
		return chunk.Coord{}, err
	}
	return chunk.At(int32(v[0]), int32(v[2])), nil
}
