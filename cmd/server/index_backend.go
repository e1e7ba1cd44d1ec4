package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"voxelchunks/internal/commands"
	"voxelchunks/internal/config"
	"voxelchunks/internal/persistence/indexdb"
	persistlog "voxelchunks/internal/persistence/log"
)

type closer interface{ Close() error }

// openRecorders builds the audit log and, unless disabled, the index backend.
// VC_INDEX_BACKEND selects the backend: sqlite (default) or none.
func openRecorders(cfg config.Config, disableDB bool, logger *log.Logger) ([]commands.Recorder, []closer, error) {
	var (
		recs    []commands.Recorder
		closers []closer
	)
	if cfg.AuditDir != "" {
		audit := persistlog.NewAuditLogger(cfg.AuditDir)
		recs = append(recs, audit)
		closers = append(closers, audit)
	}
	if disableDB || cfg.IndexDB == "" {
		return recs, closers, nil
	}

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("VC_INDEX_BACKEND")))
	if backend == "" {
		backend = "sqlite"
	}
	switch backend {
	case "none", "off", "disabled":
		return recs, closers, nil
	case "sqlite":
		idx, err := indexdb.OpenSQLite(cfg.IndexDB)
		if err != nil {
			return recs, closers, err
		}
		logger.Printf("index backend: sqlite %s", cfg.IndexDB)
		return append(recs, idx), append(closers, idx), nil
	default:
		return recs, closers, fmt.Errorf("unsupported VC_INDEX_BACKEND: %s", backend)
	}
}
