package delscript

import (
	"time"

	"github.com/google/uuid"

	"voxelchunks/internal/world/chunk"
)

// Record describes one generated script. It is what the audit log and the
// index store.
type Record struct {
	ID       string        `json:"id"`
	Time     time.Time     `json:"time"`
	Actor    string        `json:"actor,omitempty"`
	Dialect  string        `json:"dialect"`
	Path     string        `json:"path"`
	WorldDir string        `json:"world_dir"`
	Count    int           `json:"count"`
	Chunks   []chunk.Coord `json:"chunks"`
}

func NewRecord(actor string, d Dialect, path, worldDir string, chunks []chunk.Coord) Record {
	if worldDir == "" {
		worldDir = DefaultWorldDir
	}
	return Record{
		ID:       uuid.NewString(),
		Time:     time.Now().UTC(),
		Actor:    actor,
		Dialect:  d.String(),
		Path:     path,
		WorldDir: worldDir,
		Count:    len(chunks),
		Chunks:   chunks,
	}
}
