// Package commands implements the chunk commands at the operator boundary:
// every failure is turned into a message for the actor and also returned so
// callers can attach a protocol code.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"voxelchunks/internal/config"
	"voxelchunks/internal/delscript"
	"voxelchunks/internal/protocol"
	"voxelchunks/internal/report"
	"voxelchunks/internal/selection"
	"voxelchunks/internal/world/chunk"
)

// ScriptError is an I/O failure while writing a deletion script.
type ScriptError struct {
	Path string
	Err  error
}

func (e *ScriptError) Error() string { return "write " + e.Path + ": " + e.Err.Error() }
func (e *ScriptError) Unwrap() error { return e.Err }

const (
	msgMcRegionNote    = "Note that this command does not yet support the mcregion format."
	msgDialectRequired = "Shell script type must be configured: 'bat' or 'bash' expected."
	msgNoSelection     = "Make a region selection first."
	msgInvalidPage     = "Invalid page number."
	msgBadConfig       = "Configuration error: "
	msgWritten         = "%s written. Run it when no one is near the region."
	msgChmod           = "You will have to chmod it to be executable."
)

// Actor receives command output.
type Actor interface {
	Name() string
	Print(msg string)
	PrintError(msg string)
}

// Player is an actor standing somewhere in the world.
type Player interface {
	Actor
	BlockPosition() (x, y, z int)
}

// Recorder is told about every script written.
type Recorder interface {
	RecordScript(r delscript.Record) error
}

type ChunkCommands struct {
	cfg       config.Config
	log       *log.Logger
	recorders []Recorder

	// PageCommand is shown as the way to reach the next listing page.
	PageCommand string
}

func New(cfg config.Config, logger *log.Logger, recorders ...Recorder) *ChunkCommands {
	cfg.Normalize()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ChunkCommands{
		cfg:         cfg,
		log:         logger,
		recorders:   recorders,
		PageCommand: "/listchunks %page%",
	}
}

func (c *ChunkCommands) Config() config.Config { return c.cfg }

// ChunkInfo prints where the chunk the player stands in lives on disk.
func (c *ChunkCommands) ChunkInfo(p Player) chunk.Coord {
	x, _, z := p.BlockPosition()
	ch := chunk.FromBlock(x, z)
	for _, l := range report.ChunkInfo(ch) {
		p.Print(l)
	}
	return ch
}

// ListChunks prints one page of the chunks in sel.
func (c *ChunkCommands) ListChunks(a Actor, sel selection.Selection, page int) error {
	set, err := selection.Resolve(sel)
	if err != nil {
		c.fail(a, err)
		return err
	}
	pager := report.Pager{Title: "Selected Chunks", Command: c.PageCommand, PerPage: c.cfg.PageSize}
	lines, err := pager.Page(report.ChunkList(set.Sorted()), page)
	if err != nil {
		c.fail(a, err)
		return err
	}
	for _, l := range lines {
		a.Print(l)
	}
	return nil
}

// DeleteChunks writes a deletion script for the chunks in sel and returns
// its path.
func (c *ChunkCommands) DeleteChunks(a Actor, sel selection.Selection) (string, error) {
	a.Print(msgMcRegionNote)

	set, err := selection.Resolve(sel)
	if err != nil {
		c.fail(a, err)
		return "", err
	}
	d, err := c.cfg.Dialect()
	if err != nil {
		c.fail(a, err)
		return "", err
	}
	if err := c.cfg.Validate(); err != nil {
		c.fail(a, err)
		return "", err
	}

	path := filepath.Join(c.cfg.OutputDir, d.FileName())
	if err := delscript.Generate(set, d, path, c.cfg.WorldDir); err != nil {
		serr := &ScriptError{Path: path, Err: err}
		c.fail(a, serr)
		return "", serr
	}

	a.Print(fmt.Sprintf(msgWritten, path))
	if d == delscript.Posix {
		a.Print(msgChmod)
	}
	c.log.Printf("delchunks: actor=%s dialect=%s chunks=%d path=%s", a.Name(), d, set.Len(), path)

	rec := delscript.NewRecord(a.Name(), d, path, c.cfg.WorldDir, set.Sorted())
	for _, r := range c.recorders {
		if r == nil {
			continue
		}
		if err := r.RecordScript(rec); err != nil {
			c.log.Printf("delchunks: record script %s: %v", rec.ID, err)
		}
	}
	return path, nil
}

func (c *ChunkCommands) fail(a Actor, err error) {
	a.PrintError(Message(err))
}

// Message is the operator-facing text for err.
func Message(err error) string {
	switch {
	case errors.Is(err, selection.ErrNoSelection):
		return msgNoSelection
	case errors.Is(err, delscript.ErrDialectUnset), errors.Is(err, delscript.ErrDialectUnknown):
		return msgDialectRequired
	case errors.Is(err, report.ErrInvalidPage):
		return msgInvalidPage
	case errors.Is(err, config.ErrInvalid), errors.Is(err, delscript.ErrWorldDir):
		return msgBadConfig + err.Error()
	}
	var serr *ScriptError
	if errors.As(err, &serr) {
		return "Error occurred: " + serr.Err.Error()
	}
	return "Error occurred: " + err.Error()
}

// Code maps err to a protocol error code.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, selection.ErrNoSelection):
		return protocol.ErrNoSelection
	case errors.Is(err, delscript.ErrDialectUnset), errors.Is(err, delscript.ErrDialectUnknown),
		errors.Is(err, config.ErrInvalid), errors.Is(err, delscript.ErrWorldDir):
		return protocol.ErrConfig
	case errors.Is(err, report.ErrInvalidPage):
		return protocol.ErrInvalidPage
	}
	var serr *ScriptError
	if errors.As(err, &serr) {
		return protocol.ErrIO
	}
	return protocol.ErrInternal
}
