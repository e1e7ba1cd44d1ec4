// Package report formats chunk information for on-screen display.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"voxelchunks/internal/world/chunk"
	"voxelchunks/internal/world/chunkstore"
)

var ErrInvalidPage = errors.New("invalid page number")

const DefaultPerPage = 8

// ChunkInfo describes the chunk c under each storage generation.
func ChunkInfo(c chunk.Coord) []string {
	return []string{
		fmt.Sprintf("Chunk: %d, %d", c.X, c.Z),
		"Old format: " + chunkstore.LegacyPath(c),
		"McRegion: region/" + chunkstore.McRegionName(c),
	}
}

// Pager splits a listing into fixed-size pages. Command, if set, is shown as
// the way to reach the next page; "%page%" in it is replaced by the number.
type Pager struct {
	Title   string
	Command string
	PerPage int
}

// Pages returns the page count for n items; an empty listing still has one page.
func (p Pager) Pages(n int) int {
	per := p.perPage()
	if n <= 0 {
		return 1
	}
	return (n + per - 1) / per
}

// Page renders page (1-based) of items.
func (p Pager) Page(items []string, page int) ([]string, error) {
	pages := p.Pages(len(items))
	if page < 1 || page > pages {
		return nil, ErrInvalidPage
	}
	per := p.perPage()
	out := make([]string, 0, per+2)
	out = append(out, fmt.Sprintf("----- %s (page %d/%d) -----", p.Title, page, pages))
	if len(items) == 0 {
		return append(out, "No results found."), nil
	}
	start := (page - 1) * per
	end := start + per
	if end > len(items) {
		end = len(items)
	}
	out = append(out, items[start:end]...)
	if page < pages && p.Command != "" {
		out = append(out, "Next page: "+strings.ReplaceAll(p.Command, "%page%", strconv.Itoa(page+1)))
	}
	return out, nil
}

func (p Pager) perPage() int {
	if p.PerPage <= 0 {
		return DefaultPerPage
	}
	return p.PerPage
}

// ChunkList renders chunks as "(x, z)" entries, in the order given.
func ChunkList(chunks []chunk.Coord) []string {
	out := make([]string, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, c.String())
	}
	return out
}
