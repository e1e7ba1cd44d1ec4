// Package chunkstore derives on-disk artifact names for a chunk under each
// supported storage generation. Every function here is pure.
package chunkstore

import (
	"fmt"
	"strings"

	"voxelchunks/internal/world/chunk"
	"voxelchunks/internal/world/mathx"
)

type Generation int

const (
	// Legacy is one file per chunk, named without its bucket folders.
	Legacy Generation = iota + 1
	// LegacyBucketed is the legacy file beneath its two base-36 bucket folders.
	LegacyBucketed
	// McRegion groups 32x32 chunks into one region file.
	McRegion
)

func (g Generation) String() string {
	switch g {
	case Legacy:
		return "legacy"
	case LegacyBucketed:
		return "legacy-bucketed"
	case McRegion:
		return "mcregion"
	default:
		return fmt.Sprintf("generation(%d)", int(g))
	}
}

// Name returns the identifier for c under g.
func Name(g Generation, c chunk.Coord) (string, error) {
	switch g {
	case Legacy:
		return LegacyFilename(c), nil
	case LegacyBucketed:
		return LegacyPath(c), nil
	case McRegion:
		return McRegionName(c), nil
	default:
		return "", fmt.Errorf("unknown storage generation %d", int(g))
	}
}

// LegacyFilename is "c.<x36>.<z36>.dat".
func LegacyFilename(c chunk.Coord) string {
	return "c." + mathx.Base36(int(c.X)) + "." + mathx.Base36(int(c.Z)) + ".dat"
}

// LegacyPath is LegacyFilename under its bucket folders, always '/'-separated.
func LegacyPath(c chunk.Coord) string {
	bx, bz := c.Bucket()
	return mathx.Base36(bx) + "/" + mathx.Base36(bz) + "/" + LegacyFilename(c)
}

// McRegionName is "r.<rx>.<rz>.mcr" in decimal.
func McRegionName(c chunk.Coord) string {
	rx, rz := c.Region()
	return fmt.Sprintf("r.%d.%d.mcr", rx, rz)
}

// ParseLegacyFilename decodes a name produced by LegacyFilename. A bucketed
// path is accepted too; only its last segment is read.
func ParseLegacyFilename(name string) (chunk.Coord, error) {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if !strings.HasPrefix(name, "c.") || !strings.HasSuffix(name, ".dat") {
		return chunk.Coord{}, fmt.Errorf("not a legacy chunk file: %q", name)
	}
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(name, "c."), ".dat"), ".")
	if len(parts) != 2 {
		return chunk.Coord{}, fmt.Errorf("not a legacy chunk file: %q", name)
	}
	x, err := mathx.ParseBase36(parts[0])
	if err != nil {
		return chunk.Coord{}, fmt.Errorf("%s: x: %w", name, err)
	}
	z, err := mathx.ParseBase36(parts[1])
	if err != nil {
		return chunk.Coord{}, fmt.Errorf("%s: z: %w", name, err)
	}
	return chunk.At(int32(x), int32(z)), nil
}
