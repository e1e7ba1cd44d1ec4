// Package chunk holds chunk-grid coordinates and the arithmetic that maps block
// positions onto them.
package chunk

import (
	"errors"
	"fmt"
	"math"

	"voxelchunks/internal/world/mathx"
)

const (
	// Size is the edge length of a chunk column in blocks.
	Size = 16
	// BucketDivisor is the folder fan-out of the legacy per-chunk layout.
	BucketDivisor = 64
	// RegionSize is the number of chunks along one edge of a McRegion file.
	RegionSize = 32
)

// Coord identifies a 16x16 column of blocks. It is comparable and safe to use
// as a map key.
type Coord struct {
	X int32 `json:"x"`
	Z int32 `json:"z"`
}

// ErrBlockRange is returned for block coordinates outside the int32 range.
var ErrBlockRange = errors.New("block coordinate out of range")

// CheckBlock reports whether (x, z) can be mapped by FromBlock.
func CheckBlock(x, z int) error {
	if x < math.MinInt32 || x > math.MaxInt32 || z < math.MinInt32 || z > math.MaxInt32 {
		return fmt.Errorf("%w: %d, %d", ErrBlockRange, x, z)
	}
	return nil
}

func At(x, z int32) Coord { return Coord{X: x, Z: z} }

// FromBlock returns the chunk containing the block at (x, z). Negative
// coordinates floor toward negative infinity: block -1 is in chunk -1.
// x and z must pass CheckBlock.
func FromBlock(x, z int) Coord {
	return Coord{
		X: int32(mathx.FloorDiv(x, Size)),
		Z: int32(mathx.FloorDiv(z, Size)),
	}
}

// Bucket returns the legacy folder bucket for c, each axis in [0, 64).
func (c Coord) Bucket() (int, int) {
	return mathx.Mod(int(c.X), BucketDivisor), mathx.Mod(int(c.Z), BucketDivisor)
}

// Region returns the McRegion file coordinate containing c.
func (c Coord) Region() (int, int) {
	return mathx.FloorDiv(int(c.X), RegionSize), mathx.FloorDiv(int(c.Z), RegionSize)
}

// MinBlock is the block-space corner with the smallest x and z in c.
func (c Coord) MinBlock() (int, int) {
	return int(c.X) * Size, int(c.Z) * Size
}

func (c Coord) Less(o Coord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Z < o.Z
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Z)
}
