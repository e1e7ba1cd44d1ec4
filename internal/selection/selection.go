// Package selection resolves an operator's world selection into the set of
// chunk columns it covers.
package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"voxelchunks/internal/world/chunk"
)

var ErrNoSelection = errors.New("no selection")

// MaxCuboidChunks bounds the number of chunk columns a cuboid may cover.
const MaxCuboidChunks = 1 << 20

// Selection is owned by the session layer. Chunks may return coordinates in
// any order and with repeats.
type Selection interface {
	Chunks() ([]chunk.Coord, error)
}

// Resolve returns the duplicate-free chunk set covered by sel. Errors from
// the selection itself are returned unchanged.
func Resolve(sel Selection) (*chunk.Set, error) {
	if sel == nil {
		return nil, ErrNoSelection
	}
	coords, err := sel.Chunks()
	if err != nil {
		return nil, err
	}
	return chunk.NewSet(coords...), nil
}

// ChunkList is a selection given directly as chunk coordinates.
type ChunkList []chunk.Coord

func (l ChunkList) Chunks() ([]chunk.Coord, error) {
	if len(l) == 0 {
		return nil, ErrNoSelection
	}
	return l, nil
}

// Cuboid is an axis-aligned block region with inclusive corners. Only x and z
// matter for chunk coverage.
type Cuboid struct {
	Min [3]int
	Max [3]int
}

func NewCuboid(a, b [3]int) Cuboid {
	var c Cuboid
	for i := 0; i < 3; i++ {
		if a[i] <= b[i] {
			c.Min[i], c.Max[i] = a[i], b[i]
		} else {
			c.Min[i], c.Max[i] = b[i], a[i]
		}
	}
	return c
}

func (c Cuboid) Chunks() ([]chunk.Coord, error) {
	for _, v := range [][3]int{c.Min, c.Max} {
		if err := chunk.CheckBlock(v[0], v[2]); err != nil {
			return nil, err
		}
	}
	lo := chunk.FromBlock(c.Min[0], c.Min[2])
	hi := chunk.FromBlock(c.Max[0], c.Max[2])
	if hi.X < lo.X || hi.Z < lo.Z {
		return nil, fmt.Errorf("cuboid corners are not ordered: %v %v", c.Min, c.Max)
	}
	n := (int64(hi.X) - int64(lo.X) + 1) * (int64(hi.Z) - int64(lo.Z) + 1)
	if n > MaxCuboidChunks {
		return nil, fmt.Errorf("cuboid covers %d chunks (max %d)", n, MaxCuboidChunks)
	}
	out := make([]chunk.Coord, 0, n)
	for x := int64(lo.X); x <= int64(hi.X); x++ {
		for z := int64(lo.Z); z <= int64(hi.Z); z++ {
			out = append(out, chunk.At(int32(x), int32(z)))
		}
	}
	return out, nil
}

// ParseAABB reads "x1,y1,z1:x2,y2,z2" into a cuboid.
func ParseAABB(s string) (Cuboid, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Cuboid{}, fmt.Errorf("expected x1,y1,z1:x2,y2,z2")
	}
	a, err := ParseVec3(parts[0])
	if err != nil {
		return Cuboid{}, err
	}
	b, err := ParseVec3(parts[1])
	if err != nil {
		return Cuboid{}, err
	}
	return NewCuboid(a, b), nil
}

func ParseVec3(s string) ([3]int, error) {
	var v [3]int
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("expected x,y,z")
	}
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseInt(strings.TrimSpace(parts[i]), 10, 32)
		if err != nil {
			return v, err
		}
		v[i] = int(n)
	}
	return v, nil
}
