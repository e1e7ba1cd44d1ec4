package chunk

import (
	"errors"
	"testing"
)

func TestFromBlock_FloorsNegative(t *testing.T) {
	cases := []struct {
		x, z int
		want Coord
	}{
		{0, 0, At(0, 0)},
		{15, 15, At(0, 0)},
		{16, -16, At(1, -1)},
		{-1, -1, At(-1, -1)},
		{-17, 31, At(-2, 1)},
		{80, -40, At(5, -3)},
	}
	for _, c := range cases {
		if got := FromBlock(c.x, c.z); got != c.want {
			t.Fatalf("FromBlock(%d,%d)=%v want %v", c.x, c.z, got, c.want)
		}
	}
}

func TestBucket_InRange(t *testing.T) {
	for x := int32(-200); x <= 200; x += 7 {
		bx, bz := At(x, -x).Bucket()
		if bx < 0 || bx >= BucketDivisor || bz < 0 || bz >= BucketDivisor {
			t.Fatalf("bucket out of range for %d: (%d,%d)", x, bx, bz)
		}
	}
	if bx, bz := At(5, -3).Bucket(); bx != 5 || bz != 61 {
		t.Fatalf("bucket(5,-3)=(%d,%d) want (5,61)", bx, bz)
	}
	if bx, _ := At(-1, 0).Bucket(); bx != 63 {
		t.Fatalf("bucket x for -1 = %d want 63", bx)
	}
}

func TestRegion(t *testing.T) {
	cases := []struct {
		c      Coord
		rx, rz int
	}{
		{At(0, 0), 0, 0},
		{At(31, 32), 0, 1},
		{At(-1, -32), -1, -1},
		{At(-33, 64), -2, 2},
	}
	for _, c := range cases {
		rx, rz := c.c.Region()
		if rx != c.rx || rz != c.rz {
			t.Fatalf("Region(%v)=(%d,%d) want (%d,%d)", c.c, rx, rz, c.rx, c.rz)
		}
	}
}

func TestCoordString(t *testing.T) {
	if s := At(-4, 12).String(); s != "(-4, 12)" {
		t.Fatalf("String()=%q", s)
	}
}

func TestCheckBlock(t *testing.T) {
	if err := CheckBlock(-2147483648, 2147483647); err != nil {
		t.Fatalf("int32 bounds rejected: %v", err)
	}
	if err := CheckBlock(1<<36, 0); !errors.Is(err, ErrBlockRange) {
		t.Fatalf("x: err=%v", err)
	}
	if err := CheckBlock(0, -1<<40); !errors.Is(err, ErrBlockRange) {
		t.Fatalf("z: err=%v", err)
	}
}
