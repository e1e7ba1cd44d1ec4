package main

import (
	"testing"

	"voxelchunks/internal/world/chunk"
)

func TestParseChunkXZ(t *testing.T) {
	c, err := parseChunkXZ(" -3, 12")
	if err != nil || c != chunk.At(-3, 12) {
		t.Fatalf("parseChunkXZ=%v err=%v", c, err)
	}
	for _, bad := range []string{"", "1", "1,2,3", "a,b"} {
		if _, err := parseChunkXZ(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestListPageCommand(t *testing.T) {
	if got := listPageCommand("sel.json", ""); got != "delchunks listchunks -selection sel.json -page %page%" {
		t.Fatalf("got %q", got)
	}
	if got := listPageCommand("", "0,0,0:1,1,1"); got != "delchunks listchunks -aabb 0,0,0:1,1,1 -page %page%" {
		t.Fatalf("got %q", got)
	}
	if listPageCommand("", "") != "" {
		t.Fatalf("expected no page command")
	}
}
