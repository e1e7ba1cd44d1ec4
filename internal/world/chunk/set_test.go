package chunk

import "testing"

func TestSet_DeduplicatesAndSorts(t *testing.T) {
	s := NewSet(At(1, 0), At(0, 1), At(0, 0), At(1, 0), At(0, 1))
	if s.Len() != 3 {
		t.Fatalf("len=%d want 3", s.Len())
	}
	got := s.Sorted()
	want := []Coord{At(0, 0), At(0, 1), At(1, 0)}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted[%d]=%v want %v", i, got[i], want[i])
		}
	}
	if s.Add(At(0, 0)) {
		t.Fatalf("Add of existing coordinate should report false")
	}
}

func TestSet_OrderIndependent(t *testing.T) {
	a := NewSet(At(-1, 2), At(3, -4), At(0, 0))
	var b Set
	b.Add(At(0, 0))
	b.Add(At(3, -4))
	b.Add(At(-1, 2))
	if !a.Equal(&b) {
		t.Fatalf("sets with the same members should be equal")
	}
	as, bs := a.Sorted(), b.Sorted()
	for i := range as {
		if as[i] != bs[i] {
			t.Fatalf("sorted order differs at %d: %v vs %v", i, as[i], bs[i])
		}
	}
}

func TestSet_NilIsEmpty(t *testing.T) {
	var s *Set
	if s.Len() != 0 || s.Contains(At(0, 0)) || s.Sorted() != nil {
		t.Fatalf("nil set should behave as empty")
	}
}
