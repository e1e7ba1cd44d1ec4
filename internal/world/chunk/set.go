package chunk

import "sort"

// Set is a duplicate-free collection of chunk coordinates. The zero value is
// ready to use. Iteration via Sorted is ordered by x, then z, so anything
// rendered from a Set is reproducible for equal contents.
type Set struct {
	m map[Coord]struct{}
}

func NewSet(coords ...Coord) *Set {
	s := &Set{m: make(map[Coord]struct{}, len(coords))}
	for _, c := range coords {
		s.m[c] = struct{}{}
	}
	return s
}

// Add inserts c and reports whether it was not already present.
func (s *Set) Add(c Coord) bool {
	if s.m == nil {
		s.m = map[Coord]struct{}{}
	}
	if _, ok := s.m[c]; ok {
		return false
	}
	s.m[c] = struct{}{}
	return true
}

func (s *Set) Contains(c Coord) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[c]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

func (s *Set) Sorted() []Coord {
	if s == nil {
		return nil
	}
	out := make([]Coord, 0, len(s.m))
	for c := range s.m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Equal reports whether both sets hold exactly the same coordinates.
func (s *Set) Equal(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	if s == nil {
		return true
	}
	for c := range s.m {
		if !o.Contains(c) {
			return false
		}
	}
	return true
}
