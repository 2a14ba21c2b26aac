package recency

// boundedSet is an insertion-ordered set with FIFO eviction.
type boundedSet struct {
	capacity int
	order    []string
	members  map[string]struct{}
}

func newBoundedSet(capacity int) *boundedSet {
	return &boundedSet{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		members:  make(map[string]struct{}, capacity),
	}
}

func (s *boundedSet) contains(v string) bool {
	_, ok := s.members[v]
	return ok
}

func (s *boundedSet) insert(v string) {
	if s.contains(v) {
		return
	}
	s.order = append(s.order, v)
	s.members[v] = struct{}{}
	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.members, oldest)
	}
}

func (s *boundedSet) len() int {
	return len(s.order)
}

func (s *boundedSet) items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
