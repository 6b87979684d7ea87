package multiview

import "github.com/dkeye/Multiview/internal/domain"

// RecencySet is a bounded MRU list over a flat array. Index 0 is the most
// recently referenced source, index Len()-1 the eviction candidate.
// Not safe for concurrent use.
type RecencySet struct {
	items []domain.MediaSourceID
	n     int
}

func NewRecencySet(capacity int) *RecencySet {
	if capacity < 0 {
		capacity = 0
	}
	return &RecencySet{items: make([]domain.MediaSourceID, capacity)}
}

func (s *RecencySet) Cap() int { return len(s.items) }
func (s *RecencySet) Len() int { return s.n }

func (s *RecencySet) index(msi domain.MediaSourceID) int {
	for i := 0; i < s.n; i++ {
		if s.items[i] == msi {
			return i
		}
	}
	return -1
}

func (s *RecencySet) Contains(msi domain.MediaSourceID) bool {
	return s.index(msi) >= 0
}

// TouchOrInsert moves msi to the front, inserting it if absent. When msi was
// absent and the set was full, the least recent entry is dropped and returned.
func (s *RecencySet) TouchOrInsert(msi domain.MediaSourceID) (domain.MediaSourceID, bool) {
	if len(s.items) == 0 {
		return domain.NoMediaSource, false
	}
	if s.n > 0 && s.items[0] == msi {
		return domain.NoMediaSource, false
	}
	if i := s.index(msi); i > 0 {
		copy(s.items[1:i+1], s.items[:i])
		s.items[0] = msi
		return domain.NoMediaSource, false
	}

	evicted, ok := domain.NoMediaSource, false
	if s.n == len(s.items) {
		evicted, ok = s.items[s.n-1], true
		s.n--
	}
	copy(s.items[1:s.n+1], s.items[:s.n])
	s.items[0] = msi
	s.n++
	return evicted, ok
}

// Remove drops msi and closes the gap.
func (s *RecencySet) Remove(msi domain.MediaSourceID) bool {
	i := s.index(msi)
	if i < 0 {
		return false
	}
	copy(s.items[i:s.n-1], s.items[i+1:s.n])
	s.n--
	return true
}

// Items returns the entries, most recent first.
func (s *RecencySet) Items() []domain.MediaSourceID {
	out := make([]domain.MediaSourceID, s.n)
	copy(out, s.items[:s.n])
	return out
}

func (s *RecencySet) Clear() { s.n = 0 }
