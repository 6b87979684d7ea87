package multiview

import (
	"testing"

	"github.com/dkeye/Multiview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(v ...int) []domain.MediaSourceID {
	out := make([]domain.MediaSourceID, len(v))
	for i, x := range v {
		out[i] = domain.MediaSourceID(x)
	}
	return out
}

func TestRecencyInsertUntilFull(t *testing.T) {
	t.Parallel()
	s := NewRecencySet(3)

	for _, msi := range ids(1, 2, 3) {
		_, evicted := s.TouchOrInsert(msi)
		assert.False(t, evicted)
	}
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, ids(3, 2, 1), s.Items())
}

func TestRecencyTouchMovesToFront(t *testing.T) {
	t.Parallel()
	s := NewRecencySet(4)
	for _, msi := range ids(1, 2, 3, 4) {
		s.TouchOrInsert(msi)
	}

	_, evicted := s.TouchOrInsert(2)
	assert.False(t, evicted, "touching a present source never evicts")
	assert.Equal(t, ids(2, 4, 3, 1), s.Items())

	_, evicted = s.TouchOrInsert(2)
	assert.False(t, evicted)
	assert.Equal(t, ids(2, 4, 3, 1), s.Items(), "touching the front is a no-op")
}

func TestRecencyEvictsLeastRecent(t *testing.T) {
	t.Parallel()
	s := NewRecencySet(2)

	s.TouchOrInsert(1) // A
	s.TouchOrInsert(2) // B
	s.TouchOrInsert(1) // A again

	evicted, ok := s.TouchOrInsert(3) // C
	require.True(t, ok)
	assert.Equal(t, domain.MediaSourceID(2), evicted)
	assert.Equal(t, ids(3, 1), s.Items())
	assert.Equal(t, 2, s.Len())
}

func TestRecencyRemove(t *testing.T) {
	t.Parallel()
	s := NewRecencySet(4)
	for _, msi := range ids(1, 2, 3, 4) {
		s.TouchOrInsert(msi)
	}

	assert.True(t, s.Remove(3))
	assert.Equal(t, ids(4, 2, 1), s.Items())
	assert.False(t, s.Remove(3))
	assert.False(t, s.Contains(3))

	assert.True(t, s.Remove(1))
	assert.True(t, s.Remove(4))
	assert.Equal(t, ids(2), s.Items())

	_, evicted := s.TouchOrInsert(5)
	assert.False(t, evicted)
	assert.Equal(t, ids(5, 2), s.Items())
}

func TestRecencyZeroCapacity(t *testing.T) {
	t.Parallel()
	s := NewRecencySet(0)

	_, evicted := s.TouchOrInsert(1)
	assert.False(t, evicted)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Remove(1))

	assert.Equal(t, 0, NewRecencySet(-3).Cap())
}

func TestRecencyNeverExceedsCapacity(t *testing.T) {
	t.Parallel()
	s := NewRecencySet(3)
	seen := map[domain.MediaSourceID]bool{}

	for i := 0; i < 200; i++ {
		msi := domain.MediaSourceID((i * 7) % 11)
		wasPresent := s.Contains(msi)
		full := s.Len() == s.Cap()
		evicted, ok := s.TouchOrInsert(msi)

		require.LessOrEqual(t, s.Len(), s.Cap())
		require.Equal(t, msi, s.Items()[0])
		require.Equal(t, !wasPresent && full, ok, "eviction only for absent sources on a full set")
		if ok {
			require.False(t, s.Contains(evicted))
		}
		seen[msi] = true
	}
	assert.Len(t, seen, 11)
}

func TestRecencyClear(t *testing.T) {
	t.Parallel()
	s := NewRecencySet(2)
	s.TouchOrInsert(1)
	s.TouchOrInsert(2)
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Items())
}
