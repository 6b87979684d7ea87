package multiview

import (
	"errors"
	"sync"
	"testing"

	"github.com/dkeye/Multiview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionTableAssignLookup(t *testing.T) {
	t.Parallel()
	tb := NewSubscriptionTable()

	tb.Assign(10, 0)
	tb.Assign(11, 1)
	tb.Assign(10, 0) // same pair again is fine

	socket, ok := tb.Lookup(10)
	require.True(t, ok)
	assert.Equal(t, domain.SocketID(0), socket)
	assert.Equal(t, 2, tb.Len())
	assert.Equal(t, []domain.Subscription{{Source: 10, Socket: 0}, {Source: 11, Socket: 1}}, tb.Snapshot())

	socket, ok = tb.Unassign(10)
	require.True(t, ok)
	assert.Equal(t, domain.SocketID(0), socket)
	_, ok = tb.Unassign(10)
	assert.False(t, ok)
	_, ok = tb.Lookup(10)
	assert.False(t, ok)
}

func TestSubscriptionTableRejectsSharedSocket(t *testing.T) {
	t.Parallel()
	tb := NewSubscriptionTable()
	tb.Assign(10, 0)

	defer func() {
		r := recover()
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrInvariant))
	}()
	tb.Assign(11, 0)
}

func TestSubscriptionTableRejectsSecondSocket(t *testing.T) {
	t.Parallel()
	tb := NewSubscriptionTable()
	tb.Assign(10, 0)
	assert.Panics(t, func() { tb.Assign(10, 1) })
}

func TestSubscriptionTableConcurrentAccess(t *testing.T) {
	t.Parallel()
	tb := NewSubscriptionTable()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msi := domain.MediaSourceID(i)
			for j := 0; j < 100; j++ {
				tb.Assign(msi, domain.SocketID(i))
				tb.Lookup(msi)
				tb.Snapshot()
				tb.Unassign(msi)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, tb.Len())

	tb.Assign(1, 1)
	tb.Clear()
	assert.Equal(t, 0, tb.Len())
}
