package app

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCall struct {
	id     domain.CallID
	closed atomic.Bool
}

func (f *fakeCall) Call() domain.Call { return domain.Call{ID: f.id, Sockets: 2} }
func (f *fakeCall) Snapshot() core.Snapshot {
	return core.Snapshot{Subscriptions: []domain.Subscription{{Source: 1, Socket: 0}}}
}
func (f *fakeCall) Close() { f.closed.Store(true) }

func TestCallRegistryGetOrCreateBuildsOnce(t *testing.T) {
	t.Parallel()
	r := NewCallRegistry[*fakeCall]()

	var builds atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := r.GetOrCreate("c1", func() (*fakeCall, error) {
				builds.Add(1)
				return &fakeCall{id: "c1"}, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), builds.Load())

	h, ok := r.Get("c1")
	require.True(t, ok)
	assert.Equal(t, domain.CallID("c1"), h.Call().ID)
}

func TestCallRegistryCreateRejectsDuplicate(t *testing.T) {
	t.Parallel()
	r := NewCallRegistry[*fakeCall]()
	build := func() (*fakeCall, error) { return &fakeCall{id: "c1"}, nil }

	_, err := r.Create("c1", build)
	require.NoError(t, err)
	_, err = r.Create("c1", build)
	assert.ErrorIs(t, err, ErrCallExists)
}

func TestCallRegistryBuildError(t *testing.T) {
	t.Parallel()
	r := NewCallRegistry[*fakeCall]()
	boom := errors.New("boom")

	_, _, err := r.GetOrCreate("c1", func() (*fakeCall, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := r.Get("c1")
	assert.False(t, ok)
}

func TestCallRegistryListRemoveDrain(t *testing.T) {
	t.Parallel()
	r := NewCallRegistry[*fakeCall]()
	for _, id := range []domain.CallID{"a", "b"} {
		_, err := r.Create(id, func() (*fakeCall, error) { return &fakeCall{id: id}, nil })
		require.NoError(t, err)
	}

	infos := r.List()
	require.Len(t, infos, 2)
	assert.Equal(t, 1, infos[0].Subscriptions)

	h, ok := r.Remove("a")
	require.True(t, ok)
	assert.Equal(t, domain.CallID("a"), h.id)
	_, ok = r.Remove("a")
	assert.False(t, ok)

	rest := r.Drain()
	require.Len(t, rest, 1)
	assert.Empty(t, r.List())
}
