package multiview

import (
	"slices"
	"sync"

	"github.com/dkeye/Multiview/internal/domain"
)

// SubscriptionTable maps sources to the socket receiving them.
// Single calls are safe for concurrent use; decisions spanning the pool and
// the recency set need the caller's lock.
type SubscriptionTable struct {
	mu       sync.RWMutex
	bySource map[domain.MediaSourceID]domain.SocketID
	bySocket map[domain.SocketID]domain.MediaSourceID
}

func NewSubscriptionTable() *SubscriptionTable {
	return &SubscriptionTable{
		bySource: make(map[domain.MediaSourceID]domain.SocketID),
		bySocket: make(map[domain.SocketID]domain.MediaSourceID),
	}
}

// Assign records msi → socket. A socket held by another source, or a source
// already holding another socket, is a bookkeeping bug.
func (t *SubscriptionTable) Assign(msi domain.MediaSourceID, socket domain.SocketID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.bySource[msi]; ok && cur != socket {
		Invariant("source %s already on socket %d, assigning %d", msi, cur, socket)
	}
	if cur, ok := t.bySocket[socket]; ok && cur != msi {
		Invariant("socket %d already carries %s, assigning %s", socket, cur, msi)
	}
	t.bySource[msi] = socket
	t.bySocket[socket] = msi
}

func (t *SubscriptionTable) Unassign(msi domain.MediaSourceID) (domain.SocketID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	socket, ok := t.bySource[msi]
	if !ok {
		return 0, false
	}
	delete(t.bySource, msi)
	delete(t.bySocket, socket)
	return socket, true
}

func (t *SubscriptionTable) Lookup(msi domain.MediaSourceID) (domain.SocketID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	socket, ok := t.bySource[msi]
	return socket, ok
}

func (t *SubscriptionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.bySource)
}

// Snapshot returns all subscriptions ordered by socket.
func (t *SubscriptionTable) Snapshot() []domain.Subscription {
	t.mu.RLock()
	out := make([]domain.Subscription, 0, len(t.bySource))
	for msi, socket := range t.bySource {
		out = append(out, domain.Subscription{Source: msi, Socket: socket})
	}
	t.mu.RUnlock()
	slices.SortFunc(out, func(a, b domain.Subscription) int { return int(a.Socket) - int(b.Socket) })
	return out
}

func (t *SubscriptionTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.bySource)
	clear(t.bySocket)
}
