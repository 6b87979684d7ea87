package multiview

import (
	"slices"

	"github.com/dkeye/Multiview/internal/domain"
)

// SocketPool tracks which multiview sockets are free.
// Not safe for concurrent use.
type SocketPool struct {
	ids  []domain.SocketID
	free map[domain.SocketID]struct{}
}

// NewSocketPool seeds the pool with every id, all free.
func NewSocketPool(ids ...domain.SocketID) *SocketPool {
	p := &SocketPool{
		ids:  slices.Clone(ids),
		free: make(map[domain.SocketID]struct{}, len(ids)),
	}
	slices.Sort(p.ids)
	p.ids = slices.Compact(p.ids)
	p.Reset()
	return p
}

// Acquire takes the lowest free id.
func (p *SocketPool) Acquire() (domain.SocketID, bool) {
	for _, id := range p.ids {
		if _, ok := p.free[id]; ok {
			delete(p.free, id)
			return id, true
		}
	}
	return 0, false
}

// Release returns id to the pool. Releasing a free or unknown id is a bookkeeping bug.
func (p *SocketPool) Release(id domain.SocketID) {
	if _, known := slices.BinarySearch(p.ids, id); !known {
		Invariant("release of unknown socket %d", id)
	}
	if _, ok := p.free[id]; ok {
		Invariant("release of free socket %d", id)
	}
	p.free[id] = struct{}{}
}

func (p *SocketPool) Available() int { return len(p.free) }

// Free lists free ids in ascending order.
func (p *SocketPool) Free() []domain.SocketID {
	out := make([]domain.SocketID, 0, len(p.free))
	for _, id := range p.ids {
		if _, ok := p.free[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Reset marks every id free again.
func (p *SocketPool) Reset() {
	clear(p.free)
	for _, id := range p.ids {
		p.free[id] = struct{}{}
	}
}
