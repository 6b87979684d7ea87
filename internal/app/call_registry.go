package app

import (
	"errors"
	"sync"

	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrCallExists = errors.New("call already joined")

// CallRegistry owns the per-call handlers keyed by call id.
type CallRegistry[H core.CallHandler] struct {
	mu    sync.RWMutex
	calls map[domain.CallID]H
}

func NewCallRegistry[H core.CallHandler]() *CallRegistry[H] {
	return &CallRegistry[H]{calls: make(map[domain.CallID]H)}
}

func (r *CallRegistry[H]) Get(id domain.CallID) (H, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.calls[id]
	return h, ok
}

// GetOrCreate returns the handler for id, building it under the write lock
// when missing. created reports whether build ran.
func (r *CallRegistry[H]) GetOrCreate(id domain.CallID, build func() (H, error)) (h H, created bool, err error) {
	r.mu.RLock()
	h, ok := r.calls[id]
	r.mu.RUnlock()
	if ok {
		return h, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok = r.calls[id]; ok {
		return h, false, nil
	}
	h, err = build()
	if err != nil {
		return h, false, err
	}
	r.calls[id] = h
	log.Info().Str("module", "app.calls").Str("call", string(id)).Msg("call registered")
	return h, true, nil
}

// Create registers a handler built for id, failing if id is taken.
func (r *CallRegistry[H]) Create(id domain.CallID, build func() (H, error)) (H, error) {
	h, created, err := r.GetOrCreate(id, build)
	if err != nil {
		return h, err
	}
	if !created {
		return h, ErrCallExists
	}
	return h, nil
}

// Remove unregisters id and returns the handler so the caller can close it
// outside the registry lock.
func (r *CallRegistry[H]) Remove(id domain.CallID) (H, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.calls[id]
	if ok {
		delete(r.calls, id)
		log.Info().Str("module", "app.calls").Str("call", string(id)).Msg("call removed")
	}
	return h, ok
}

func (r *CallRegistry[H]) List() []core.CallInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.CallInfo, 0, len(r.calls))
	for _, h := range r.calls {
		c := h.Call()
		out = append(out, core.CallInfo{
			ID:            c.ID,
			Sockets:       c.Sockets,
			Subscriptions: len(h.Snapshot().Subscriptions),
		})
	}
	return out
}

// Drain removes every handler.
func (r *CallRegistry[H]) Drain() []H {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]H, 0, len(r.calls))
	for id, h := range r.calls {
		out = append(out, h)
		delete(r.calls, id)
	}
	return out
}
