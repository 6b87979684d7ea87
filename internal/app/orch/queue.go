package orch

import (
	"sync"
	"sync/atomic"

	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
)

type event struct {
	roster  *core.RosterChange
	speaker domain.MediaSourceID
}

// EventQueue serializes call events into a single consumer goroutine so the
// target sees them one at a time, in arrival order. Producers block while the
// queue is full.
type EventQueue struct {
	target core.CallObserver
	events chan event
	logger zerolog.Logger
	wg     conc.WaitGroup

	mu     sync.RWMutex
	closed bool
	failed atomic.Bool
}

var _ core.CallObserver = (*EventQueue)(nil)

func NewEventQueue(target core.CallObserver, size int, logger zerolog.Logger) *EventQueue {
	if size < 0 {
		size = 0
	}
	q := &EventQueue{
		target: target,
		events: make(chan event, size),
		logger: logger.With().Str("component", "event_queue").Logger(),
	}
	q.wg.Go(q.run)
	return q
}

func (q *EventQueue) run() {
	clean := false
	defer func() {
		if clean {
			return
		}
		// The panic keeps unwinding into the WaitGroup once Close closes the
		// channel; until then producers must not block.
		q.failed.Store(true)
		q.logger.Error().Msg("event consumer panicked, dropping events until close")
		for range q.events {
		}
	}()
	for ev := range q.events {
		if ev.roster != nil {
			q.target.OnRosterChanged(*ev.roster)
			continue
		}
		q.target.OnDominantSpeakerChanged(ev.speaker)
	}
	clean = true
}

func (q *EventQueue) OnRosterChanged(change core.RosterChange) {
	q.push(event{roster: &change})
}

func (q *EventQueue) OnDominantSpeakerChanged(msi domain.MediaSourceID) {
	q.push(event{speaker: msi})
}

func (q *EventQueue) push(ev event) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed || q.failed.Load() {
		q.logger.Warn().Bool("failed", q.failed.Load()).Msg("event dropped")
		return
	}
	q.events <- ev
}

// Close stops accepting events, waits for queued ones to be handled and
// re-raises a panic from the consumer.
func (q *EventQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.events)
	q.mu.Unlock()
	q.wg.Wait()
}
