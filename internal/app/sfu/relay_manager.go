package sfu

import (
	"context"
	"sync"

	"github.com/dkeye/Multiview/internal/domain"
	"github.com/rs/zerolog/log"
)

// RelayManager keeps one relay per media source of a call. Sockets may attach
// to a source before its media arrives; they are parked until StartRelay.
type RelayManager struct {
	mu      sync.RWMutex
	relays  map[domain.MediaSourceID]*Relay
	pending map[domain.MediaSourceID]map[domain.SocketID]*Sink
}

func NewRelayManager() *RelayManager {
	return &RelayManager{
		relays:  make(map[domain.MediaSourceID]*Relay),
		pending: make(map[domain.MediaSourceID]map[domain.SocketID]*Sink),
	}
}

// StartRelay creates a relay for msi and starts its loop. Sockets attached to
// a replaced relay, or parked for msi, move to the new one.
func (m *RelayManager) StartRelay(ctx context.Context, msi domain.MediaSourceID, src PacketReader) {
	logger := log.With().
		Str("module", "relay").
		Stringer("msi", msi).
		Logger()

	relayCtx, cancel := context.WithCancel(ctx)
	relay := NewRelay(msi, src, cancel)

	m.mu.Lock()
	if old, ok := m.relays[msi]; ok {
		logger.Info().Msg("replacing existing relay for source")
		for socket, sk := range old.takeSinks() {
			relay.AddSink(socket, sk)
		}
		old.cancel()
	}
	for socket, sk := range m.pending[msi] {
		relay.AddSink(socket, sk)
	}
	delete(m.pending, msi)
	m.relays[msi] = relay
	m.mu.Unlock()

	logger.Info().Int("sockets", relay.SinkCount()).Msg("starting relay loop")

	go relay.loop(relayCtx, &logger)
}

// Attach routes msi's packets to socket through sk.
func (m *RelayManager) Attach(msi domain.MediaSourceID, socket domain.SocketID, sk *Sink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if relay, ok := m.relays[msi]; ok {
		relay.AddSink(socket, sk)
		return
	}
	waiting, ok := m.pending[msi]
	if !ok {
		waiting = make(map[domain.SocketID]*Sink)
		m.pending[msi] = waiting
	}
	waiting[socket] = sk
}

// Detach stops routing msi's packets to socket.
func (m *RelayManager) Detach(msi domain.MediaSourceID, socket domain.SocketID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if relay, ok := m.relays[msi]; ok {
		relay.removeSink(socket)
	}
	if waiting, ok := m.pending[msi]; ok {
		delete(waiting, socket)
		if len(waiting) == 0 {
			delete(m.pending, msi)
		}
	}
}

// StopRelay stops msi's relay. Attached sockets are parked until the source
// comes back.
func (m *RelayManager) StopRelay(msi domain.MediaSourceID) {
	m.mu.Lock()
	relay, ok := m.relays[msi]
	if ok {
		delete(m.relays, msi)
		if parked := relay.takeSinks(); len(parked) > 0 {
			m.pending[msi] = parked
		}
	}
	m.mu.Unlock()
	if ok {
		relay.cancel()
	}
}

// StopAll stops every relay and forgets parked sockets.
func (m *RelayManager) StopAll() {
	m.mu.Lock()
	relays := m.relays
	m.relays = make(map[domain.MediaSourceID]*Relay)
	clear(m.pending)
	m.mu.Unlock()
	for _, relay := range relays {
		relay.takeSinks()
		relay.cancel()
	}
}

// HasRelay reports whether media for msi is flowing.
func (m *RelayManager) HasRelay(msi domain.MediaSourceID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.relays[msi]
	return ok
}

// SrcTrack returns the source of msi's relay.
func (m *RelayManager) SrcTrack(msi domain.MediaSourceID) (PacketReader, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	relay, ok := m.relays[msi]
	if !ok {
		return nil, false
	}
	return relay.Src, true
}

func (m *RelayManager) attached(msi domain.MediaSourceID, socket domain.SocketID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if relay, ok := m.relays[msi]; ok {
		relay.mu.RLock()
		_, found := relay.sinks[socket]
		relay.mu.RUnlock()
		return found
	}
	_, ok := m.pending[msi][socket]
	return ok
}

// Sources lists the media sources with a running relay.
func (m *RelayManager) Sources() []domain.MediaSourceID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.MediaSourceID, 0, len(m.relays))
	for msi := range m.relays {
		out = append(out, msi)
	}
	return out
}
