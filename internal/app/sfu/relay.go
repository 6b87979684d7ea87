package sfu

import (
	"context"
	"maps"
	"sync"

	"github.com/dkeye/Multiview/internal/domain"
	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/rs/zerolog"
)

// PacketReader is the source side of a relay. *webrtc.TrackRemote implements it.
type PacketReader interface {
	ReadRTP() (*rtp.Packet, interceptor.Attributes, error)
}

// Relay forwards one source's packets to the sockets subscribed to it.
type Relay struct {
	Src PacketReader
	msi domain.MediaSourceID

	mu        sync.RWMutex
	sinks map[domain.SocketID]*Sink

	cancel context.CancelFunc
	done   chan struct{}
}

func NewRelay(msi domain.MediaSourceID, src PacketReader, cancel context.CancelFunc) *Relay {
	return &Relay{
		Src:       src,
		msi:       msi,
		sinks: make(map[domain.SocketID]*Sink),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
}

// loop reads RTP packets from the source and forwards them to every attached sink.
func (r *Relay) loop(ctx context.Context, logger *zerolog.Logger) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("relay ctx done")
			return
		default:
		}
		pkt, _, err := r.Src.ReadRTP()
		if err != nil {
			logger.Warn().Err(err).Msg("relay read RTP error, stopping")
			return
		}
		r.forward(pkt, logger)
	}
}

func (r *Relay) forward(pkt *rtp.Packet, logger *zerolog.Logger) {
	r.mu.RLock()
	snapshot := maps.Clone(r.sinks)
	r.mu.RUnlock()

	dirty := make([]domain.SocketID, 0, len(snapshot))
	for socket, sk := range snapshot {
		if sk.Detached() {
			dirty = append(dirty, socket)
			continue
		}
		if err := sk.Out.WriteRTP(pkt); err != nil {
			logger.Error().
				Err(err).
				Int("socket", int(socket)).
				Msg("relay write RTP error, detaching sink")
			sk.Detach()
			dirty = append(dirty, socket)
		}
	}

	// Cleanup is done outside the RLock.
	if len(dirty) > 0 {
		r.cleanupDeleted(dirty)
	}
}

func (r *Relay) cleanupDeleted(dirty []domain.SocketID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, socket := range dirty {
		if sk, ok := r.sinks[socket]; ok && sk.Detached() {
			delete(r.sinks, socket)
		}
	}
}

func (r *Relay) AddSink(socket domain.SocketID, sk *Sink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[socket] = sk
}

func (r *Relay) removeSink(socket domain.SocketID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sk, ok := r.sinks[socket]; ok {
		sk.Detach()
		delete(r.sinks, socket)
	}
}

// takeSinks empties the relay and hands its live attachments over.
func (r *Relay) takeSinks() map[domain.SocketID]*Sink {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[domain.SocketID]*Sink, len(r.sinks))
	for socket, sk := range r.sinks {
		if !sk.Detached() {
			out[socket] = sk
		}
	}
	clear(r.sinks)
	return out
}

func (r *Relay) SinkCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sinks)
}
