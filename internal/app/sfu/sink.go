package sfu

import (
	"sync/atomic"

	"github.com/pion/rtp"
)

// PacketWriter receives forwarded RTP. *webrtc.TrackLocalStaticRTP implements it.
type PacketWriter interface {
	WriteRTP(p *rtp.Packet) error
}

// Sink is one socket's attachment to a relay. Once detached it never
// receives again; the relay drops it on its next packet.
type Sink struct {
	Out      PacketWriter
	detached atomic.Bool
}

func NewSink(out PacketWriter) *Sink {
	return &Sink{Out: out}
}

func (s *Sink) Detach() { s.detached.Store(true) }
func (s *Sink) Detached() bool { return s.detached.Load() }
