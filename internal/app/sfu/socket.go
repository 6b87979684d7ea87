package sfu

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var ErrSocketClosed = errors.New("socket closed")

type SocketState int32

const (
	SocketIdle SocketState = iota
	SocketSubscribed
	SocketClosed
)

func (s SocketState) String() string {
	switch s {
	case SocketSubscribed:
		return "subscribed"
	case SocketClosed:
		return "closed"
	default:
		return "idle"
	}
}

// Socket is one decoder channel. Subscribing attaches it to a source's relay;
// forwarded packets go to the socket's output track.
type Socket struct {
	id     domain.SocketID
	relays *RelayManager
	out    PacketWriter
	track  *webrtc.TrackLocalStaticRTP
	logger zerolog.Logger

	mu         sync.Mutex
	source     domain.MediaSourceID
	resolution domain.Resolution
	attachment *Sink

	state     atomic.Int32
	forwarded atomic.Uint64
}

var _ core.VideoSocket = (*Socket)(nil)

// NewSocket creates a socket whose output is a VP8 track named after the socket.
func NewSocket(call domain.CallID, id domain.SocketID, relays *RelayManager) (*Socket, error) {
	track, err := webrtc.NewTrackLocalStaticRTP(
		webrtc.RTPCodecCapability{MimeType: webrtc.MimeTypeVP8, ClockRate: 90000},
		fmt.Sprintf("socket-%d", id),
		fmt.Sprintf("multiview-%s", call),
	)
	if err != nil {
		return nil, fmt.Errorf("socket %d track: %w", id, err)
	}
	s := newSocket(call, id, relays, track)
	s.track = track
	return s, nil
}

func newSocket(call domain.CallID, id domain.SocketID, relays *RelayManager, out PacketWriter) *Socket {
	return &Socket{
		id:     id,
		relays: relays,
		out:    out,
		source: domain.NoMediaSource,
		logger: log.With().
			Str("module", "sfu.socket").
			Str("call", string(call)).
			Int("socket", int(id)).
			Logger(),
	}
}

func (s *Socket) ID() domain.SocketID { return s.id }

// Track is the socket's output, nil for sockets built without pion.
func (s *Socket) Track() *webrtc.TrackLocalStaticRTP { return s.track }

func (s *Socket) State() SocketState { return SocketState(s.state.Load()) }

// Source returns the subscribed source, domain.NoMediaSource when idle.
func (s *Socket) Source() (domain.MediaSourceID, domain.Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source, s.resolution
}

func (s *Socket) Forwarded() uint64 { return s.forwarded.Load() }

// WriteRTP implements PacketWriter for the relay side.
func (s *Socket) WriteRTP(p *rtp.Packet) error {
	if err := s.out.WriteRTP(p); err != nil {
		return err
	}
	s.forwarded.Add(1)
	return nil
}

func (s *Socket) Subscribe(ctx context.Context, res domain.Resolution, msi domain.MediaSourceID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State() == SocketClosed {
		return ErrSocketClosed
	}
	if s.State() == SocketSubscribed && s.source == msi {
		s.resolution = res
		return nil
	}
	s.detachLocked()

	sk := NewSink(s)
	s.relays.Attach(msi, s.id, sk)
	s.attachment = sk
	s.source = msi
	s.resolution = res
	s.state.Store(int32(SocketSubscribed))
	s.logger.Info().Stringer("msi", msi).Str("resolution", string(res)).Msg("socket subscribed")
	return nil
}

func (s *Socket) Unsubscribe(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State() == SocketClosed {
		return ErrSocketClosed
	}
	if s.State() == SocketIdle {
		return nil
	}
	prev := s.source
	s.detachLocked()
	s.state.Store(int32(SocketIdle))
	s.logger.Info().Stringer("msi", prev).Msg("socket unsubscribed")
	return nil
}

func (s *Socket) detachLocked() {
	if s.attachment == nil {
		return
	}
	s.attachment.Detach()
	s.relays.Detach(s.source, s.id)
	s.attachment = nil
	s.source = domain.NoMediaSource
	s.resolution = ""
}

// Close detaches the socket for good.
func (s *Socket) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detachLocked()
	s.state.Store(int32(SocketClosed))
}
