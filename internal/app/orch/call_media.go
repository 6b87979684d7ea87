package orch

import (
	"context"
	"fmt"

	"github.com/dkeye/Multiview/internal/app/sfu"
	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// BindMedia wires a media leg to the call: remote video tracks feed relays
// keyed by their MSI, and closing the leg parks the sockets. A previous leg
// is closed.
func (c *CallSession) BindMedia(mc core.MediaConnection) {
	mc.OnTrack(func(trackCtx context.Context, track *webrtc.TrackRemote, receiver *webrtc.RTPReceiver) {
		c.onRemoteTrack(trackCtx, track.Kind(), track.StreamID(), track.ID(), track)
	})
	mc.OnClosed(func() { c.OnMediaDisconnect(mc) })

	c.mu.Lock()
	old := c.media
	c.media = mc
	c.mu.Unlock()
	if old != nil && old != mc {
		old.Close()
	}
}

// AttachOutputs adds every socket's output track to mc. Call it between
// ApplyOffer and CreateAnswer.
func (c *CallSession) AttachOutputs(mc core.MediaConnection) error {
	for _, s := range c.Sockets() {
		if s.Track() == nil {
			continue
		}
		if _, err := mc.AddLocalTrack(s.Track()); err != nil {
			return fmt.Errorf("attach socket %d: %w", s.ID(), err)
		}
	}
	return nil
}

// SourceOfTrack reads the MSI a platform puts in the stream id, falling back
// to the track id.
func SourceOfTrack(streamID, trackID string) (domain.MediaSourceID, error) {
	msi, err := domain.ParseMediaSourceID(streamID)
	if err == nil {
		return msi, nil
	}
	return domain.ParseMediaSourceID(trackID)
}

func (c *CallSession) onRemoteTrack(ctx context.Context, kind webrtc.RTPCodecType, streamID, trackID string, src sfu.PacketReader) {
	logger := log.With().
		Str("module", "orch.media").
		Str("call", string(c.orch.call)).
		Str("stream_id", streamID).
		Str("track_id", trackID).
		Logger()

	if kind != webrtc.RTPCodecTypeVideo {
		logger.Debug().Str("kind", kind.String()).Msg("ignoring non video track")
		return
	}
	msi, err := SourceOfTrack(streamID, trackID)
	if err != nil {
		logger.Warn().Err(err).Msg("track without media source id")
		return
	}
	c.Relays.StartRelay(ctx, msi, src)
}

// OnMediaDisconnect stops relays fed by mc; socket attachments are kept for
// the next leg.
func (c *CallSession) OnMediaDisconnect(mc core.MediaConnection) {
	c.mu.Lock()
	current := c.media == mc
	if current {
		c.media = nil
	}
	c.mu.Unlock()
	if !current {
		return
	}
	for _, msi := range c.Relays.Sources() {
		c.Relays.StopRelay(msi)
	}
	log.Info().Str("module", "orch.media").Str("call", string(c.orch.call)).Msg("media disconnected")
}
