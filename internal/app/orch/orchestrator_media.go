package orch

import (
	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
)

// The calls below run outside o.mu: sockets may block on the media platform.
// Failures are logged and swallowed; the next roster or speaker event retries.

func (o *Orchestrator) subscribe(id domain.SocketID, res domain.Resolution, msi domain.MediaSourceID) {
	o.callSocket(o.sockets[id], false, "subscribe", msi, func(s core.VideoSocket) error {
		return s.Subscribe(o.ctx, res, msi)
	})
}

func (o *Orchestrator) unsubscribe(id domain.SocketID, msi domain.MediaSourceID) {
	o.callSocket(o.sockets[id], false, "unsubscribe", msi, func(s core.VideoSocket) error {
		return s.Unsubscribe(o.ctx)
	})
}

func (o *Orchestrator) subscribeScreenShare(msi domain.MediaSourceID) {
	o.callSocket(o.vbss, true, "subscribe", msi, func(s core.VideoSocket) error {
		return s.Subscribe(o.ctx, o.preferred, msi)
	})
}

func (o *Orchestrator) unsubscribeScreenShare(msi domain.MediaSourceID) {
	o.callSocket(o.vbss, true, "unsubscribe", msi, func(s core.VideoSocket) error {
		return s.Unsubscribe(o.ctx)
	})
}

func (o *Orchestrator) callSocket(s core.VideoSocket, screenShare bool, op string, msi domain.MediaSourceID, fn func(core.VideoSocket) error) {
	if s == nil {
		o.logger.Error().Str("op", op).Stringer("msi", msi).Msg("no socket for decision")
		return
	}
	kind := kindOf(screenShare)
	logger := o.logger.With().
		Str("op", op).
		Str("kind", string(kind)).
		Int("socket", int(s.ID())).
		Stringer("msi", msi).
		Logger()

	if err := fn(s); err != nil {
		o.metrics.SocketError(kind, op)
		logger.Error().Err(err).Msg("socket call failed")
		return
	}
	if op == "subscribe" {
		o.metrics.Subscribed(kind)
	} else {
		o.metrics.Unsubscribed(kind)
	}
	logger.Info().Msg("socket call done")
}
