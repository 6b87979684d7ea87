package orch

import (
	"context"
	"fmt"

	"github.com/dkeye/Multiview/internal/app"
	"github.com/dkeye/Multiview/internal/app/sfu"
	"github.com/dkeye/Multiview/internal/config"
	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/dkeye/Multiview/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Bot joins calls and owns one CallSession per call.
type Bot struct {
	Calls   *app.CallRegistry[*CallSession]
	Policy  app.Policy
	Config  *config.Config
	Metrics *metrics.Metrics
}

func NewBot(cfg *config.Config, m *metrics.Metrics) *Bot {
	return &Bot{
		Calls:   app.NewCallRegistry[*CallSession](),
		Policy:  app.SimplePolicy{},
		Config:  cfg,
		Metrics: m,
	}
}

// JoinCall builds the sockets and orchestrator for id. ctx bounds the call's
// lifetime, not the request that joined it. An empty id gets a generated one.
func (b *Bot) JoinCall(ctx context.Context, id domain.CallID) (*CallSession, error) {
	if id == "" {
		id = domain.NewCallID()
	}
	return b.Calls.Create(id, func() (*CallSession, error) {
		return b.newSession(ctx, id)
	})
}

func (b *Bot) newSession(ctx context.Context, id domain.CallID) (*CallSession, error) {
	relays := sfu.NewRelayManager()
	roster := app.NewRoster(id)

	n := b.Config.MultiviewSockets
	sockets := make([]*sfu.Socket, 0, n)
	pooled := make([]core.VideoSocket, 0, n)
	for i := 0; i < n; i++ {
		s, err := sfu.NewSocket(id, domain.SocketID(i), relays)
		if err != nil {
			return nil, err
		}
		sockets = append(sockets, s)
		pooled = append(pooled, s)
	}

	var screenShare *sfu.Socket
	params := Params{
		Call:                id,
		Sockets:             pooled,
		Roster:              roster,
		Policy:              b.Policy,
		PreferredResolution: b.Config.PreferredResolution,
		DefaultResolution:   b.Config.DefaultResolution,
		Serialize:           b.Config.SerializeEvents,
		QueueSize:           b.Config.EventQueueSize,
		Metrics:             b.Metrics,
	}
	if b.Config.VBSSEnabled {
		s, err := sfu.NewSocket(id, domain.SocketID(n), relays)
		if err != nil {
			return nil, err
		}
		screenShare = s
		params.ScreenShare = s
	}

	o, err := NewOrchestrator(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("join call %s: %w", id, err)
	}
	o.Start()

	log.Info().Str("module", "orch.bot").Str("call", string(id)).Int("sockets", n).Msg("joined call")
	return &CallSession{
		orch:        o,
		Roster:      roster,
		Relays:      relays,
		sockets:     sockets,
		screenShare: screenShare,
	}, nil
}

func (b *Bot) Call(id domain.CallID) (*CallSession, bool) {
	return b.Calls.Get(id)
}

// EndCall tears the call down. It reports whether the call was known.
func (b *Bot) EndCall(id domain.CallID) bool {
	sess, ok := b.Calls.Remove(id)
	if !ok {
		return false
	}
	sess.Close()
	log.Info().Str("module", "orch.bot").Str("call", string(id)).Msg("left call")
	return true
}

func (b *Bot) EndAll() {
	for _, sess := range b.Calls.Drain() {
		sess.Close()
	}
}

func (b *Bot) List() []core.CallInfo {
	return b.Calls.List()
}
