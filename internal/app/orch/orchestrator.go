package orch

import (
	"context"
	"fmt"
	"sync"

	"github.com/dkeye/Multiview/internal/app"
	"github.com/dkeye/Multiview/internal/app/multiview"
	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/dkeye/Multiview/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Params struct {
	Call domain.CallID
	// Sockets are the pooled multiview sockets; ScreenShare is the reserved
	// VBSS socket and may be nil.
	Sockets     []core.VideoSocket
	ScreenShare core.VideoSocket
	Roster      core.Roster
	Policy      app.Policy

	PreferredResolution domain.Resolution
	DefaultResolution   domain.Resolution

	// Serialize routes events through a single consumer queue of QueueSize.
	Serialize bool
	QueueSize int

	Metrics *metrics.Metrics
}

// Orchestrator maps a call's video sources onto its fixed sockets.
type Orchestrator struct {
	call      domain.CallID
	ctx       context.Context
	cancel    context.CancelFunc
	capacity  int
	sockets   map[domain.SocketID]core.VideoSocket
	vbss      core.VideoSocket
	roster    core.Roster
	policy    app.Policy
	preferred domain.Resolution
	fallback  domain.Resolution
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	serialize bool
	queueSize int
	observer  core.CallObserver
	queue     *EventQueue
	closeOnce sync.Once

	// mu covers recency, pool, table and the screen share fields as one unit.
	mu          sync.Mutex
	recency     *multiview.RecencySet
	pool        *multiview.SocketPool
	table       *multiview.SubscriptionTable
	// held and holders record which video source each participant owns.
	held        map[domain.ParticipantID]domain.MediaSourceID
	holders     map[domain.MediaSourceID]domain.ParticipantID
	sharer      domain.ParticipantID
	shareSource domain.MediaSourceID
	closed      bool
}

var (
	_ core.CallObserver = (*Orchestrator)(nil)
	_ core.CallHandler  = (*Orchestrator)(nil)
)

func NewOrchestrator(ctx context.Context, p Params) (*Orchestrator, error) {
	if p.Roster == nil {
		return nil, fmt.Errorf("orchestrator %s: roster is required", p.Call)
	}
	if p.Policy == nil {
		p.Policy = app.SimplePolicy{}
	}
	if p.PreferredResolution == "" {
		p.PreferredResolution = domain.ResolutionHD1080p
	}
	if p.DefaultResolution == "" {
		p.DefaultResolution = p.PreferredResolution
	}

	sockets := make(map[domain.SocketID]core.VideoSocket, len(p.Sockets))
	ids := make([]domain.SocketID, 0, len(p.Sockets))
	for _, s := range p.Sockets {
		if _, dup := sockets[s.ID()]; dup {
			return nil, fmt.Errorf("orchestrator %s: duplicate socket %d", p.Call, s.ID())
		}
		sockets[s.ID()] = s
		ids = append(ids, s.ID())
	}
	if p.ScreenShare != nil {
		if _, dup := sockets[p.ScreenShare.ID()]; dup {
			return nil, fmt.Errorf("orchestrator %s: screen share socket %d is pooled", p.Call, p.ScreenShare.ID())
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	o := &Orchestrator{
		call:        p.Call,
		ctx:         ctx,
		cancel:      cancel,
		capacity:    len(ids),
		sockets:     sockets,
		vbss:        p.ScreenShare,
		roster:      p.Roster,
		policy:      p.Policy,
		preferred:   p.PreferredResolution,
		fallback:    p.DefaultResolution,
		metrics:     p.Metrics,
		logger:      log.With().Str("module", "orch").Str("call", string(p.Call)).Logger(),
		serialize:   p.Serialize,
		queueSize:   p.QueueSize,
		recency:     multiview.NewRecencySet(len(ids)),
		pool:        multiview.NewSocketPool(ids...),
		table:       multiview.NewSubscriptionTable(),
		held:        make(map[domain.ParticipantID]domain.MediaSourceID),
		holders:     make(map[domain.MediaSourceID]domain.ParticipantID),
		shareSource: domain.NoMediaSource,
	}
	return o, nil
}

// Start registers for roster and dominant speaker events.
func (o *Orchestrator) Start() {
	o.observer = o
	if o.serialize {
		o.queue = NewEventQueue(o, o.queueSize, o.logger)
		o.observer = o.queue
	}
	o.roster.Register(o.observer)
	o.logger.Info().Int("sockets", o.capacity).Bool("vbss", o.vbss != nil).Bool("serialized", o.serialize).Msg("orchestrator started")
}

// Close unregisters from the roster before clearing state, so no callback
// sees a half torn down orchestrator. Sockets are released implicitly.
func (o *Orchestrator) Close() {
	o.closeOnce.Do(o.close)
}

func (o *Orchestrator) close() {
	if o.observer != nil {
		o.roster.Unregister(o.observer)
	}
	if o.queue != nil {
		o.queue.Close()
	}

	o.mu.Lock()
	o.closed = true
	o.recency.Clear()
	o.table.Clear()
	o.pool.Reset()
	clear(o.held)
	clear(o.holders)
	o.sharer, o.shareSource = "", domain.NoMediaSource
	o.mu.Unlock()

	o.cancel()
	o.metrics.ForgetCall(string(o.call))
	o.logger.Info().Msg("orchestrator closed")
}

func (o *Orchestrator) Call() domain.Call {
	return domain.Call{ID: o.call, Sockets: o.capacity}
}

func (o *Orchestrator) Snapshot() core.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return core.Snapshot{
		Recency:       o.recency.Items(),
		Subscriptions: o.table.Snapshot(),
		FreeSockets:   o.pool.Free(),
		ScreenShare:   o.shareSource,
	}
}

// Lookup returns the socket carrying msi.
func (o *Orchestrator) Lookup(msi domain.MediaSourceID) (domain.SocketID, bool) {
	return o.table.Lookup(msi)
}
