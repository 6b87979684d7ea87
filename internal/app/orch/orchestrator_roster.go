package orch

import (
	"github.com/dkeye/Multiview/internal/app"
	"github.com/dkeye/Multiview/internal/app/multiview"
	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/dkeye/Multiview/internal/metrics"
)

func (o *Orchestrator) OnRosterChanged(change core.RosterChange) {
	for _, p := range change.Added {
		o.OnParticipantAddedOrUpdated(p, false)
	}
	for _, p := range change.Updated {
		o.OnParticipantAddedOrUpdated(p, false)
	}
	for _, p := range change.Removed {
		o.OnParticipantRemovedOrVideoStopped(p)
	}
}

func (o *Orchestrator) OnDominantSpeakerChanged(msi domain.MediaSourceID) {
	if msi == domain.NoMediaSource {
		o.logger.Debug().Msg("no dominant speaker")
		return
	}
	p, ok := o.roster.ParticipantBySource(msi)
	if !ok {
		o.logger.Info().Stringer("msi", msi).Msg("dominant speaker not in roster")
		return
	}
	if p.IsBot {
		return
	}
	o.logger.Debug().Stringer("msi", msi).Str("participant", string(p.ID)).Msg("dominant speaker changed")
	o.OnParticipantAddedOrUpdated(p, true)
}

// OnParticipantAddedOrUpdated gives p's video a socket when one is free, or,
// when force is set and all are taken, the socket of the least recently
// referenced source. A source p held before and no longer sends is released.
func (o *Orchestrator) OnParticipantAddedOrUpdated(p *domain.Participant, force bool) {
	o.updateScreenShare(p)

	msi, ok := p.VideoSource()
	if !ok {
		o.releaseVideo(p.ID)
		return
	}

	d := o.admit(p.ID, msi, force)
	if d.release {
		o.unsubscribe(d.staleSocket, d.stale)
	}
	if !d.subscribe {
		return
	}
	res := o.fallback
	if force {
		res = o.preferred
	}
	o.subscribe(d.socket, res, msi)
}

// OnParticipantRemovedOrVideoStopped frees the video socket p holds and ends
// p's screen share.
func (o *Orchestrator) OnParticipantRemovedOrVideoStopped(p *domain.Participant) {
	o.endScreenShare(p.ID)
	o.releaseVideo(p.ID)
}

func (o *Orchestrator) releaseVideo(id domain.ParticipantID) {
	msi, socket, ok := o.release(id)
	if !ok {
		return
	}
	o.unsubscribe(socket, msi)
}

type admission struct {
	// stale is a source the participant held before, freed by this admission.
	stale       domain.MediaSourceID
	staleSocket domain.SocketID
	release     bool

	socket    domain.SocketID
	subscribe bool
}

// admit decides under the lock whether msi gets a socket and which one.
func (o *Orchestrator) admit(id domain.ParticipantID, msi domain.MediaSourceID, force bool) (d admission) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return d
	}
	defer func() { o.metrics.SetSubscriptions(string(o.call), o.table.Len()) }()

	if prev, ok := o.held[id]; ok && prev != msi {
		if socket, freed := o.releaseLocked(prev); freed {
			d.stale, d.staleSocket, d.release = prev, socket, true
		}
	}
	if o.capacity == 0 {
		return d
	}

	if o.recency.Len() < o.capacity {
		if _, held := o.table.Lookup(msi); !held {
			socket, ok := o.pool.Acquire()
			if !ok {
				multiview.Invariant("pool empty with %d of %d sockets in use", o.recency.Len(), o.capacity)
			}
			d.socket, d.subscribe = socket, true
		}
		if evicted, ok := o.recency.TouchOrInsert(msi); ok {
			multiview.Invariant("evicted %s below capacity", evicted)
		}
		if d.subscribe {
			o.table.Assign(msi, d.socket)
		}
		o.holdLocked(id, msi)
		return d
	}

	if o.policy.OnSaturated(force) != app.EvictLeastRecent {
		return d
	}

	evicted, ok := o.recency.TouchOrInsert(msi)
	if !ok {
		// Already present: re-subscribe its own socket.
		socket, held := o.table.Lookup(msi)
		if !held {
			multiview.Invariant("source %s is tracked without a socket", msi)
		}
		o.holdLocked(id, msi)
		d.socket, d.subscribe = socket, true
		return d
	}

	socket, held := o.table.Unassign(evicted)
	if !held {
		o.recency.Remove(msi)
		o.logger.Warn().Stringer("evicted", evicted).Stringer("msi", msi).Msg("evicted source had no socket, retrying on next event")
		return d
	}
	// The socket goes straight to msi without passing through the pool. One
	// Subscribe is enough: it replaces the evicted source on the socket.
	o.forgetLocked(evicted)
	o.table.Assign(msi, socket)
	o.holdLocked(id, msi)
	o.metrics.Evicted()
	o.logger.Info().
		Stringer("evicted", evicted).
		Stringer("msi", msi).
		Int("socket", int(socket)).
		Msg("evicted least recent source")
	d.socket, d.subscribe = socket, true
	return d
}

// release drops the subscription of the source id holds and frees its socket.
func (o *Orchestrator) release(id domain.ParticipantID) (domain.MediaSourceID, domain.SocketID, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return 0, 0, false
	}
	msi, ok := o.held[id]
	if !ok {
		return 0, 0, false
	}
	socket, ok := o.releaseLocked(msi)
	if !ok {
		return 0, 0, false
	}
	o.metrics.SetSubscriptions(string(o.call), o.table.Len())
	return msi, socket, true
}

func (o *Orchestrator) releaseLocked(msi domain.MediaSourceID) (domain.SocketID, bool) {
	o.forgetLocked(msi)
	if !o.recency.Remove(msi) {
		return 0, false
	}
	socket, ok := o.table.Unassign(msi)
	if !ok {
		multiview.Invariant("source %s is tracked without a socket", msi)
	}
	o.pool.Release(socket)
	return socket, true
}

// holdLocked records that id owns msi. A source moves to its latest owner.
func (o *Orchestrator) holdLocked(id domain.ParticipantID, msi domain.MediaSourceID) {
	if prev, ok := o.holders[msi]; ok && prev != id {
		delete(o.held, prev)
	}
	o.held[id] = msi
	o.holders[msi] = id
}

func (o *Orchestrator) forgetLocked(msi domain.MediaSourceID) {
	if id, ok := o.holders[msi]; ok {
		delete(o.held, id)
		delete(o.holders, msi)
	}
}

// updateScreenShare subscribes the VBSS socket whenever p shares, and
// unsubscribes it when p was the sharer and stopped.
func (o *Orchestrator) updateScreenShare(p *domain.Participant) {
	if o.vbss == nil {
		return
	}
	msi, sharing := p.ScreenShareSource()
	if !sharing {
		o.endScreenShare(p.ID)
		return
	}
	o.mu.Lock()
	if o.closed || (o.sharer == p.ID && o.shareSource == msi) {
		o.mu.Unlock()
		return
	}
	o.sharer, o.shareSource = p.ID, msi
	o.mu.Unlock()
	o.subscribeScreenShare(msi)
}

func (o *Orchestrator) endScreenShare(id domain.ParticipantID) {
	if o.vbss == nil {
		return
	}
	o.mu.Lock()
	if o.closed || o.sharer != id || o.sharer == "" {
		o.mu.Unlock()
		return
	}
	msi := o.shareSource
	o.sharer, o.shareSource = "", domain.NoMediaSource
	o.mu.Unlock()
	o.unsubscribeScreenShare(msi)
}

func kindOf(screenShare bool) metrics.Kind {
	if screenShare {
		return metrics.KindScreenShare
	}
	return metrics.KindVideo
}
