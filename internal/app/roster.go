package app

import (
	"slices"
	"sync"

	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Roster is the in-memory participant list of one call, fed by the call
// platform adapter. Observers are notified outside the roster lock.
type Roster struct {
	call   domain.CallID
	logger zerolog.Logger

	mu           sync.RWMutex
	participants map[domain.ParticipantID]*domain.Participant
	observers    []core.CallObserver
	speaker      domain.MediaSourceID
}

var _ core.Roster = (*Roster)(nil)

func NewRoster(call domain.CallID) *Roster {
	return &Roster{
		call:         call,
		logger:       log.With().Str("module", "app.roster").Str("call", string(call)).Logger(),
		participants: make(map[domain.ParticipantID]*domain.Participant),
		speaker:      domain.NoMediaSource,
	}
}

func (r *Roster) Register(o core.CallObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.observers, o) {
		return
	}
	r.observers = append(r.observers, o)
	r.logger.Info().Int("observers", len(r.observers)).Msg("observer registered")
}

func (r *Roster) Unregister(o core.CallObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = slices.DeleteFunc(r.observers, func(x core.CallObserver) bool { return x == o })
	r.logger.Info().Int("observers", len(r.observers)).Msg("observer unregistered")
}

func (r *Roster) snapshotObservers() []core.CallObserver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.observers)
}

// Add inserts participants; ids already present are reported as updates.
func (r *Roster) Add(ps ...*domain.Participant) {
	var change core.RosterChange
	r.mu.Lock()
	for _, p := range ps {
		p = p.Clone()
		if _, ok := r.participants[p.ID]; ok {
			change.Updated = append(change.Updated, p)
		} else {
			change.Added = append(change.Added, p)
		}
		r.participants[p.ID] = p
	}
	r.mu.Unlock()
	r.logger.Info().Int("added", len(change.Added)).Int("updated", len(change.Updated)).Msg("participants added")
	r.notify(change)
}

// Update replaces known participants; unknown ids are added.
func (r *Roster) Update(ps ...*domain.Participant) {
	r.Add(ps...)
}

// Remove drops participants by id and reports their last known state.
func (r *Roster) Remove(ids ...domain.ParticipantID) {
	var change core.RosterChange
	r.mu.Lock()
	for _, id := range ids {
		if p, ok := r.participants[id]; ok {
			delete(r.participants, id)
			change.Removed = append(change.Removed, p)
		}
	}
	r.mu.Unlock()
	r.logger.Info().Int("removed", len(change.Removed)).Msg("participants removed")
	r.notify(change)
}

func (r *Roster) notify(change core.RosterChange) {
	if change.Empty() {
		return
	}
	for _, o := range r.snapshotObservers() {
		o.OnRosterChanged(change)
	}
}

// SetDominantSpeaker records and fans out a dominant speaker change.
func (r *Roster) SetDominantSpeaker(msi domain.MediaSourceID) {
	r.mu.Lock()
	r.speaker = msi
	r.mu.Unlock()
	r.logger.Debug().Stringer("msi", msi).Msg("dominant speaker changed")
	for _, o := range r.snapshotObservers() {
		o.OnDominantSpeakerChanged(msi)
	}
}

func (r *Roster) DominantSpeaker() domain.MediaSourceID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.speaker
}

func (r *Roster) ParticipantBySource(msi domain.MediaSourceID) (*domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.participants {
		if p.HasSource(msi) {
			return p.Clone(), true
		}
	}
	return nil, false
}

func (r *Roster) Participant(id domain.ParticipantID) (*domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func (r *Roster) Participants() []*domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *domain.Participant) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}
