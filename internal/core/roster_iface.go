package core

//go:generate mockgen -source=roster_iface.go -destination=mocks/roster_mock.go -package=mocks

import "github.com/dkeye/Multiview/internal/domain"

// RosterChange is one batch of roster notifications.
type RosterChange struct {
	Added   []*domain.Participant
	Updated []*domain.Participant
	Removed []*domain.Participant
}

func (c RosterChange) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

// CallObserver receives call events. Implementations must be safe for
// concurrent use: the platform does not serialize callbacks.
type CallObserver interface {
	OnRosterChanged(change RosterChange)
	// OnDominantSpeakerChanged gets domain.NoMediaSource when nobody speaks.
	OnDominantSpeakerChanged(msi domain.MediaSourceID)
}

// Roster is the participant list of one call.
type Roster interface {
	// ParticipantBySource resolves any stream MSI (audio, video or vbss) to its owner.
	ParticipantBySource(msi domain.MediaSourceID) (*domain.Participant, bool)
	Participants() []*domain.Participant

	Register(o CallObserver)
	Unregister(o CallObserver)
}
