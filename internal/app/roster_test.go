package app

import (
	"sync"
	"testing"

	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu       sync.Mutex
	changes  []core.RosterChange
	speakers []domain.MediaSourceID
}

func (o *recordingObserver) OnRosterChanged(c core.RosterChange) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.changes = append(o.changes, c)
}

func (o *recordingObserver) OnDominantSpeakerChanged(msi domain.MediaSourceID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.speakers = append(o.speakers, msi)
}

func participant(t *testing.T, id string, video string) *domain.Participant {
	t.Helper()
	p, err := domain.NewParticipant(domain.ParticipantID(id), id,
		domain.MediaStream{Type: domain.MediaVideo, Direction: domain.DirectionSendReceive, SourceID: video},
	)
	require.NoError(t, err)
	return p
}

func TestRosterAddUpdateRemove(t *testing.T) {
	t.Parallel()
	r := NewRoster("call")
	obs := &recordingObserver{}
	r.Register(obs)
	r.Register(obs) // registering twice is a no-op

	r.Add(participant(t, "a", "1"), participant(t, "b", "2"))
	r.Update(participant(t, "a", "3"))
	r.Remove("b", "missing")
	r.Remove("missing") // nothing to report

	require.Len(t, obs.changes, 3)
	assert.Len(t, obs.changes[0].Added, 2)
	require.Len(t, obs.changes[1].Updated, 1)
	assert.Equal(t, "3", obs.changes[1].Updated[0].Streams[0].SourceID)
	require.Len(t, obs.changes[2].Removed, 1)
	assert.Equal(t, domain.ParticipantID("b"), obs.changes[2].Removed[0].ID)
	assert.Equal(t, 1, r.Len())
}

func TestRosterParticipantBySource(t *testing.T) {
	t.Parallel()
	r := NewRoster("call")
	p, err := domain.NewParticipant("a", "A",
		domain.MediaStream{Type: domain.MediaAudio, Direction: domain.DirectionSendReceive, SourceID: "100"},
		domain.MediaStream{Type: domain.MediaVideo, Direction: domain.DirectionSendReceive, SourceID: "101"},
	)
	require.NoError(t, err)
	r.Add(p)

	got, ok := r.ParticipantBySource(100)
	require.True(t, ok)
	assert.Equal(t, domain.ParticipantID("a"), got.ID)

	_, ok = r.ParticipantBySource(5)
	assert.False(t, ok)

	got.Streams[0].SourceID = "999"
	again, _ := r.Participant("a")
	assert.Equal(t, "100", again.Streams[0].SourceID, "callers get copies")
}

func TestRosterDominantSpeakerAndUnregister(t *testing.T) {
	t.Parallel()
	r := NewRoster("call")
	obs := &recordingObserver{}
	r.Register(obs)

	assert.Equal(t, domain.NoMediaSource, r.DominantSpeaker())
	r.SetDominantSpeaker(7)
	assert.Equal(t, domain.MediaSourceID(7), r.DominantSpeaker())

	r.Unregister(obs)
	r.SetDominantSpeaker(8)
	r.Add(participant(t, "a", "1"))

	assert.Equal(t, []domain.MediaSourceID{7}, obs.speakers)
	assert.Empty(t, obs.changes)
}

func TestRosterParticipantsSorted(t *testing.T) {
	t.Parallel()
	r := NewRoster("call")
	r.Add(participant(t, "c", "3"), participant(t, "a", "1"), participant(t, "b", "2"))

	ps := r.Participants()
	require.Len(t, ps, 3)
	assert.Equal(t, domain.ParticipantID("a"), ps[0].ID)
	assert.Equal(t, domain.ParticipantID("c"), ps[2].ID)
}
