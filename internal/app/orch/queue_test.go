package orch

import (
	"testing"
	"time"

	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/core/mocks"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestEventQueueKeepsOrder(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	target := mocks.NewMockCallObserver(ctrl)

	change := core.RosterChange{Added: []*domain.Participant{video("a", "1")}}
	gomock.InOrder(
		target.EXPECT().OnRosterChanged(change),
		target.EXPECT().OnDominantSpeakerChanged(domain.MediaSourceID(1)),
		target.EXPECT().OnDominantSpeakerChanged(domain.NoMediaSource),
	)

	q := NewEventQueue(target, 0, zerolog.Nop())
	q.OnRosterChanged(change)
	q.OnDominantSpeakerChanged(1)
	q.OnDominantSpeakerChanged(domain.NoMediaSource)
	q.Close()
	q.Close()

	// Dropped after close.
	q.OnDominantSpeakerChanged(2)
}

type panickingObserver struct{}

func (panickingObserver) OnRosterChanged(core.RosterChange) { panic("broken observer") }
func (panickingObserver) OnDominantSpeakerChanged(domain.MediaSourceID) {}

func TestEventQueueConsumerPanicSurfacesOnClose(t *testing.T) {
	t.Parallel()
	q := NewEventQueue(panickingObserver{}, 0, zerolog.Nop())
	q.OnRosterChanged(core.RosterChange{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			q.OnDominantSpeakerChanged(domain.MediaSourceID(i))
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producers blocked after consumer panic")
	}

	assert.Panics(t, q.Close)
}
