package signal

import (
	"encoding/json"

	"github.com/dkeye/Multiview/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *FeedController) handleParticipants(f *feed, data []byte, update bool) {
	var p struct {
		Participants []*domain.Participant `json:"participants"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad participants payload")
		sendError(f, "bad_payload")
		return
	}

	valid := make([]*domain.Participant, 0, len(p.Participants))
	for _, part := range p.Participants {
		if part == nil {
			continue
		}
		if err := part.Validate(); err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("participant", string(part.ID)).Msg("participant rejected")
			sendError(f, "invalid_participant")
			continue
		}
		valid = append(valid, part)
	}
	if len(valid) == 0 {
		return
	}
	if update {
		f.sess.Roster.Update(valid...)
	} else {
		f.sess.Roster.Add(valid...)
	}
}

func (ctl *FeedController) handleRemoved(f *feed, data []byte) {
	var p struct {
		IDs []domain.ParticipantID `json:"ids"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad removal payload")
		sendError(f, "bad_payload")
		return
	}
	f.sess.Roster.Remove(p.IDs...)
}

// handleDominantSpeaker takes {"msi": n}; a null or missing msi means nobody
// is speaking.
func (ctl *FeedController) handleDominantSpeaker(f *feed, data []byte) {
	var p struct {
		MSI *uint32 `json:"msi"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad dominant speaker payload")
		sendError(f, "bad_payload")
		return
	}
	msi := domain.NoMediaSource
	if p.MSI != nil {
		msi = domain.MediaSourceID(*p.MSI)
	}
	f.sess.Roster.SetDominantSpeaker(msi)
}
