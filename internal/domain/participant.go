// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
)

const MaxDisplayNameLen = 64

var (
	ErrParticipantIDEmpty = errors.New("participant id empty")
	ErrDisplayNameTooLong = errors.New("display name too long")
)

type ParticipantID string

// Participant is one roster entry of a call as reported by the call platform.
// No subscription state here.
type Participant struct {
	ID          ParticipantID `json:"id"`
	DisplayName string        `json:"display_name,omitempty"`
	IsBot       bool          `json:"is_bot,omitempty"`
	Streams     []MediaStream `json:"streams"`
}

// NewParticipant is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewParticipant(id ParticipantID, displayName string, streams ...MediaStream) (*Participant, error) {
	p := &Participant{ID: id, DisplayName: displayName, Streams: streams}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Participant) Validate() error {
	if p.ID == "" {
		return ErrParticipantIDEmpty
	}
	if len(p.DisplayName) > MaxDisplayNameLen {
		return ErrDisplayNameTooLong
	}
	return nil
}

// VideoSource returns the MSI of the participant's send-capable video stream.
func (p *Participant) VideoSource() (MediaSourceID, bool) {
	for _, s := range p.Streams {
		if s.Type != MediaVideo || !s.Direction.CanSend() {
			continue
		}
		if msi, err := ParseMediaSourceID(s.SourceID); err == nil {
			return msi, true
		}
	}
	return NoMediaSource, false
}

// ScreenShareSource returns the MSI of an active (send-only) screen share.
func (p *Participant) ScreenShareSource() (MediaSourceID, bool) {
	for _, s := range p.Streams {
		if s.Type != MediaVBSS || s.Direction != DirectionSendOnly {
			continue
		}
		if msi, err := ParseMediaSourceID(s.SourceID); err == nil {
			return msi, true
		}
	}
	return NoMediaSource, false
}

// HasSource reports whether any of the participant's streams carries msi.
func (p *Participant) HasSource(msi MediaSourceID) bool {
	for _, s := range p.Streams {
		if id, err := ParseMediaSourceID(s.SourceID); err == nil && id == msi {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the streams slice.
func (p *Participant) Clone() *Participant {
	c := *p
	c.Streams = append([]MediaStream(nil), p.Streams...)
	return &c
}
