package domain

import "github.com/google/uuid"

type CallID string

// Call is the meta of one joined call.
type Call struct {
	ID      CallID `json:"id"`
	Sockets int    `json:"sockets"`
}

// NewCallID generates an id for calls joined without one.
func NewCallID() CallID {
	return CallID(uuid.NewString())
}
