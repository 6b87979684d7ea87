package core

import "github.com/dkeye/Multiview/internal/domain"

// Snapshot is a read-only view of a call's socket assignment.
type Snapshot struct {
	// Recency lists subscribed video sources, most recently referenced first.
	Recency       []domain.MediaSourceID `json:"recency"`
	Subscriptions []domain.Subscription  `json:"subscriptions"`
	FreeSockets   []domain.SocketID      `json:"free_sockets"`
	// ScreenShare is domain.NoMediaSource when nobody shares.
	ScreenShare domain.MediaSourceID `json:"screen_share"`
}

// CallHandler owns everything attached to one call.
type CallHandler interface {
	Call() domain.Call
	Snapshot() Snapshot
	Close()
}

type CallInfo struct {
	ID            domain.CallID `json:"id"`
	Sockets       int           `json:"sockets"`
	Subscriptions int           `json:"subscriptions"`
}
