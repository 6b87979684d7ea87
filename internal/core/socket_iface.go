package core

//go:generate mockgen -source=socket_iface.go -destination=mocks/socket_mock.go -package=mocks

import (
	"context"

	"github.com/dkeye/Multiview/internal/domain"
)

// VideoSocket is one decoder channel of a call. Subscribe and Unsubscribe may
// block on the media platform and may fail; both are idempotent per socket.
type VideoSocket interface {
	ID() domain.SocketID
	// Subscribe replaces whatever source the socket received before.
	Subscribe(ctx context.Context, res domain.Resolution, msi domain.MediaSourceID) error
	Unsubscribe(ctx context.Context) error
}
