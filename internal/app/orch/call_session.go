package orch

import (
	"context"
	"sync"

	"github.com/dkeye/Multiview/internal/app"
	"github.com/dkeye/Multiview/internal/app/sfu"
	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
)

// CallSession bundles everything the bot holds for one call.
type CallSession struct {
	orch   *Orchestrator
	Roster *app.Roster
	Relays *sfu.RelayManager

	sockets     []*sfu.Socket
	screenShare *sfu.Socket

	mu    sync.Mutex
	media core.MediaConnection
}

var _ core.CallHandler = (*CallSession)(nil)

func (c *CallSession) Call() domain.Call { return c.orch.Call() }
func (c *CallSession) Snapshot() core.Snapshot { return c.orch.Snapshot() }
func (c *CallSession) Orchestrator() *Orchestrator { return c.orch }

// Context is done once the call is closed.
func (c *CallSession) Context() context.Context { return c.orch.ctx }

// Sockets returns the multiview sockets followed by the screen share socket, if any.
func (c *CallSession) Sockets() []*sfu.Socket {
	out := make([]*sfu.Socket, 0, len(c.sockets)+1)
	out = append(out, c.sockets...)
	if c.screenShare != nil {
		out = append(out, c.screenShare)
	}
	return out
}

// Close stops event delivery first, then media, relays and sockets.
func (c *CallSession) Close() {
	c.orch.Close()

	c.mu.Lock()
	mc := c.media
	c.media = nil
	c.mu.Unlock()
	if mc != nil {
		mc.Close()
	}

	c.Relays.StopAll()
	for _, s := range c.Sockets() {
		s.Close()
	}
}

// Media returns the current media leg, or nil.
func (c *CallSession) Media() core.MediaConnection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.media
}
