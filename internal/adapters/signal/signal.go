// Package signal carries the call platform's event feed over websocket:
// roster batches, dominant speaker changes and the media leg's SDP/ICE.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/Multiview/internal/app/orch"
	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

type FeedController struct {
	Bot        *orch.Bot
	Limiter    *RateLimiter
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewFeedController(bot *orch.Bot, limiter *RateLimiter, readLimit int64, pingPeriod time.Duration) *FeedController {
	return &FeedController{
		Bot:        bot,
		Limiter:    limiter,
		ReadLimit:  readLimit,
		PingPeriod: pingPeriod,
	}
}

// feed is one platform connection bound to one call.
type feed struct {
	id   string
	call domain.CallID
	sess *orch.CallSession
	conn core.SignalConnection
}

type WsFeedConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

var _ core.SignalConnection = (*WsFeedConn)(nil)

func (c *WsFeedConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsFeedConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleFeed upgrades the request into the event feed of call :id. The
// connection ends with ctx or with the call, whichever comes first.
func (ctl *FeedController) HandleFeed(ctx context.Context, c *gin.Context) {
	id := domain.CallID(c.Param("id"))
	sess, ok := ctl.Bot.Call(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "call not found"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &WsFeedConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
	f := &feed{
		id:   uuid.NewString(),
		call: id,
		sess: sess,
		conn: conn,
	}
	log.Info().Str("module", "signal").Str("call", string(id)).Str("feed", f.id).Msg("new feed connection")

	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(sess.Context(), cancel)
	go ctl.writePump(ctx, conn)
	go func() {
		defer cancel()
		defer stop()
		ctl.readPump(ctx, f, conn)
	}()
}
