package signal

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dkeye/Multiview/internal/app/orch"
	"github.com/dkeye/Multiview/internal/config"
	"github.com/dkeye/Multiview/internal/core"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	mu     sync.Mutex
	frames []map[string]any
}

func (c *recordingConn) TrySend(f core.Frame) error {
	var m map[string]any
	if err := json.Unmarshal(f, &m); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, m)
	return nil
}

func (c *recordingConn) Close() {}

func (c *recordingConn) types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.frames))
	for _, f := range c.frames {
		out = append(out, f["type"].(string))
	}
	return out
}

func (c *recordingConn) last() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func newTestFeed(t *testing.T, limiter *RateLimiter) (*FeedController, *feed, *recordingConn) {
	t.Helper()
	bot := orch.NewBot(&config.Config{
		MultiviewSockets:    1,
		VBSSEnabled:         true,
		PreferredResolution: domain.ResolutionHD1080p,
		DefaultResolution:   domain.ResolutionSD360p,
	}, nil)
	sess, err := bot.JoinCall(t.Context(), "call")
	require.NoError(t, err)
	t.Cleanup(bot.EndAll)

	conn := &recordingConn{}
	ctl := NewFeedController(bot, limiter, 0, 0)
	return ctl, &feed{id: "feed", call: "call", sess: sess, conn: conn}, conn
}

const addAB = `{"type":"participants_added","participants":[
	{"id":"a","streams":[{"type":"video","direction":"sendrecv","source_id":"1"}]},
	{"id":"b","streams":[{"type":"video","direction":"sendrecv","source_id":"2"},
	                     {"type":"vbss","direction":"sendonly","source_id":"20"}]}
]}`

func TestFeedRosterMessages(t *testing.T) {
	t.Parallel()
	ctl, f, _ := newTestFeed(t, nil)

	ctl.handleMessage(f, []byte(addAB))
	snap := f.sess.Snapshot()
	assert.Equal(t, []domain.Subscription{{Source: 1, Socket: 0}}, snap.Subscriptions)
	assert.Equal(t, domain.MediaSourceID(20), snap.ScreenShare)

	ctl.handleMessage(f, []byte(`{"type":"dominant_speaker","msi":2}`))
	assert.Equal(t, []domain.Subscription{{Source: 2, Socket: 0}}, f.sess.Snapshot().Subscriptions)

	ctl.handleMessage(f, []byte(`{"type":"dominant_speaker","msi":null}`))
	assert.Equal(t, domain.NoMediaSource, f.sess.Roster.DominantSpeaker())

	ctl.handleMessage(f, []byte(`{"type":"participants_updated","participants":[
		{"id":"b","streams":[{"type":"video","direction":"inactive","source_id":"2"}]}]}`))
	snap = f.sess.Snapshot()
	assert.Empty(t, snap.Subscriptions)
	assert.Equal(t, domain.NoMediaSource, snap.ScreenShare)

	ctl.handleMessage(f, []byte(`{"type":"participants_removed","ids":["a","b"]}`))
	assert.Equal(t, 0, f.sess.Roster.Len())
}

func TestFeedRepliesAndErrors(t *testing.T) {
	t.Parallel()
	ctl, f, conn := newTestFeed(t, nil)

	ctl.handleMessage(f, []byte(`{"type":"ping"}`))
	ctl.handleMessage(f, []byte(`not json`))
	ctl.handleMessage(f, []byte(`{"type":"teleport"}`))
	ctl.handleMessage(f, []byte(`{"type":"participants_added","participants":[{"id":""}]}`))
	ctl.handleMessage(f, []byte(`{"type":"candidate","candidate":"x"}`))
	ctl.handleMessage(f, []byte(`{"type":"snapshot"}`))

	assert.Equal(t, []string{"pong", "error", "error", "error", "error", "snapshot"}, conn.types())
	state, ok := conn.last()["state"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, state, "subscriptions")
}

func TestFeedRateLimited(t *testing.T) {
	t.Parallel()
	ctl, f, conn := newTestFeed(t, NewRateLimiter(2, time.Minute))

	for i := 0; i < 3; i++ {
		ctl.handleMessage(f, []byte(`{"type":"ping"}`))
	}
	assert.Equal(t, []string{"pong", "pong", "error"}, conn.types())
	assert.Equal(t, "rate_limited", conn.last()["error"])
}

func TestRateLimiterWindow(t *testing.T) {
	t.Parallel()
	now := time.Unix(0, 0)
	rl := NewRateLimiter(2, time.Second)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("x"))
	assert.True(t, rl.Allow("x"))
	assert.False(t, rl.Allow("x"))
	assert.True(t, rl.Allow("y"))

	now = now.Add(1500 * time.Millisecond)
	assert.True(t, rl.Allow("x"))

	rl.Forget("x")
	assert.True(t, rl.Allow("x"))
	assert.True(t, rl.Allow("x"))

	var nilLimiter *RateLimiter
	assert.True(t, nilLimiter.Allow("x"))
}
