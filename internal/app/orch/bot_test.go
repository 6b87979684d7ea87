package orch

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/dkeye/Multiview/internal/app"
	"github.com/dkeye/Multiview/internal/app/sfu"
	"github.com/dkeye/Multiview/internal/config"
	"github.com/dkeye/Multiview/internal/domain"
	"github.com/pion/interceptor"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		MultiviewSockets:    2,
		VBSSEnabled:         true,
		PreferredResolution: domain.ResolutionHD1080p,
		DefaultResolution:   domain.ResolutionSD360p,
		EventQueueSize:      8,
	}
}

func TestBotJoinAndEndCall(t *testing.T) {
	t.Parallel()
	bot := NewBot(testConfig(), nil)

	sess, err := bot.JoinCall(context.Background(), "call-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Call{ID: "call-1", Sockets: 2}, sess.Call())
	require.Len(t, sess.Sockets(), 3)
	assert.Equal(t, domain.SocketID(2), sess.Sockets()[2].ID())

	_, err = bot.JoinCall(context.Background(), "call-1")
	require.ErrorIs(t, err, app.ErrCallExists)

	got, ok := bot.Call("call-1")
	require.True(t, ok)
	assert.Same(t, sess, got)

	require.Len(t, bot.List(), 1)
	assert.True(t, bot.EndCall("call-1"))
	assert.False(t, bot.EndCall("call-1"))
	assert.Empty(t, bot.List())
	for _, s := range sess.Sockets() {
		assert.Equal(t, sfu.SocketClosed, s.State())
	}
}

func TestBotGeneratesCallID(t *testing.T) {
	t.Parallel()
	bot := NewBot(testConfig(), nil)
	sess, err := bot.JoinCall(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Call().ID)
	bot.EndAll()
	assert.Empty(t, bot.List())
}

func TestSessionDrivesSockets(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.SerializeEvents = true
	bot := NewBot(cfg, nil)
	sess, err := bot.JoinCall(context.Background(), "call")
	require.NoError(t, err)
	defer bot.EndAll()

	sess.Roster.Add(withShare(video("a", "1"), "10", domain.DirectionSendOnly), video("b", "2"), video("c", "3"))
	sess.Roster.SetDominantSpeaker(3)

	sockets := sess.Sockets()
	require.Eventually(t, func() bool {
		src, _ := sockets[1].Source()
		return src == 3
	}, 2*time.Second, 10*time.Millisecond)

	src, res := sockets[0].Source()
	assert.Equal(t, domain.MediaSourceID(1), src)
	assert.Equal(t, domain.ResolutionSD360p, res)
	src, res = sockets[1].Source()
	assert.Equal(t, domain.MediaSourceID(3), src)
	assert.Equal(t, domain.ResolutionHD1080p, res)
	src, _ = sockets[2].Source()
	assert.Equal(t, domain.MediaSourceID(10), src)
}

// blockingReader blocks until closed.
type blockingReader struct{ done chan struct{} }

func (r *blockingReader) ReadRTP() (*rtp.Packet, interceptor.Attributes, error) {
	<-r.done
	return nil, nil, io.EOF
}

func TestSessionRemoteTracks(t *testing.T) {
	t.Parallel()
	bot := NewBot(testConfig(), nil)
	sess, err := bot.JoinCall(context.Background(), "call")
	require.NoError(t, err)
	defer bot.EndAll()

	src := &blockingReader{done: make(chan struct{})}
	defer close(src.done)
	ctx := context.Background()

	sess.onRemoteTrack(ctx, webrtc.RTPCodecTypeAudio, "5", "5", src)
	assert.False(t, sess.Relays.HasRelay(5))

	sess.onRemoteTrack(ctx, webrtc.RTPCodecTypeVideo, "not-a-number", "nope", src)
	assert.Empty(t, sess.Relays.Sources())

	sess.onRemoteTrack(ctx, webrtc.RTPCodecTypeVideo, "stream", "7", src)
	assert.True(t, sess.Relays.HasRelay(7))
}

func TestSourceOfTrack(t *testing.T) {
	t.Parallel()
	cases := []struct {
		stream, track string
		want          domain.MediaSourceID
		ok            bool
	}{
		{"12", "x", 12, true},
		{"x", "13", 13, true},
		{"x", "y", domain.NoMediaSource, false},
	}
	for _, tc := range cases {
		got, err := SourceOfTrack(tc.stream, tc.track)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.ok, err == nil)
	}
}
