package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

func (ctl *FeedController) writePump(ctx context.Context, c *WsFeedConn) {
	var ping <-chan time.Time
	if ctl.PingPeriod > 0 {
		ticker := time.NewTicker(ctl.PingPeriod)
		defer ticker.Stop()
		ping = ticker.C
	}
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			c.Close()
			return
		case <-ping:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				c.Close()
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Info().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				c.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				c.Close()
				return
			}
		}
	}
}

func (ctl *FeedController) readPump(ctx context.Context, f *feed, c *WsFeedConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("feed", f.id).Msg("readPump closing")
		ctl.Limiter.Forget(f.id)
		c.Close()
	}()

	if ctl.PingPeriod > 0 {
		wait := ctl.PingPeriod * 10 / 9
		_ = c.conn.SetReadDeadline(time.Now().Add(wait))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(wait))
		})
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("feed", f.id).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Error().Err(err).Str("module", "signal").Str("feed", f.id).Msg("readPump read error")
				}
				return
			}
			ctl.handleMessage(f, data)
		}
	}
}

func (ctl *FeedController) handleMessage(f *feed, data []byte) {
	if !ctl.Limiter.Allow(f.id) {
		log.Warn().Str("module", "signal").Str("feed", f.id).Msg("rate limited")
		sendError(f, "rate_limited")
		return
	}

	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		sendError(f, "bad_json")
		return
	}

	switch env.Type {
	case "participants_added":
		ctl.handleParticipants(f, data, false)
	case "participants_updated":
		ctl.handleParticipants(f, data, true)
	case "participants_removed":
		ctl.handleRemoved(f, data)
	case "dominant_speaker":
		ctl.handleDominantSpeaker(f, data)
	case "ping":
		ctl.handlePing(f)
	case "snapshot":
		ctl.handleSnapshot(f)
	case "offer":
		ctl.handleOffer(f, data)
	case "candidate":
		ctl.handleCandidate(f, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown message")
		sendError(f, "unknown_type")
	}
}

func sendJSON(f *feed, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	if err := f.conn.TrySend(b); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("feed", f.id).Msg("send dropped")
	}
}

func sendError(f *feed, code string) {
	sendJSON(f, map[string]any{
		"type":  "error",
		"error": code,
	})
}
