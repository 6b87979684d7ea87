package signal

import (
	"encoding/json"

	"github.com/dkeye/Multiview/internal/adapters/rtc"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

func sendCandidate(f *feed, ci webrtc.ICECandidateInit) {
	resp := struct {
		Type          string `json:"type"`
		Candidate     string `json:"candidate"`
		SDPMid        string `json:"sdpMid,omitempty"`
		SDPMLineIndex uint16 `json:"sdpMLineIndex,omitempty"`
	}{
		Type:      "candidate",
		Candidate: ci.Candidate,
	}
	if ci.SDPMid != nil {
		resp.SDPMid = *ci.SDPMid
	}
	if ci.SDPMLineIndex != nil {
		resp.SDPMLineIndex = *ci.SDPMLineIndex
	}
	sendJSON(f, resp)
}

// handleOffer opens a new media leg for the call. The answer carries one
// output track per socket. The leg lives as long as the call, not the feed.
func (ctl *FeedController) handleOffer(f *feed, data []byte) {
	var p struct {
		SDP string `json:"sdp"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		sendError(f, "bad_payload")
		return
	}

	wc, err := rtc.NewConnection(rtc.DefaultConfig(), f.call)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("webrtc new pc")
		sendError(f, "media_failed")
		return
	}
	wc.OnICECandidate(func(ci webrtc.ICECandidateInit) {
		sendCandidate(f, ci)
	})
	f.sess.BindMedia(wc)

	fail := func(err error, msg string) {
		log.Error().Err(err).Str("module", "signal").Str("call", string(f.call)).Msg(msg)
		wc.Close()
		sendError(f, "media_failed")
	}
	if err := wc.Start(f.sess.Context()); err != nil {
		fail(err, "webrtc start")
		return
	}
	if err := wc.ApplyOffer(webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: p.SDP}); err != nil {
		fail(err, "webrtc apply offer")
		return
	}
	if err := f.sess.AttachOutputs(wc); err != nil {
		fail(err, "attach socket tracks")
		return
	}
	answer, err := wc.CreateAnswer()
	if err != nil {
		fail(err, "webrtc create answer")
		return
	}

	sendJSON(f, map[string]string{
		"type": "answer",
		"sdp":  answer.SDP,
	})
}

func (ctl *FeedController) handleCandidate(f *feed, data []byte) {
	var p struct {
		Candidate     string `json:"candidate"`
		SDPMid        string `json:"sdpMid"`
		SDPMLineIndex uint16 `json:"sdpMLineIndex"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		sendError(f, "bad_payload")
		return
	}

	cand := webrtc.ICECandidateInit{
		Candidate: p.Candidate,
	}
	if p.SDPMid != "" {
		cand.SDPMid = &p.SDPMid
	}
	cand.SDPMLineIndex = &p.SDPMLineIndex

	mc := f.sess.Media()
	if mc == nil {
		log.Warn().Str("module", "signal").Str("call", string(f.call)).Msg("candidate: no media connection")
		sendError(f, "no_media")
		return
	}
	if err := mc.AddICECandidate(cand); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("add ice candidate")
	}
}
