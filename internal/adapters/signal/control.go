package signal

import "github.com/dkeye/Multiview/internal/core"

func (ctl *FeedController) handlePing(f *feed) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	sendJSON(f, resp)
}

func (ctl *FeedController) handleSnapshot(f *feed) {
	resp := struct {
		Type  string        `json:"type"`
		State core.Snapshot `json:"state"`
	}{
		Type:  "snapshot",
		State: f.sess.Snapshot(),
	}
	sendJSON(f, resp)
}
