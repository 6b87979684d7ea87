package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dkeye/Multiview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 4, cfg.MultiviewSockets)
	assert.True(t, cfg.VBSSEnabled)
	assert.Equal(t, domain.ResolutionHD1080p, cfg.PreferredResolution)
	assert.Equal(t, domain.ResolutionSD360p, cfg.DefaultResolution)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, time.Second, cfg.FeedRateInterval)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	body := []byte("port: 9000\nmultiview_sockets: 2\npreferred_resolution: 720p\nserialize_events: true\n")
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 2, cfg.MultiviewSockets)
	assert.Equal(t, domain.ResolutionHD720p, cfg.PreferredResolution)
	assert.True(t, cfg.SerializeEvents)
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("multiview_sockets: -1\n"), 0o600))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidateResolution(t *testing.T) {
	t.Parallel()
	cfg := Config{PreferredResolution: "8k", DefaultResolution: domain.ResolutionSD180p}
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorIs(t, err, domain.ErrBadResolution)
}
