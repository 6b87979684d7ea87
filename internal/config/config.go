package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dkeye/Multiview/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	StaticPath string        `mapstructure:"static_path"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`

	// MultiviewSockets is the number of pooled video sockets per call.
	MultiviewSockets int `mapstructure:"multiview_sockets"`
	VBSSEnabled      bool `mapstructure:"vbss_enabled"`
	// PreferredResolution is used for forced (dominant speaker) subscriptions,
	// DefaultResolution for roster driven ones.
	PreferredResolution domain.Resolution `mapstructure:"preferred_resolution"`
	DefaultResolution   domain.Resolution `mapstructure:"default_resolution"`

	SerializeEvents bool `mapstructure:"serialize_events"`
	EventQueueSize  int  `mapstructure:"event_queue_size"`

	FeedRateLimit    int           `mapstructure:"feed_rate_limit"`
	FeedRateInterval time.Duration `mapstructure:"feed_rate_interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("multiview_sockets", 4)
	v.SetDefault("vbss_enabled", true)
	v.SetDefault("preferred_resolution", string(domain.ResolutionHD1080p))
	v.SetDefault("default_resolution", string(domain.ResolutionSD360p))
	v.SetDefault("serialize_events", false)
	v.SetDefault("event_queue_size", 64)
	v.SetDefault("feed_rate_limit", 50)
	v.SetDefault("feed_rate_interval", "1s")
}

func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile reads fileName, falling back to defaults when it is missing.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("MULTIVIEW")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Int("multiview_sockets", cfg.MultiviewSockets).
		Bool("vbss", cfg.VBSSEnabled).
		Msg("config ready")
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.MultiviewSockets < 0 {
		return fmt.Errorf("%w: multiview_sockets must be >= 0, got %d", ErrInvalid, c.MultiviewSockets)
	}
	if _, err := domain.ParseResolution(string(c.PreferredResolution)); err != nil {
		return fmt.Errorf("%w: preferred_resolution: %w", ErrInvalid, err)
	}
	if _, err := domain.ParseResolution(string(c.DefaultResolution)); err != nil {
		return fmt.Errorf("%w: default_resolution: %w", ErrInvalid, err)
	}
	if c.EventQueueSize < 0 {
		return fmt.Errorf("%w: event_queue_size must be >= 0", ErrInvalid)
	}
	return nil
}
