package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dkeye/Meetme/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const EnvPrefix = "MEETME"

type Config struct {
	Mode     string        `mapstructure:"mode"`
	Port     int           `mapstructure:"port"`
	LogLevel string        `mapstructure:"log_level"`
	Gateway  GatewayConfig `mapstructure:"gateway"`
	Meetme   MeetmeConfig  `mapstructure:"meetme"`
}

type GatewayConfig struct {
	URL            string        `mapstructure:"url"`
	Username       string        `mapstructure:"username"`
	Secret         string        `mapstructure:"secret"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
}

type MeetmeConfig struct {
	BaseAddress  int           `mapstructure:"base_address"`
	RoomCount    int           `mapstructure:"room_count"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	StaleAfter   time.Duration `mapstructure:"stale_after"`
	MinVersion   string        `mapstructure:"min_version"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")

	v.SetDefault("gateway.url", "ws://127.0.0.1:8088/ami")
	v.SetDefault("gateway.username", "")
	v.SetDefault("gateway.secret", "")
	v.SetDefault("gateway.command_timeout", "5s")
	v.SetDefault("gateway.ping_period", "30s")

	v.SetDefault("meetme.base_address", 5000)
	v.SetDefault("meetme.room_count", 20)
	v.SetDefault("meetme.probe_timeout", "3s")
	v.SetDefault("meetme.stale_after", "30m")
	v.SetDefault("meetme.min_version", "13.0.0")
}

// Load reads the yaml file at path. With an empty path it looks for
// config/config.<CONFIG_ENV>.yaml and falls back to defaults when that file
// is missing. MEETME_* environment variables override both, with dots in
// keys written as underscores (MEETME_GATEWAY_URL).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		path = fmt.Sprintf("config/config.%s.yaml", env)
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if explicit {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		log.Warn().Str("module", "config").Str("file", path).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", path).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("gateway", cfg.Gateway.URL).
		Int("base_address", cfg.Meetme.BaseAddress).
		Int("room_count", cfg.Meetme.RoomCount).
		Msg("config ready")
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Gateway.URL == "" {
		errs = append(errs, errors.New("gateway.url is required"))
	}
	if c.Meetme.BaseAddress < 0 {
		errs = append(errs, fmt.Errorf("meetme.base_address %d is negative", c.Meetme.BaseAddress))
	}
	if c.Meetme.RoomCount < 0 {
		errs = append(errs, fmt.Errorf("meetme.room_count %d is negative", c.Meetme.RoomCount))
	}
	if _, err := domain.ParseVersion(c.Meetme.MinVersion); err != nil {
		errs = append(errs, fmt.Errorf("meetme.min_version: %w", err))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
