package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ServerEnv holds `serve` settings sourced from WATERSORT_* env vars.
// Command-line flags override these values.
type ServerEnv struct {
	// Host is the SSH listen host from WATERSORT_SSH_HOST.
	Host string `env:"WATERSORT_SSH_HOST" envDefault:"0.0.0.0"`
	// Port is the SSH listen port from WATERSORT_SSH_PORT.
	Port int `env:"WATERSORT_SSH_PORT" envDefault:"2222"`
	// HostKeyPath is the SSH host key location from WATERSORT_HOST_KEY.
	HostKeyPath string `env:"WATERSORT_HOST_KEY" envDefault:".ssh/watersort_host_ed25519"`
	// DBPath is the progress database from WATERSORT_DB.
	DBPath string `env:"WATERSORT_DB"`
	// ConfigPath is the game config file from WATERSORT_CONFIG.
	ConfigPath string `env:"WATERSORT_CONFIG"`
	// MetricsAddr is the Prometheus listen address from WATERSORT_METRICS_ADDR.
	MetricsAddr string `env:"WATERSORT_METRICS_ADDR"`
	// MaxSessions caps concurrent SSH sessions from WATERSORT_MAX_SESSIONS.
	MaxSessions int `env:"WATERSORT_MAX_SESSIONS" envDefault:"64"`
}

// LoadServerEnv parses ServerEnv from the process environment.
func LoadServerEnv() (ServerEnv, error) {
	var cfg ServerEnv
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("%w: WATERSORT_SSH_PORT %d out of range", ErrInvalidConfig, cfg.Port)
	}
	return cfg, nil
}
