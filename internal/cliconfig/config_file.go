package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	URL              string `toml:"url"`
	Transport        string `toml:"transport"`
	Timeout          string `toml:"timeout"`
	PollInterval     string `toml:"poll_interval"`
	SettleDelay      string `toml:"settle_delay"`
	BreakerThreshold int    `toml:"breaker_threshold"`
	RigMode          string `toml:"rig_mode"`
	RigControl       *bool  `toml:"rig_control"`
	LogLevel         string `toml:"log_level"`
	Disabled         *bool  `toml:"disabled"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.fldigilink/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".fldigilink", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", fc.URL, &cfg.URL)
	s.setString("transport", fc.Transport, &cfg.Transport)
	s.setString("rig-mode", fc.RigMode, &cfg.RigMode)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("settle-delay", fc.SettleDelay, &cfg.SettleDelay); err != nil {
		return err
	}

	s.setInt("breaker-threshold", fc.BreakerThreshold, &cfg.BreakerThreshold)

	s.setBool("rig-control", fc.RigControl, &cfg.RigControl)
	s.setBool("disabled", fc.Disabled, &cfg.Disabled)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
