package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "FLDIGILINK_"

// ApplyEnvConfig applies configuration from environment variables (FLDIGILINK_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", getenv("URL"), &cfg.URL)
	s.setString("transport", getenv("TRANSPORT"), &cfg.Transport)
	s.setString("rig-mode", getenv("RIG_MODE"), &cfg.RigMode)
	s.setString("log-level", getenv("LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", getenv("TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("poll", getenv("POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("settle-delay", getenv("SETTLE_DELAY"), &cfg.SettleDelay); err != nil {
		return err
	}

	if err := s.setIntFromString("breaker-threshold", getenv("BREAKER_THRESHOLD"), &cfg.BreakerThreshold); err != nil {
		return err
	}

	s.setBoolFromString("rig-control", getenv("RIG_CONTROL"), &cfg.RigControl)
	s.setBoolFromString("disabled", getenv("DISABLED"), &cfg.Disabled)

	return nil
}

func getenv(key string) string {
	return os.Getenv(EnvPrefix + key)
}
