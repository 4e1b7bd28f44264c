package cliconfig

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tlf-contrib/fldigilink/internal/domain"
	"github.com/tlf-contrib/fldigilink/pkg/fldigi"
)

// Config holds CLI configuration for fldigilink.
type Config struct {
	URL       string
	Transport string

	Timeout      time.Duration
	PollInterval time.Duration
	SettleDelay  time.Duration

	BreakerThreshold int

	RigMode    string
	RigControl bool

	LogLevel string
	Disabled bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		URL:              fldigi.DefaultURL,
		Transport:        fldigi.DefaultTransport,
		Timeout:          fldigi.DefaultTimeout,
		PollInterval:     fldigi.DefaultPollInterval,
		SettleDelay:      fldigi.DefaultSettleDelay,
		BreakerThreshold: fldigi.DefaultBreakerThreshold,
		LogLevel:         "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.URL == "" && !c.Disabled {
		errs = append(errs, errors.New("url is required"))
	}
	if !fldigi.HasTransport(c.Transport) {
		errs = append(errs, fmt.Errorf("unknown transport %q", c.Transport))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}
	if c.SettleDelay < 0 {
		errs = append(errs, errors.New("settle delay must not be negative"))
	}
	if _, err := domain.ParseRigMode(c.RigMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}

	return errors.Join(errs...)
}

// Library converts the CLI configuration to the client configuration.
func (c Config) Library() (fldigi.Config, error) {
	mode, err := domain.ParseRigMode(c.RigMode)
	if err != nil {
		return fldigi.Config{}, err
	}
	return fldigi.Config{
		URL:              c.URL,
		Transport:        c.Transport,
		Timeout:          c.Timeout,
		PollInterval:     c.PollInterval,
		SettleDelay:      c.SettleDelay,
		BreakerThreshold: c.BreakerThreshold,
		Rig:              domain.RigContext{Mode: mode, Active: c.RigControl},
		Disabled:         c.Disabled,
	}, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
