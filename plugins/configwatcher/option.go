package configwatcher

import "github.com/tlf-contrib/fldigilink/pkg/fldigi"

// WithConfigWatcher returns a fldigi Option that enables config file
// watching.
//
// Usage:
//
//	c, err := fldigi.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        Path:          "/etc/fldigilink.toml",
//	        DebounceDelay: 200 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) fldigi.Option {
	return fldigi.WithPlugin(New(cfg))
}

// WithDefaultConfigWatcher watches ~/.fldigilink/config.toml.
func WithDefaultConfigWatcher() fldigi.Option {
	return WithConfigWatcher(DefaultConfig())
}
