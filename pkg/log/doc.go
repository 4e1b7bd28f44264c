// Package log is the logging abstraction used by the fldigi bridge.
//
// Library code never talks to a concrete logger. It receives a [Logger],
// which defaults to [NoopLogger], and the application decides where the
// messages go:
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	client, err := fldigi.New(cfg, fldigi.WithLogger(log.NewZerologAdapterWithLogger(zl)))
//
// [Logger.With] derives a child logger carrying fixed fields, which is how
// each component tags its messages (component=engine, session=<id>, ...).
package log
