// Package fldigi bridges a contest logger to the fldigi digital-mode modem
// over its XML-RPC interface.
//
// A Client owns one session to fldigi and serializes every remote call
// through a single Engine. After a transport fault the engine's circuit
// breaker skips the next calls without touching the network, so an absent
// modem costs the logger nothing but a log line.
//
// Three consumers sit on the engine:
//
//   - Dispatcher pushes text into the transmit buffer and keys the
//     transmitter, dropping back to receive when the text has been sent.
//   - Poller returns receive text appended since the previous poll.
//   - Corrector reads the audio carrier and, in RTTY with rig control
//     active, recenters it and reports the shift once.
//
// Example:
//
//	c, err := fldigi.New(fldigi.Config{URL: "http://localhost:7362/RPC2"},
//	    fldigi.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	if err := c.SendText(ctx, "CQ TEST DL1ABC"); err != nil {
//	    logger.Warn("send failed", log.Err(err))
//	}
//
// With Config.Disabled set, the client is built around a no-op remote:
// sends succeed silently and polls return nothing.
package fldigi
