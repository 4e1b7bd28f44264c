package main

import (
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/tlf-contrib/fldigilink/pkg/fldigi"
)

// buildStatusRows turns a snapshot into Item/Value table rows.
func buildStatusRows(s fldigi.Snapshot, color bool) [][]string {
	good := func(v string) string { return paint(v, text.FgGreen, color) }
	bad := func(v string) string { return paint(v, text.FgRed, color) }

	rows := [][]string{}
	if !s.Enabled {
		rows = append(rows, []string{"Remote control", bad("disabled")})
		return append(rows, rigRows(s.Rig)...)
	}

	rows = append(rows,
		[]string{"Remote control", good("enabled")},
		[]string{"Endpoint", s.URL},
		[]string{"Transport", s.Transport},
		[]string{"Session", s.SessionID},
	)
	if s.Ready {
		rows = append(rows, []string{"Connection", good("ready")})
	} else {
		rows = append(rows, []string{"Connection", bad("not ready")})
	}
	if s.BreakerOpen {
		rows = append(rows, []string{"Circuit breaker", bad("open")})
	} else {
		rows = append(rows, []string{"Circuit breaker", good("closed")})
	}
	rows = append(rows,
		[]string{"TRX state", orDash(s.TRXState)},
		[]string{"RX length", strconv.Itoa(s.RXLength)},
		[]string{"Carrier", strconv.Itoa(s.Carrier) + " Hz"},
	)
	return append(rows, rigRows(s.Rig)...)
}

func rigRows(r fldigi.RigContext) [][]string {
	control := "inactive"
	if r.Active {
		control = "active"
	}
	return [][]string{
		{"Rig mode", r.Mode.String()},
		{"Rig control", control},
	}
}

func paint(v string, c text.Color, enabled bool) string {
	if !enabled {
		return v
	}
	return c.Sprint(v)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func shouldColorize(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
