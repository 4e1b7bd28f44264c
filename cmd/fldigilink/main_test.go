package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tlf-contrib/fldigilink/pkg/fldigi"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Item", "Value"},
		[][]string{{"Carrier", "2210 Hz"}, {"short"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	for _, want := range []string{"Item", "Value", "Carrier", "2210 Hz", "short", "╭"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	if got := renderTable(nil, nil, nil); got != "" {
		t.Errorf("renderTable(no headers) = %q, want empty", got)
	}
}

func TestBuildStatusRows(t *testing.T) {
	tests := []struct {
		name string
		snap fldigi.Snapshot
		want map[string]string
	}{
		{
			name: "disabled",
			snap: fldigi.Snapshot{},
			want: map[string]string{
				"Remote control": "disabled",
				"Rig mode":       "NONE",
				"Rig control":    "inactive",
			},
		},
		{
			name: "connected",
			snap: fldigi.Snapshot{
				Enabled:  true,
				Ready:    true,
				URL:      "http://localhost:7362/RPC2",
				TRXState: "RX",
				RXLength: 42,
				Carrier:  2210,
				Rig:      fldigi.RigContext{Mode: fldigi.RigModeRTTY, Active: true},
			},
			want: map[string]string{
				"Remote control":  "enabled",
				"Endpoint":        "http://localhost:7362/RPC2",
				"Connection":      "ready",
				"Circuit breaker": "closed",
				"TRX state":       "RX",
				"RX length":       "42",
				"Carrier":         "2210 Hz",
				"Rig mode":        "RTTY",
				"Rig control":     "active",
			},
		},
		{
			name: "breaker open",
			snap: fldigi.Snapshot{Enabled: true, Ready: true, BreakerOpen: true},
			want: map[string]string{
				"Circuit breaker": "open",
				"TRX state":       "-",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := map[string]string{}
			for _, row := range buildStatusRows(tt.snap, false) {
				got[row[0]] = row[1]
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestShouldColorize(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Error("buffer should not be colorized")
	}
}

func TestCLI_Disabled(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"status", []string{"--disabled", "status"}, "disabled"},
		{"send", []string{"--disabled", "send", "CQ", "TEST"}, ""},
		{"rx", []string{"--disabled", "rx"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
			if !strings.Contains(stderr, "fldigi remote control disabled") {
				t.Errorf("stderr = %q, want status line", stderr)
			}
		})
	}
}

func TestCLI_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"send without text", []string{"--disabled", "send"}, "requires at least 1 arg"},
		{"missing config file", []string{"--config", "/nonexistent/fldigilink.toml", "--disabled", "status"}, "not found"},
		{"bad transport", []string{"--transport", "carrier-pigeon", "status"}, "transport"},
		{"bad rig mode", []string{"--rig-mode", "FM-WIDE", "status"}, "rig mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestCLI_StatusUnreachable(t *testing.T) {
	stdout, _, err := runCLI(t, "--url", "http://127.0.0.1:1/RPC2", "--timeout", "200ms", "status")
	if err == nil {
		t.Fatal("Execute() expected error for unreachable fldigi")
	}
	if !strings.Contains(stdout, "Circuit breaker") || !strings.Contains(stdout, "open") {
		t.Errorf("stdout = %q, want open breaker row", stdout)
	}
}
