package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				URL:              "http://shack:7362/RPC2",
				Transport:        "jsonrpc",
				Timeout:          "3s",
				PollInterval:     "250ms",
				SettleDelay:      "1s",
				BreakerThreshold: 5,
				RigMode:          "RTTY",
				RigControl:       &trueVal,
				LogLevel:         "debug",
				Disabled:         &falseVal,
			},
			changed: map[string]bool{},
			initial: Config{Disabled: true},
			expected: Config{
				URL:              "http://shack:7362/RPC2",
				Transport:        "jsonrpc",
				Timeout:          3 * time.Second,
				PollInterval:     250 * time.Millisecond,
				SettleDelay:      time.Second,
				BreakerThreshold: 5,
				RigMode:          "RTTY",
				RigControl:       true,
				LogLevel:         "debug",
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				URL:        "http://file:7362/RPC2",
				RigMode:    "LSB",
				RigControl: &trueVal,
			},
			changed: map[string]bool{"url": true, "rig-control": true},
			initial: Config{URL: "http://flag:7362/RPC2"},
			expected: Config{
				URL:     "http://flag:7362/RPC2", // unchanged because flag was set
				RigMode: "LSB",
			},
		},
		{
			name:       "empty values keep defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{PollInterval: "fast"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config =\n  %+v\nwant\n  %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
url = "http://192.168.1.20:7362/RPC2"
poll_interval = "1s"
rig_mode = "USB"
rig_control = true
breaker_threshold = 20
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.URL != "http://192.168.1.20:7362/RPC2" {
		t.Errorf("URL = %v", fc.URL)
	}
	if fc.PollInterval != "1s" {
		t.Errorf("PollInterval = %v, want 1s", fc.PollInterval)
	}
	if fc.RigMode != "USB" {
		t.Errorf("RigMode = %v, want USB", fc.RigMode)
	}
	if fc.RigControl == nil || !*fc.RigControl {
		t.Errorf("RigControl = %v, want true", fc.RigControl)
	}
	if fc.Disabled != nil {
		t.Errorf("Disabled = %v, want unset", *fc.Disabled)
	}
	if fc.BreakerThreshold != 20 {
		t.Errorf("BreakerThreshold = %v, want 20", fc.BreakerThreshold)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	if err := os.WriteFile(configPath, []byte("url = \"http://x\"\nthis is not valid toml\n"), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	if _, err := LoadFileConfig(configPath); err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.HasSuffix(path, filepath.Join(".fldigilink", "config.toml")) {
		t.Errorf("DefaultConfigPath() = %v, want ~/.fldigilink/config.toml", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.toml")

	if err := os.WriteFile(existingFile, []byte("url = \"\"\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}
	if FileExists(filepath.Join(tmpDir, "nonexistent.toml")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
