package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwarden/planer/internal/appointment"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !strings.HasSuffix(cfg.AppointmentsFile, filepath.Join("planer", "saved.yml")) {
		t.Errorf("Wrong default appointments file: %s", cfg.AppointmentsFile)
	}

	if cfg.StoreFormat != "" {
		t.Errorf("Store format should be inferred by default, got %s", cfg.StoreFormat)
	}

	if cfg.DateFormat != "January 2006" {
		t.Errorf("Wrong default date format: %s", cfg.DateFormat)
	}

	if cfg.StartupView != "month" {
		t.Errorf("Wrong default startup view: %s", cfg.StartupView)
	}

	if !cfg.AutoReload {
		t.Error("Auto reload should be enabled by default")
	}

	if cfg.DefaultPriority != appointment.PriorityMiddle {
		t.Errorf("Wrong default priority: %v", cfg.DefaultPriority)
	}

	if cfg.WarningDays != 0 {
		t.Errorf("Wrong default warning days: %d", cfg.WarningDays)
	}

	if cfg.KeyBindings["quit"] != "q" {
		t.Errorf("Wrong quit key binding: %s", cfg.KeyBindings["quit"])
	}
}

func TestParseLine(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		line     string
		check    func(*Config) bool
		hasError bool
	}{
		{
			line: "set store_format sqlite",
			check: func(c *Config) bool {
				return c.StoreFormat == "sqlite"
			},
		},
		{
			line: "set startup_view week",
			check: func(c *Config) bool {
				return c.StartupView == "week"
			},
		},
		{
			line: "set auto_reload false",
			check: func(c *Config) bool {
				return !c.AutoReload
			},
		},
		{
			line: "set warning_days 7",
			check: func(c *Config) bool {
				return c.WarningDays == 7
			},
		},
		{
			line: "bind x quit",
			check: func(c *Config) bool {
				return c.KeyBindings["quit"] == "x"
			},
		},
		{
			line: "bind t zoom_in",
			check: func(c *Config) bool {
				return c.KeyBindings["zoom_in"] == "t" && c.KeyBindings["today"] == ""
			},
		},
		{
			line: "color today cyan",
			check: func(c *Config) bool {
				return c.Colors["today"] == "cyan"
			},
		},
		{
			line:     "bind z fly_away",
			hasError: true,
		},
		{
			line:     "color sky blue",
			hasError: true,
		},
		{
			line:     "invalid command",
			hasError: true,
		},
		{
			line: "   # comment line",
		},
		{
			line: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := cfg.parseLine(tt.line)

			if tt.hasError && err == nil {
				t.Error("Expected error but got none")
			}

			if !tt.hasError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Check failed for line: %s", tt.line)
			}
		})
	}
}

func TestSetVariable(t *testing.T) {
	cfg := DefaultConfig()
	home, _ := os.UserHomeDir()

	tests := []struct {
		name     string
		value    string
		check    func(*Config) bool
		hasError bool
	}{
		{
			name:  "appointments_file",
			value: "~/cal/saved.yml",
			check: func(c *Config) bool {
				return c.AppointmentsFile == filepath.Join(home, "cal", "saved.yml")
			},
		},
		{
			name:  "appointments_file",
			value: `"/tmp/planer.db"`,
			check: func(c *Config) bool {
				return c.AppointmentsFile == "/tmp/planer.db"
			},
		},
		{
			name:  "store_format",
			value: "auto",
			check: func(c *Config) bool {
				return c.StoreFormat == ""
			},
		},
		{
			name:     "store_format",
			value:    "csv",
			hasError: true,
		},
		{
			name:     "startup_view",
			value:    "day",
			hasError: true,
		},
		{
			name:  "default_priority",
			value: "high",
			check: func(c *Config) bool {
				return c.DefaultPriority == appointment.PriorityHigh
			},
		},
		{
			name:     "default_priority",
			value:    "urgent",
			hasError: true,
		},
		{
			name:     "warning_days",
			value:    "-1",
			hasError: true,
		},
		{
			name:  "confirm_delete",
			value: "no",
			check: func(c *Config) bool {
				return !c.ConfirmDelete
			},
		},
		{
			name:  "debug",
			value: "on",
			check: func(c *Config) bool {
				return c.Debug
			},
		},
		{
			name:     "unknown_variable",
			value:    "something",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cfg.setVariable(tt.name, tt.value)

			if tt.hasError && err == nil {
				t.Error("Expected error but got none")
			}

			if !tt.hasError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}

			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Check failed for %s = %s", tt.name, tt.value)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "planerrc")

	content := `# Test config file
set appointments_file /tmp/planer-test/saved.yml
set startup_view year
set date_format 01/2006
set wrap_text false
set warning_days 2
set default_priority low

bind Q quit
bind ? help

color today cyan
color selected reverse
`

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg, err := LoadFile(configFile)
	if err != nil {
		t.Fatalf("Failed to load config file: %v", err)
	}

	if cfg.AppointmentsFile != "/tmp/planer-test/saved.yml" {
		t.Errorf("Wrong appointments file: %s", cfg.AppointmentsFile)
	}

	if cfg.StartupView != "year" {
		t.Errorf("Wrong startup view: %s", cfg.StartupView)
	}

	if cfg.DateFormat != "01/2006" {
		t.Errorf("Wrong date format: %s", cfg.DateFormat)
	}

	if cfg.WrapText {
		t.Error("Wrap text should be disabled")
	}

	if cfg.WarningDays != 2 || cfg.DefaultPriority != appointment.PriorityLow {
		t.Errorf("Wrong draft defaults: %d %v", cfg.WarningDays, cfg.DefaultPriority)
	}

	if cfg.KeyBindings["quit"] != "Q" {
		t.Errorf("Wrong quit binding: %s", cfg.KeyBindings["quit"])
	}

	if cfg.Colors["today"] != "cyan" {
		t.Errorf("Wrong today color: %s", cfg.Colors["today"])
	}
}

func TestLoadFileReportsLine(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "planerrc")
	if err := os.WriteFile(configFile, []byte("set debug true\nset startup_view fortnight\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configFile)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected error mentioning line 2, got %v", err)
	}
}

func TestLoadConfigSearchOrder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	explicit := filepath.Join(dir, "explicit")
	xdg := filepath.Join(dir, "xdg", "planer", "planerrc")
	if err := os.MkdirAll(filepath.Dir(xdg), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(xdg, []byte("set startup_view week\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(explicit, []byte("set startup_view year\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PLANER_CONFIG", "")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StartupView != "week" {
		t.Errorf("XDG config not used: %s", cfg.StartupView)
	}

	t.Setenv("PLANER_CONFIG", explicit)
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StartupView != "year" {
		t.Errorf("PLANER_CONFIG not preferred: %s", cfg.StartupView)
	}

	t.Setenv("PLANER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "empty"))
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StartupView != "month" {
		t.Errorf("Defaults not used without a config file: %s", cfg.StartupView)
	}
}
