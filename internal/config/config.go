package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/cwarden/planer/internal/appointment"
)

type Config struct {
	// File settings
	AppointmentsFile string
	StoreFormat      string
	LogFile          string

	// Display settings
	DateFormat  string
	TimeFormat  string
	StartupView string

	// UI settings
	Colors      map[string]string
	KeyBindings map[string]string

	// Behavior settings
	AutoReload    bool
	ConfirmDelete bool
	WrapText      bool
	Debug         bool

	// New appointment defaults
	DefaultPriority appointment.Priority
	WarningDays     int
}

var (
	setRe   = regexp.MustCompile(`^set\s+(\w+)\s+(.+)$`)
	bindRe  = regexp.MustCompile(`^bind\s+(\S+)\s+(\S+)$`)
	colorRe = regexp.MustCompile(`^color\s+(\w+)\s+(.+)$`)
)

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		AppointmentsFile: filepath.Join(home, ".local", "share", "planer", "saved.yml"),
		LogFile:          filepath.Join(home, ".local", "state", "planer", "planer.log"),

		DateFormat:  "January 2006",
		TimeFormat:  "15:04",
		StartupView: "month",

		Colors: map[string]string{
			"today":    "yellow",
			"selected": "reverse",
			"weekend":  "blue",
			"blank":    "240",
			"high":     "red",
			"middle":   "green",
			"low":      "245",
			"header":   "bold",
			"invalid":  "red",
		},

		KeyBindings: map[string]string{
			"quit":               "q",
			"help":               "?",
			"today":              "t",
			"goto_date":          "g",
			"reload":             "r",
			"new_appointment":    "n",
			"quick_add":          "a",
			"edit_appointment":   "e",
			"delete_appointment": "d",
			"prev_day":           "h",
			"next_day":           "l",
			"prev_week":          "k",
			"next_week":          "j",
			"prev_item":          "K",
			"next_item":          "J",
			"zoom_in":            "+",
			"zoom_out":           "-",
			"view_year":          "y",
			"view_month":         "m",
			"view_week":          "w",
		},

		AutoReload:    true,
		ConfirmDelete: true,
		WrapText:      true,

		DefaultPriority: appointment.PriorityMiddle,
	}
}

// Paths returns the config file locations in the order they are tried.
func Paths() []string {
	paths := []string{os.Getenv("PLANER_CONFIG")}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "planer", "planerrc"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths,
			filepath.Join(home, ".config", "planer", "planerrc"),
			filepath.Join(home, ".planerrc"),
		)
	}
	return paths
}

// LoadConfig reads the first config file found in Paths over the
// defaults. No config file at all is not an error.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	for _, path := range Paths() {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			if err := config.loadFromFile(path); err != nil {
				return nil, fmt.Errorf("error loading config from %s: %w", path, err)
			}
			break
		}
	}

	return config, nil
}

// LoadFile reads path over the defaults. Unlike LoadConfig the file must
// exist.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := config.loadFromFile(path); err != nil {
		return nil, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) loadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		if err := c.parseLine(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return scanner.Err()
}

func (c *Config) parseLine(line string) error {
	line = strings.TrimSpace(line)

	// Skip comments and empty lines
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	// set variable value
	if matches := setRe.FindStringSubmatch(line); matches != nil {
		return c.setVariable(matches[1], matches[2])
	}

	// bind key action
	if matches := bindRe.FindStringSubmatch(line); matches != nil {
		return c.bind(matches[1], matches[2])
	}

	// color element color_spec
	if matches := colorRe.FindStringSubmatch(line); matches != nil {
		if _, ok := c.Colors[matches[1]]; !ok {
			return fmt.Errorf("unknown color element: %s", matches[1])
		}
		c.Colors[matches[1]] = strings.Trim(matches[2], `"'`)
		return nil
	}

	return fmt.Errorf("unknown config line: %s", line)
}

// bind assigns key to action, taking the key away from any action that
// had it.
func (c *Config) bind(key, action string) error {
	if _, ok := c.KeyBindings[action]; !ok {
		return fmt.Errorf("unknown action: %s", action)
	}
	for a, k := range c.KeyBindings {
		if k == key {
			c.KeyBindings[a] = ""
		}
	}
	c.KeyBindings[action] = key
	return nil
}

func (c *Config) setVariable(name, value string) error {
	// Remove quotes if present
	value = strings.Trim(value, `"'`)

	switch name {
	case "appointments_file":
		c.AppointmentsFile = expandHome(value)

	case "store_format":
		switch strings.ToLower(value) {
		case "yaml", "yml", "sqlite", "auto":
			c.StoreFormat = strings.ToLower(value)
			if c.StoreFormat == "auto" {
				c.StoreFormat = ""
			}
		default:
			return fmt.Errorf("invalid store_format: %s", value)
		}

	case "log_file":
		c.LogFile = expandHome(value)

	case "date_format":
		c.DateFormat = value

	case "time_format":
		c.TimeFormat = value

	case "startup_view":
		switch strings.ToLower(value) {
		case "year", "month", "week":
			c.StartupView = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid startup_view: %s", value)
		}

	case "auto_reload":
		c.AutoReload = parseBool(value)

	case "confirm_delete":
		c.ConfirmDelete = parseBool(value)

	case "wrap_text":
		c.WrapText = parseBool(value)

	case "debug":
		c.Debug = parseBool(value)

	case "default_priority":
		p, err := appointment.ParsePriority(value)
		if err != nil {
			return fmt.Errorf("invalid default_priority: %s", value)
		}
		c.DefaultPriority = p

	case "warning_days":
		days, err := strconv.Atoi(value)
		if err != nil || days < 0 {
			return fmt.Errorf("invalid warning_days: %s", value)
		}
		c.WarningDays = days

	default:
		return fmt.Errorf("unknown config variable: %s", name)
	}

	return nil
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true
	default:
		return false
	}
}

// expandHome expands a leading ~/ to the home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
