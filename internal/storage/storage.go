package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cwarden/planer/internal/appointment"
)

const (
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

// FormatFor picks the store format for path. An explicit format wins;
// otherwise .db, .sqlite and .sqlite3 files are SQLite and anything else
// is YAML.
func FormatFor(path, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatSQLite:
		return FormatSQLite, nil
	case "":
	default:
		return "", fmt.Errorf("unknown store format %q", format)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return FormatYAML, nil
	}
}

// Open returns the persister for path in the given format (see FormatFor).
func Open(path, format string) (appointment.Persister, error) {
	f, err := FormatFor(path, format)
	if err != nil {
		return nil, err
	}
	if f == FormatSQLite {
		return NewSQLiteFile(path), nil
	}
	return NewYAMLFile(path), nil
}
