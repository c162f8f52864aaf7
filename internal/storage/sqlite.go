package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS appointments (
	id          INTEGER PRIMARY KEY,
	position    INTEGER NOT NULL,
	date        TEXT NOT NULL,
	warning     TEXT NOT NULL,
	priority    TEXT NOT NULL,
	description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS appointment_tags (
	appointment_id INTEGER NOT NULL REFERENCES appointments(id) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	tag            TEXT NOT NULL,
	PRIMARY KEY (appointment_id, position)
);`

const sqliteDateLayout = "2006-01-02 15:04:05"

// SQLiteFile persists appointments in a single-file SQLite database. Like
// YAMLFile it rewrites everything on Save, inside one transaction.
type SQLiteFile struct {
	Path string
}

func NewSQLiteFile(path string) *SQLiteFile {
	return &SQLiteFile{Path: path}
}

func (f *SQLiteFile) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", f.Path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (f *SQLiteFile) Load() ([]appointment.Appointment, error) {
	if _, err := os.Stat(f.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", f.Path, appointment.ErrNoStore)
		}
		return nil, &IOError{Op: "stat", Path: f.Path, Err: err}
	}

	db, err := f.open()
	if err != nil {
		return nil, &IOError{Op: "open", Path: f.Path, Err: err}
	}
	defer db.Close()

	tags, err := loadTags(db)
	if err != nil {
		return nil, &IOError{Op: "read", Path: f.Path, Err: err}
	}

	rows, err := db.Query(`SELECT id, date, warning, priority, description FROM appointments ORDER BY position`)
	if err != nil {
		return nil, &IOError{Op: "read", Path: f.Path, Err: err}
	}
	defer rows.Close()

	var items []appointment.Appointment
	for rows.Next() {
		var (
			a                       appointment.Appointment
			date, warning, priority string
		)
		if err := rows.Scan(&a.ID, &date, &warning, &priority, &a.Description); err != nil {
			return nil, &IOError{Op: "read", Path: f.Path, Err: err}
		}
		if a.Date, err = scanDate(date); err != nil {
			return nil, &ParseError{Path: f.Path, Err: fmt.Errorf("appointment %d: date: %w", a.ID, err)}
		}
		if a.Warning, err = scanDate(warning); err != nil {
			return nil, &ParseError{Path: f.Path, Err: fmt.Errorf("appointment %d: warning: %w", a.ID, err)}
		}
		if a.Priority, err = parseStoredPriority(priority); err != nil {
			return nil, &ParseError{Path: f.Path, Err: fmt.Errorf("appointment %d: %w", a.ID, err)}
		}
		a.Tags = tags[a.ID]
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &IOError{Op: "read", Path: f.Path, Err: err}
	}
	return items, nil
}

func loadTags(db *sql.DB) (map[int][]string, error) {
	rows, err := db.Query(`SELECT appointment_id, tag FROM appointment_tags ORDER BY appointment_id, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make(map[int][]string)
	for rows.Next() {
		var (
			id  int
			tag string
		)
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, err
		}
		tags[id] = append(tags[id], tag)
	}
	return tags, rows.Err()
}

func (f *SQLiteFile) Save(items []appointment.Appointment) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return &IOError{Op: "write", Path: f.Path, Err: err}
	}
	db, err := f.open()
	if err != nil {
		return &IOError{Op: "open", Path: f.Path, Err: err}
	}
	defer db.Close()

	if err := f.replaceAll(db, items); err != nil {
		return &IOError{Op: "write", Path: f.Path, Err: err}
	}
	return nil
}

func (f *SQLiteFile) replaceAll(db *sql.DB, items []appointment.Appointment) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM appointment_tags`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM appointments`); err != nil {
		return err
	}

	for pos, a := range items {
		_, err := tx.Exec(
			`INSERT INTO appointments (id, position, date, warning, priority, description) VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, pos, formatDate(a.Date), formatDate(a.Warning), a.Priority.String(), a.Description,
		)
		if err != nil {
			return fmt.Errorf("insert appointment %d: %w", a.ID, err)
		}
		for i, tag := range a.Tags {
			if _, err := tx.Exec(
				`INSERT INTO appointment_tags (appointment_id, position, tag) VALUES (?, ?, ?)`,
				a.ID, i, tag,
			); err != nil {
				return fmt.Errorf("insert tag for appointment %d: %w", a.ID, err)
			}
		}
	}

	return tx.Commit()
}

func formatDate(d calendar.Date) string {
	return time.Date(d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second, 0, time.UTC).Format(sqliteDateLayout)
}

func scanDate(s string) (calendar.Date, error) {
	t, err := time.Parse(sqliteDateLayout, s)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%w: %q", calendar.ErrInvalidDate, s)
	}
	return calendar.FromTime(t), nil
}
