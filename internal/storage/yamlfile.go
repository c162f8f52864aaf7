package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cwarden/planer/internal/appointment"
)

// YAMLFile persists appointments as a single YAML document with a
// top-level "data" list.
type YAMLFile struct {
	Path string
}

func NewYAMLFile(path string) *YAMLFile {
	return &YAMLFile{Path: path}
}

func (f *YAMLFile) Load() ([]appointment.Appointment, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", f.Path, appointment.ErrNoStore)
		}
		return nil, &IOError{Op: "read", Path: f.Path, Err: err}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: f.Path, Err: err}
	}

	items := make([]appointment.Appointment, 0, len(doc.Data))
	for _, rec := range doc.Data {
		a, err := rec.toAppointment()
		if err != nil {
			return nil, &ParseError{Path: f.Path, Err: err}
		}
		items = append(items, a)
	}
	return items, nil
}

// Save rewrites the whole file. The new content is written to a temp file
// in the same directory and renamed over the old one, so readers never
// see a partial file.
func (f *YAMLFile) Save(items []appointment.Appointment) error {
	doc := document{Data: make([]appointmentRecord, 0, len(items))}
	for _, a := range items {
		doc.Data = append(doc.Data, toRecord(a))
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return &IOError{Op: "encode", Path: f.Path, Err: err}
	}
	if err := writeAtomic(f.Path, data); err != nil {
		return &IOError{Op: "write", Path: f.Path, Err: err}
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".planer-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
