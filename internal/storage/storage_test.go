package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cwarden/planer/internal/appointment"
	"github.com/cwarden/planer/internal/calendar"
)

func sampleAppointments() []appointment.Appointment {
	return []appointment.Appointment{
		{
			ID:          0,
			Date:        calendar.MustNew(2024, time.March, 15),
			Warning:     calendar.MustNew(2024, time.March, 10),
			Priority:    appointment.PriorityHigh,
			Tags:        []string{"health"},
			Description: "Dentist",
		},
		{
			ID:          2,
			Date:        calendar.MustNew(2024, time.March, 16).WithClock(14, 30, 0),
			Warning:     calendar.MustNew(2024, time.March, 16),
			Priority:    appointment.PriorityLow,
			Tags:        []string{"a", "", "b"},
			Description: "Call mum",
		},
	}
}

func assertSameAppointments(t *testing.T, got, want []appointment.Appointment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d appointments, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("appointment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestYAMLFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "saved.yml")
	f := NewYAMLFile(path)

	want := sampleAppointments()
	if err := f.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameAppointments(t, got, want)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}

func TestYAMLFileWireFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yml")
	if err := NewYAMLFile(path).Save(sampleAppointments()[:1]); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"data:", "id: 0", "year: 2024", "month: 3", "day: 15", "priority: High", "warning:", "- health", "description: Dentist"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved file missing %q:\n%s", want, data)
		}
	}
	if strings.Contains(string(data), "hour:") {
		t.Errorf("untimed date should not write clock fields:\n%s", data)
	}
}

func TestYAMLFileReadsHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yml")
	content := `data:
  - id: 4
    date: {year: 2024, month: 2, day: 29, hour: 9, min: 15}
    priority: Middle
    description: Standup
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewYAMLFile(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d appointments", len(got))
	}
	a := got[0]
	if a.ID != 4 || a.Priority != appointment.PriorityMiddle || a.Date.Hour != 9 || a.Date.Minute != 15 {
		t.Errorf("unexpected appointment %+v", a)
	}
	if a.Warning != calendar.MustNew(2024, time.February, 29) {
		t.Errorf("missing warning should default to the day, got %v", a.Warning)
	}
	if a.Tags != nil {
		t.Errorf("missing tags should stay nil, got %q", a.Tags)
	}
}

func TestYAMLFileMissing(t *testing.T) {
	_, err := NewYAMLFile(filepath.Join(t.TempDir(), "none.yml")).Load()
	if !errors.Is(err, appointment.ErrNoStore) {
		t.Errorf("Load of missing file: err = %v, want ErrNoStore", err)
	}
}

func TestYAMLFileMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "data: [\n"},
		{"impossible date", "data:\n  - id: 0\n    date: {year: 2023, month: 2, day: 29}\n    priority: High\n"},
		{"unknown priority", "data:\n  - id: 0\n    date: {year: 2023, month: 2, day: 1}\n    priority: Urgent\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "saved.yml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := NewYAMLFile(path).Load()
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("err = %v, want *ParseError", err)
			}
		})
	}
}

func TestYAMLFileSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	// The parent "directory" is a regular file, so the save cannot succeed.
	err := NewYAMLFile(filepath.Join(blocker, "saved.yml")).Save(sampleAppointments())
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("err = %v, want *IOError", err)
	}
}

func TestSQLiteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planer.db")
	f := NewSQLiteFile(path)

	if _, err := f.Load(); !errors.Is(err, appointment.ErrNoStore) {
		t.Fatalf("Load before first save: err = %v, want ErrNoStore", err)
	}

	want := sampleAppointments()
	if err := f.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameAppointments(t, got, want)

	// A second save fully replaces the first.
	if err := f.Save(want[1:]); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err = f.Load()
	if err != nil {
		t.Fatal(err)
	}
	assertSameAppointments(t, got, want[1:])
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		format  string
		want    string
		wantErr bool
	}{
		{path: "saved.yml", want: FormatYAML},
		{path: "saved.yaml", want: FormatYAML},
		{path: "planer.db", want: FormatSQLite},
		{path: "planer.SQLITE", want: FormatSQLite},
		{path: "planer.db", format: "yaml", want: FormatYAML},
		{path: "saved.yml", format: "sqlite", want: FormatSQLite},
		{path: "saved.yml", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := FormatFor(tt.path, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFor(%q, %q) err = %v", tt.path, tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFor(%q, %q) = %q, want %q", tt.path, tt.format, got, tt.want)
		}
	}
}

func TestExportICS(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := ExportICS(&buf, sampleAppointments(), now); err != nil {
		t.Fatalf("ExportICS: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"METHOD:PUBLISH",
		"UID:appointment-0-20240315@planer",
		"SUMMARY:Dentist",
		"DTSTART;VALUE=DATE:20240315",
		"PRIORITY:1",
		"CATEGORIES:health",
		"BEGIN:VALARM",
		"TRIGGER:-P5D",
		"PRIORITY:9",
		"TRIGGER:PT0S",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("got %d VEVENTs, want 2", got)
	}
}

func TestFileWatcherReportsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yml")
	f := NewYAMLFile(path)
	if err := f.Save(nil); err != nil {
		t.Fatal(err)
	}

	w, err := NewFileWatcher(path)
	if err != nil {
		t.Fatalf("NewFileWatcher: %v", err)
	}
	defer w.Close()

	if err := f.Save(sampleAppointments()); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		if filepath.Base(ev.Path) != "saved.yml" {
			t.Errorf("event for %q", ev.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change event after save")
	}
}
