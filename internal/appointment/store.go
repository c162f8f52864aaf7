package appointment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwarden/planer/internal/calendar"
	"github.com/cwarden/planer/internal/logger"
)

var (
	// ErrNotFound is returned for lookups and mutations of an unknown id.
	ErrNotFound = errors.New("appointment not found")
	// ErrNoStore is returned by a Persister that has nothing saved yet.
	ErrNoStore = errors.New("no saved appointments")
)

// Persister loads and saves the whole appointment list at once.
type Persister interface {
	// Load returns every saved appointment, or an error wrapping ErrNoStore
	// on first run.
	Load() ([]Appointment, error)
	// Save overwrites everything previously saved.
	Save([]Appointment) error
}

// Store is the in-memory appointment list. It is owned by a single event
// loop and is not safe for concurrent use.
type Store struct {
	items     []Appointment
	persister Persister
	dirty     bool
}

func NewStore(p Persister) *Store {
	return &Store{persister: p}
}

// Load replaces the contents of the store with what the persister holds.
// A missing store is not an error; the store is simply empty.
func (s *Store) Load() error {
	items, err := s.persister.Load()
	if err != nil {
		if errors.Is(err, ErrNoStore) {
			logger.Info("no saved appointments, starting empty")
			s.items = nil
			s.dirty = false
			return nil
		}
		return err
	}
	s.Reset(items)
	return nil
}

// Reset replaces the contents without persisting. Appointments with a
// negative or duplicate id are given a fresh one.
func (s *Store) Reset(items []Appointment) {
	s.items = make([]Appointment, 0, len(items))
	seen := make(map[int]bool, len(items))
	var orphans []Appointment
	for _, a := range items {
		if a.ID < 0 || seen[a.ID] {
			orphans = append(orphans, a)
			continue
		}
		seen[a.ID] = true
		s.items = append(s.items, a.clone())
	}
	for _, a := range orphans {
		old := a.ID
		a.ID = s.NextID()
		logger.Warn("reassigned appointment id", "old", old, "new", a.ID, "description", a.Description)
		s.items = append(s.items, a.clone())
	}
	s.dirty = len(orphans) > 0
}

// Save writes the whole store through the persister. On failure the
// in-memory list is kept and the store stays dirty.
func (s *Store) Save() error {
	if err := s.persister.Save(s.All()); err != nil {
		s.dirty = true
		logger.Error("saving appointments failed", "err", err)
		return err
	}
	s.dirty = false
	logger.Debug("appointments saved", "count", len(s.items))
	return nil
}

// Dirty reports whether the store holds changes that are not saved.
func (s *Store) Dirty() bool {
	return s.dirty
}

func (s *Store) Len() int {
	return len(s.items)
}

// All returns a copy of every appointment in insertion order.
func (s *Store) All() []Appointment {
	out := make([]Appointment, len(s.items))
	for i, a := range s.items {
		out[i] = a.clone()
	}
	return out
}

// FindByDate returns the appointments falling on d's calendar day.
func (s *Store) FindByDate(d calendar.Date) []Appointment {
	var out []Appointment
	for _, a := range s.items {
		if a.Date.SameDay(d) {
			out = append(out, a.clone())
		}
	}
	return out
}

func (s *Store) FindByID(id int) (Appointment, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i].clone(), true
	}
	return Appointment{}, false
}

// NextID returns the smallest non-negative id not in use, reusing ids
// freed by deletion.
func (s *Store) NextID() int {
	ids := make([]int, 0, len(s.items))
	for _, a := range s.items {
		ids = append(ids, a.ID)
	}
	sort.Ints(ids)
	for want, id := range ids {
		if id != want {
			return want
		}
	}
	return len(ids)
}

// Add stores a new appointment under a freshly allocated id, ignoring
// whatever id it carries, and returns the stored value.
func (s *Store) Add(a Appointment) Appointment {
	a.ID = s.NextID()
	s.items = append(s.items, a.clone())
	s.dirty = true
	return a
}

// Update replaces the appointment with a's id in place. The id is kept.
func (s *Store) Update(a Appointment) error {
	i := s.index(a.ID)
	if i < 0 {
		return fmt.Errorf("update %d: %w", a.ID, ErrNotFound)
	}
	s.items[i] = a.clone()
	s.dirty = true
	return nil
}

// Upsert updates a when its id is stored and adds it otherwise.
func (s *Store) Upsert(a Appointment) Appointment {
	if a.ID != NoID && s.index(a.ID) >= 0 {
		_ = s.Update(a)
		return a
	}
	return s.Add(a)
}

func (s *Store) Remove(id int) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("remove %d: %w", id, ErrNotFound)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.dirty = true
	return nil
}

func (s *Store) index(id int) int {
	for i, a := range s.items {
		if a.ID == id {
			return i
		}
	}
	return -1
}
