// Package catalog manages the operator-editable catalog document: the
// ordered teacher/subject combo list, the academic period, and named
// templates. The document lives in a JSON file owned by the operator
// tooling; it is re-read from disk on every call so edits take effect for
// the next session without a restart. Callers receive an explicit snapshot
// and thread it through — nothing here is cached between requests.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

var ErrTemplateNotFound = errors.New("template not found")

// Combo is one (teacher, subject) pair requiring one rating submission.
// A combo is identified by its position in the catalog, not by content.
type Combo struct {
	Teacher string `mapstructure:"teacher" json:"teacher"`
	Subject string `mapstructure:"subject" json:"subject"`
}

// Period is the academic period stamped onto submitted ratings.
type Period struct {
	Semester int    `mapstructure:"semester" json:"semester"`
	Session  string `mapstructure:"session"  json:"session"`
	Branch   string `mapstructure:"branch"   json:"branch"`
}

// Template is a named catalog preset.
type Template struct {
	Semester int     `mapstructure:"semester"               json:"semester"`
	Session  string  `mapstructure:"session"                json:"session"`
	Branch   string  `mapstructure:"branch"                 json:"branch"`
	Combos   []Combo `mapstructure:"teacher_subject_combos" json:"teacher_subject_combos"`
}

// Snapshot is the catalog state in effect for one request.
type Snapshot struct {
	Combos []Combo `json:"teacher_subject_combos"`
	Period Period  `json:"period"`
}

// Questions are the fixed rating dimensions, for display only; the store
// schema is fixed at ten numeric columns regardless of this list.
var Questions = []string{
	"Clarity of explanation",
	"Subject knowledge",
	"Teaching pace",
	"Student engagement",
	"Doubt handling",
	"Use of examples",
	"Classroom interaction",
	"Fairness in evaluation",
	"Availability outside class",
	"Overall effectiveness",
}

// defaults used when the document does not exist yet.
var (
	defaultCombos = []Combo{
		{Teacher: "Dr. Sharma", Subject: "Mathematics"},
		{Teacher: "Prof. Gupta", Subject: "Physics"},
		{Teacher: "Dr. Patel", Subject: "Chemistry"},
	}
	defaultPeriod = Period{Semester: 1, Session: "2024-28", Branch: "CSE"}
)

// Store reads and writes the catalog document.
type Store struct {
	path string

	// serializes read-modify-write cycles from concurrent operator requests
	mu sync.Mutex
}

// NewStore creates a Store for the document at path. The file is created
// lazily on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) read() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")

	v.SetDefault("teacher_subject_combos", defaultCombos)
	v.SetDefault("semester", defaultPeriod.Semester)
	v.SetDefault("session", defaultPeriod.Session)
	v.SetDefault("branch", defaultPeriod.Branch)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading catalog document: %w", err)
			}
		}
		// missing document: defaults apply
	}
	return v, nil
}

// Load returns the catalog snapshot currently on disk.
func (s *Store) Load() (*Snapshot, error) {
	v, err := s.read()
	if err != nil {
		return nil, err
	}

	var combos []Combo
	if err := v.UnmarshalKey("teacher_subject_combos", &combos); err != nil {
		return nil, fmt.Errorf("parsing catalog combos: %w", err)
	}

	return &Snapshot{
		Combos: combos,
		Period: Period{
			Semester: v.GetInt("semester"),
			Session:  v.GetString("session"),
			Branch:   v.GetString("branch"),
		},
	}, nil
}

// SaveCombos replaces the combo list.
func (s *Store) SaveCombos(combos []Combo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.read()
	if err != nil {
		return err
	}
	v.Set("teacher_subject_combos", combos)
	return s.write(v)
}

// SavePeriod replaces the academic period.
func (s *Store) SavePeriod(p Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.read()
	if err != nil {
		return err
	}
	v.Set("semester", p.Semester)
	v.Set("session", p.Session)
	v.Set("branch", p.Branch)
	return s.write(v)
}

// Templates returns all named presets.
func (s *Store) Templates() (map[string]Template, error) {
	v, err := s.read()
	if err != nil {
		return nil, err
	}
	templates := map[string]Template{}
	if err := v.UnmarshalKey("templates", &templates); err != nil {
		return nil, fmt.Errorf("parsing catalog templates: %w", err)
	}
	return templates, nil
}

// SaveTemplate stores a preset under name, replacing any existing one.
func (s *Store) SaveTemplate(name string, t Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.read()
	if err != nil {
		return err
	}
	templates := map[string]Template{}
	if err := v.UnmarshalKey("templates", &templates); err != nil {
		return fmt.Errorf("parsing catalog templates: %w", err)
	}
	templates[name] = t
	v.Set("templates", templates)
	return s.write(v)
}

// DeleteTemplate removes a preset.
func (s *Store) DeleteTemplate(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.read()
	if err != nil {
		return err
	}
	templates := map[string]Template{}
	if err := v.UnmarshalKey("templates", &templates); err != nil {
		return fmt.Errorf("parsing catalog templates: %w", err)
	}
	if _, ok := templates[name]; !ok {
		return ErrTemplateNotFound
	}
	delete(templates, name)
	v.Set("templates", templates)
	return s.write(v)
}

// ApplyTemplate sets the current combos and period from a preset.
func (s *Store) ApplyTemplate(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.read()
	if err != nil {
		return err
	}
	templates := map[string]Template{}
	if err := v.UnmarshalKey("templates", &templates); err != nil {
		return fmt.Errorf("parsing catalog templates: %w", err)
	}
	t, ok := templates[name]
	if !ok {
		return ErrTemplateNotFound
	}

	v.Set("teacher_subject_combos", t.Combos)
	v.Set("semester", t.Semester)
	v.Set("session", t.Session)
	v.Set("branch", t.Branch)
	return s.write(v)
}

func (s *Store) write(v *viper.Viper) error {
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing catalog document: %w", err)
	}
	return nil
}
