// Package pipeline manages the job application pipeline.
//
// Applications move through four stages (Applied, Interviewing, Offer,
// Rejected) and carry a fit score counting how many of the configured
// criteria the posting meets. New applications are prepended so the most
// recent mission record lists first.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Vanndavid/Mission-Employed/gemini"
	statestore "github.com/Vanndavid/Mission-Employed/internal/state"
)

// Application stores one tracked job application.
type Application = statestore.Application

// Status represents the pipeline stage of an application.
type Status = statestore.ApplicationStatus

// Criterion is one yes/no fit check applied to a job posting.
type Criterion = statestore.Criterion

// Pipeline stages, in progression order.
const (
	StatusApplied      = statestore.StatusApplied
	StatusInterviewing = statestore.StatusInterviewing
	StatusOffer        = statestore.StatusOffer
	StatusRejected     = statestore.StatusRejected
)

// ValidStatuses returns all valid pipeline stages.
func ValidStatuses() []Status {
	return statestore.ValidApplicationStatuses()
}

// DefaultTargetScore is the fit score a posting should reach before
// applying.
const DefaultTargetScore = 4

// DefaultCriteria returns the built-in fit checks.
func DefaultCriteria() []Criterion {
	return []Criterion{
		{ID: "small_mid", Label: "Small–mid company"},
		{ID: "not_faang", Label: `Not FAANG / Not "elite"`},
		{ID: "backend_fullstack", Label: "Backend or full-stack"},
		{ID: "business_domain", Label: "Business domain (telecom, healthcare, internal)"},
		{ID: "sql_involved", Label: "SQL involved"},
		{ID: "recruiter_led", Label: "Recruiter-led"},
		{ID: "maintenance", Label: "Maintenance + incremental build"},
		{ID: "no_algo_heavy", Label: "No extreme algorithm interview signals"},
	}
}

var (
	// ErrNotFound reports that no application matches the given id.
	ErrNotFound = errors.New("application not found")

	// ErrAmbiguousID reports that an id prefix matches more than one
	// application.
	ErrAmbiguousID = errors.New("ambiguous application id")
)

// Prompter is used to ask the user for confirmation.
type Prompter interface {
	// Confirm asks the user a yes/no question and returns true if they say yes.
	Confirm(message string) (bool, error)
}

// StdioPrompter implements Prompter using stdin/stdout.
type StdioPrompter struct{}

// Confirm asks the user a yes/no question via stdin/stdout.
func (p StdioPrompter) Confirm(message string) (bool, error) {
	fmt.Printf("%s [y/n]: ", message)
	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		return false, err
	}
	return response == "y" || response == "Y" || response == "yes" || response == "Yes", nil
}

// AddOptions carries the user-supplied fields for a new application.
type AddOptions struct {
	Company     string
	Role        string
	URL         string
	CriteriaMet []string
	Notes       string
}

// Manager reads and edits the application pipeline in the state file.
type Manager struct {
	store    *statestore.Store
	prompter Prompter
	now      func() time.Time
}

// NewManager creates a manager over the given store. A nil prompter
// defaults to StdioPrompter.
func NewManager(store *statestore.Store, prompter Prompter) *Manager {
	if prompter == nil {
		prompter = StdioPrompter{}
	}
	return &Manager{store: store, prompter: prompter, now: time.Now}
}

// Add records a new application at the front of the pipeline and returns
// it. Empty company and role fall back to placeholder values.
func (m *Manager) Add(opts AddOptions) (Application, error) {
	app := Application{
		ID:            uuid.NewString(),
		Company:       opts.Company,
		Role:          opts.Role,
		URL:           opts.URL,
		DateApplied:   m.now(),
		Status:        StatusApplied,
		CriteriaMet:   opts.CriteriaMet,
		CriteriaScore: len(opts.CriteriaMet),
		Notes:         opts.Notes,
	}
	if app.Company == "" {
		app.Company = "Unknown"
	}
	if app.Role == "" {
		app.Role = "Software Engineer"
	}

	err := m.store.Update(func(st *statestore.AppState) error {
		st.Applications = append([]Application{app}, st.Applications...)
		return nil
	})
	if err != nil {
		return Application{}, err
	}
	return app, nil
}

// List returns all applications, most recent first.
func (m *Manager) List() ([]Application, error) {
	st, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	return st.Applications, nil
}

// Get resolves an id or unique id prefix to an application.
func (m *Manager) Get(id string) (Application, error) {
	apps, err := m.List()
	if err != nil {
		return Application{}, err
	}
	index, err := resolveID(apps, id)
	if err != nil {
		return Application{}, err
	}
	return apps[index], nil
}

// UpdateStatus moves an application to a new pipeline stage.
func (m *Manager) UpdateStatus(id string, status Status) (Application, error) {
	if !status.IsValid() {
		return Application{}, fmt.Errorf("invalid status %q (valid: %v)", status, ValidStatuses())
	}

	var updated Application
	err := m.store.Update(func(st *statestore.AppState) error {
		index, err := resolveID(st.Applications, id)
		if err != nil {
			return err
		}
		st.Applications[index].Status = status
		updated = st.Applications[index]
		return nil
	})
	if err != nil {
		return Application{}, err
	}
	return updated, nil
}

// SetNotes replaces an application's notes.
func (m *Manager) SetNotes(id, notes string) error {
	return m.store.Update(func(st *statestore.AppState) error {
		index, err := resolveID(st.Applications, id)
		if err != nil {
			return err
		}
		st.Applications[index].Notes = notes
		return nil
	})
}

// Delete removes an application, asking for confirmation unless force is
// set. Returns true if the record was removed.
func (m *Manager) Delete(id string, force bool) (bool, error) {
	if !force {
		confirmed, err := m.prompter.Confirm("Terminate mission record?")
		if err != nil {
			return false, err
		}
		if !confirmed {
			return false, nil
		}
	}

	err := m.store.Update(func(st *statestore.AppState) error {
		index, err := resolveID(st.Applications, id)
		if err != nil {
			return err
		}
		st.Applications = append(st.Applications[:index], st.Applications[index+1:]...)
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Criteria returns the configured fit checks and target score, falling
// back to the defaults when the state file predates custom criteria.
func (m *Manager) Criteria() ([]Criterion, int, error) {
	st, err := m.store.Load()
	if err != nil {
		return nil, 0, err
	}
	criteria := st.CustomCriteria
	if len(criteria) == 0 {
		criteria = DefaultCriteria()
	}
	target := st.TargetScore
	if target == 0 {
		target = DefaultTargetScore
	}
	return criteria, target, nil
}

// SetCriteria replaces the fit checks and target score.
func (m *Manager) SetCriteria(criteria []Criterion, targetScore int) error {
	if targetScore < 0 || targetScore > len(criteria) {
		return fmt.Errorf("target score %d out of range for %d criteria", targetScore, len(criteria))
	}
	return m.store.Update(func(st *statestore.AppState) error {
		st.CustomCriteria = criteria
		st.TargetScore = targetScore
		return nil
	})
}

// ApplyAnalysis records a job description analysis on an application:
// the met criteria replace the manual selection, the score is recomputed,
// and the reasoning is appended to the notes.
func (m *Manager) ApplyAnalysis(id string, analysis *gemini.DescriptionAnalysis) (Application, error) {
	var updated Application
	err := m.store.Update(func(st *statestore.AppState) error {
		index, err := resolveID(st.Applications, id)
		if err != nil {
			return err
		}
		app := &st.Applications[index]
		app.CriteriaMet = analysis.CriteriaMetIDs
		app.CriteriaScore = len(analysis.CriteriaMetIDs)
		app.Notes = strings.TrimSpace(app.Notes + "\n\n--- AI Analysis ---\n" + analysis.Reasoning)
		updated = *app
		return nil
	})
	if err != nil {
		return Application{}, err
	}
	return updated, nil
}

// resolveID finds the application matching an exact id or a unique prefix.
func resolveID(apps []Application, id string) (int, error) {
	if id == "" {
		return 0, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	found := -1
	for i, app := range apps {
		if app.ID == id {
			return i, nil
		}
		if strings.HasPrefix(app.ID, id) {
			if found >= 0 {
				return 0, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
			}
			found = i
		}
	}
	if found < 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return found, nil
}
