// Package state manages the persisted mission state file.
//
// The state file (~/.local/state/mission/state.json) stores application
// records, daily protocol logs, and behavioral answer notes. All access is
// serialized through file locking so the CLI and the local dashboard can
// safely share one file. JSON field names match the original export format
// so an exported snapshot stays readable by older tooling.
package state

import (
	"time"

	"github.com/Vanndavid/Mission-Employed/dates"
)

// AppState represents the persisted state file.
type AppState struct {
	Applications      []Application          `json:"applications"`
	DailyLogs         map[dates.Key]DailyLog `json:"dailyLogs"`
	BehavioralAnswers []BehavioralAnswer     `json:"behavioralAnswers"`
	CustomCriteria    []Criterion            `json:"customCriteria,omitempty"`
	TargetScore       int                    `json:"targetScore,omitempty"`
	BaseCV            string                 `json:"baseCV"`
	BaseCoverLetter   string                 `json:"baseCoverLetter"`
}

// ApplicationStatus represents the pipeline stage of a job application.
type ApplicationStatus string

const (
	// StatusApplied indicates the application has been submitted.
	StatusApplied ApplicationStatus = "Applied"
	// StatusInterviewing indicates an interview process is underway.
	StatusInterviewing ApplicationStatus = "Interviewing"
	// StatusOffer indicates an offer has been extended.
	StatusOffer ApplicationStatus = "Offer"
	// StatusRejected indicates the application was rejected.
	StatusRejected ApplicationStatus = "Rejected"
)

// ValidApplicationStatuses returns all valid application status values.
func ValidApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusApplied, StatusInterviewing, StatusOffer, StatusRejected}
}

// IsValid returns true if the status is a known value.
func (s ApplicationStatus) IsValid() bool {
	for _, valid := range ValidApplicationStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Application stores one tracked job application.
type Application struct {
	ID            string            `json:"id"`
	Company       string            `json:"company"`
	Role          string            `json:"role"`
	URL           string            `json:"url"`
	DateApplied   time.Time         `json:"dateApplied"`
	Status        ApplicationStatus `json:"status"`
	CriteriaMet   []string          `json:"criteriaMet"`
	CriteriaScore int               `json:"criteriaScore"`
	Notes         string            `json:"notes"`
}

// DailyLog records which protocol tasks were completed on one local day.
// A day with no log means nothing was done.
type DailyLog struct {
	Date        dates.Key       `json:"date"`
	Completions map[string]bool `json:"completions"`
}

// BehavioralAnswer stores bullet-point notes for one behavioral theme.
type BehavioralAnswer struct {
	ThemeID string   `json:"themeId"`
	Bullets []string `json:"bullets"`
}

// Criterion is one yes/no fit check applied to a job posting.
type Criterion struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
