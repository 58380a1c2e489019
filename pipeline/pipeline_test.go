package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/Vanndavid/Mission-Employed/gemini"
	statestore "github.com/Vanndavid/Mission-Employed/internal/state"
)

// mockPrompter implements Prompter for testing.
type mockPrompter struct {
	response bool
	messages []string
}

func (m *mockPrompter) Confirm(message string) (bool, error) {
	m.messages = append(m.messages, message)
	return m.response, nil
}

func newTestManager(t *testing.T) (*Manager, *mockPrompter) {
	t.Helper()
	prompter := &mockPrompter{response: true}
	return NewManager(statestore.NewStore(t.TempDir()), prompter), prompter
}

func TestManager_Add(t *testing.T) {
	manager, _ := newTestManager(t)

	app, err := manager.Add(AddOptions{
		Company:     "Initech",
		Role:        "Backend Engineer",
		URL:         "https://example.test/job",
		CriteriaMet: []string{"small_mid", "sql_involved"},
		Notes:       "Referred by a friend",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if app.ID == "" {
		t.Error("application has no id")
	}
	if app.Status != StatusApplied {
		t.Errorf("status = %q, want %q", app.Status, StatusApplied)
	}
	if app.CriteriaScore != 2 {
		t.Errorf("criteria score = %d, want 2", app.CriteriaScore)
	}
	if app.DateApplied.IsZero() {
		t.Error("date applied not set")
	}
}

func TestManager_AddDefaults(t *testing.T) {
	manager, _ := newTestManager(t)

	app, err := manager.Add(AddOptions{})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if app.Company != "Unknown" {
		t.Errorf("company = %q, want %q", app.Company, "Unknown")
	}
	if app.Role != "Software Engineer" {
		t.Errorf("role = %q, want %q", app.Role, "Software Engineer")
	}
}

func TestManager_ListOrder(t *testing.T) {
	manager, _ := newTestManager(t)

	for _, company := range []string{"First", "Second", "Third"} {
		if _, err := manager.Add(AddOptions{Company: company, Role: "Engineer"}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	apps, err := manager.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(apps) != 3 {
		t.Fatalf("got %d applications, want 3", len(apps))
	}
	// Newest first.
	for i, want := range []string{"Third", "Second", "First"} {
		if apps[i].Company != want {
			t.Errorf("apps[%d].Company = %q, want %q", i, apps[i].Company, want)
		}
	}
}

func TestManager_UpdateStatus(t *testing.T) {
	manager, _ := newTestManager(t)

	app, err := manager.Add(AddOptions{Company: "Initech", Role: "Engineer"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	updated, err := manager.UpdateStatus(app.ID, StatusInterviewing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusInterviewing {
		t.Errorf("status = %q, want %q", updated.Status, StatusInterviewing)
	}

	if _, err := manager.UpdateStatus(app.ID, Status("Ghosted")); err == nil {
		t.Error("expected error for invalid status")
	}
	if _, err := manager.UpdateStatus("no-such-id", StatusOffer); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestManager_IDPrefix(t *testing.T) {
	manager, _ := newTestManager(t)

	app, err := manager.Add(AddOptions{Company: "Initech", Role: "Engineer"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	got, err := manager.Get(app.ID[:8])
	if err != nil {
		t.Fatalf("Get by prefix: %v", err)
	}
	if got.ID != app.ID {
		t.Errorf("resolved %q, want %q", got.ID, app.ID)
	}

	// An empty prefix matches everything once a second record exists.
	if _, err := manager.Add(AddOptions{Company: "Globex", Role: "Engineer"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := manager.Get(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestManager_Delete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		manager, prompter := newTestManager(t)
		app, err := manager.Add(AddOptions{Company: "Initech", Role: "Engineer"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}

		removed, err := manager.Delete(app.ID, false)
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if !removed {
			t.Error("Delete = false, want true")
		}
		if len(prompter.messages) != 1 || prompter.messages[0] != "Terminate mission record?" {
			t.Errorf("prompts = %v", prompter.messages)
		}

		apps, err := manager.List()
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(apps) != 0 {
			t.Errorf("got %d applications after delete, want 0", len(apps))
		}
	})

	t.Run("declined", func(t *testing.T) {
		manager, prompter := newTestManager(t)
		prompter.response = false
		app, err := manager.Add(AddOptions{Company: "Initech", Role: "Engineer"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}

		removed, err := manager.Delete(app.ID, false)
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if removed {
			t.Error("Delete = true, want false when declined")
		}
	})

	t.Run("forced", func(t *testing.T) {
		manager, prompter := newTestManager(t)
		app, err := manager.Add(AddOptions{Company: "Initech", Role: "Engineer"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}

		if _, err := manager.Delete(app.ID, true); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if len(prompter.messages) != 0 {
			t.Errorf("force delete still prompted: %v", prompter.messages)
		}
	})
}

func TestManager_CriteriaDefaults(t *testing.T) {
	manager, _ := newTestManager(t)

	criteria, target, err := manager.Criteria()
	if err != nil {
		t.Fatalf("Criteria: %v", err)
	}
	if len(criteria) != 8 {
		t.Errorf("got %d criteria, want 8", len(criteria))
	}
	if target != DefaultTargetScore {
		t.Errorf("target = %d, want %d", target, DefaultTargetScore)
	}
}

func TestManager_SetCriteria(t *testing.T) {
	manager, _ := newTestManager(t)

	custom := []Criterion{
		{ID: "remote", Label: "Fully remote"},
		{ID: "salary", Label: "Salary posted"},
	}
	if err := manager.SetCriteria(custom, 1); err != nil {
		t.Fatalf("SetCriteria: %v", err)
	}

	criteria, target, err := manager.Criteria()
	if err != nil {
		t.Fatalf("Criteria: %v", err)
	}
	if len(criteria) != 2 || criteria[0].ID != "remote" {
		t.Errorf("criteria = %v", criteria)
	}
	if target != 1 {
		t.Errorf("target = %d, want 1", target)
	}

	if err := manager.SetCriteria(custom, 5); err == nil {
		t.Error("expected error for target above criteria count")
	}
}

func TestManager_ApplyAnalysis(t *testing.T) {
	manager, _ := newTestManager(t)

	app, err := manager.Add(AddOptions{
		Company: "Initech",
		Role:    "Engineer",
		Notes:   "Job posting text",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	analysis := &gemini.DescriptionAnalysis{
		CriteriaMetIDs: []string{"small_mid", "sql_involved", "recruiter_led"},
		Reasoning:      "Mid-size company, SQL-heavy stack, recruiter outreach.",
	}
	updated, err := manager.ApplyAnalysis(app.ID, analysis)
	if err != nil {
		t.Fatalf("ApplyAnalysis: %v", err)
	}
	if updated.CriteriaScore != 3 {
		t.Errorf("criteria score = %d, want 3", updated.CriteriaScore)
	}
	if !strings.Contains(updated.Notes, "--- AI Analysis ---") {
		t.Errorf("notes missing analysis separator: %q", updated.Notes)
	}
	if !strings.HasPrefix(updated.Notes, "Job posting text") {
		t.Errorf("original notes not preserved: %q", updated.Notes)
	}
	if !strings.Contains(updated.Notes, analysis.Reasoning) {
		t.Errorf("notes missing reasoning: %q", updated.Notes)
	}
}
