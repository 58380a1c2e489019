// Package prep manages behavioral interview preparation notes.
//
// Each of the six interview themes carries a list of bullet-point story
// notes. Themes are fixed; answers live in the state file and are edited
// through the Manager.
package prep

import (
	"errors"
	"fmt"

	statestore "github.com/Vanndavid/Mission-Employed/internal/state"
)

// Answer stores the bullet notes for one theme.
type Answer = statestore.BehavioralAnswer

// Theme is one behavioral interview topic.
type Theme struct {
	ID    string
	Label string
}

// DefaultThemes returns the six behavioral themes, in interview order.
func DefaultThemes() []Theme {
	return []Theme{
		{ID: "weakness", Label: "Worst Weakness"},
		{ID: "challenge", Label: "Biggest Challenge"},
		{ID: "failure", Label: "Failure"},
		{ID: "disagreement", Label: "Disagreement"},
		{ID: "pressure", Label: "Pressure Situation"},
		{ID: "impact", Label: "Impact You Made"},
	}
}

// FindTheme returns the theme with the given id.
func FindTheme(id string) (Theme, bool) {
	for _, theme := range DefaultThemes() {
		if theme.ID == id {
			return theme, true
		}
	}
	return Theme{}, false
}

// ErrUnknownTheme reports a theme id outside the fixed set.
var ErrUnknownTheme = errors.New("unknown theme")

// Manager reads and edits behavioral answers in the state file.
type Manager struct {
	store *statestore.Store
}

// NewManager creates a manager over the given store.
func NewManager(store *statestore.Store) *Manager {
	return &Manager{store: store}
}

// Answers returns one answer per theme, in theme order. Themes with no
// saved notes get a single empty bullet so there is always a line to edit.
func (m *Manager) Answers() ([]Answer, error) {
	st, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	saved := make(map[string]Answer, len(st.BehavioralAnswers))
	for _, answer := range st.BehavioralAnswers {
		saved[answer.ThemeID] = answer
	}

	answers := make([]Answer, 0, len(DefaultThemes()))
	for _, theme := range DefaultThemes() {
		answer, ok := saved[theme.ID]
		if !ok || len(answer.Bullets) == 0 {
			answer = Answer{ThemeID: theme.ID, Bullets: []string{""}}
		}
		answers = append(answers, answer)
	}
	return answers, nil
}

// Answer returns the notes for one theme.
func (m *Manager) Answer(themeID string) (Answer, error) {
	if _, ok := FindTheme(themeID); !ok {
		return Answer{}, fmt.Errorf("%w: %q", ErrUnknownTheme, themeID)
	}

	answers, err := m.Answers()
	if err != nil {
		return Answer{}, err
	}
	for _, answer := range answers {
		if answer.ThemeID == themeID {
			return answer, nil
		}
	}
	return Answer{ThemeID: themeID, Bullets: []string{""}}, nil
}

// UpdateAnswer replaces the bullets for one theme.
func (m *Manager) UpdateAnswer(themeID string, bullets []string) error {
	if _, ok := FindTheme(themeID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, themeID)
	}

	return m.store.Update(func(st *statestore.AppState) error {
		for i, answer := range st.BehavioralAnswers {
			if answer.ThemeID == themeID {
				st.BehavioralAnswers[i].Bullets = bullets
				return nil
			}
		}
		st.BehavioralAnswers = append(st.BehavioralAnswers, Answer{ThemeID: themeID, Bullets: bullets})
		return nil
	})
}

// AddBullet appends one bullet to a theme's notes.
func (m *Manager) AddBullet(themeID, bullet string) error {
	answer, err := m.Answer(themeID)
	if err != nil {
		return err
	}
	// Replace the placeholder empty bullet rather than keeping it.
	if len(answer.Bullets) == 1 && answer.Bullets[0] == "" {
		return m.UpdateAnswer(themeID, []string{bullet})
	}
	return m.UpdateAnswer(themeID, append(answer.Bullets, bullet))
}

// RemoveBullet deletes the bullet at the given index. The last bullet is
// never removed; it is cleared instead, so the theme always has a line.
func (m *Manager) RemoveBullet(themeID string, index int) error {
	answer, err := m.Answer(themeID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(answer.Bullets) {
		return fmt.Errorf("bullet index %d out of range", index)
	}
	if len(answer.Bullets) == 1 {
		return m.UpdateAnswer(themeID, []string{""})
	}
	bullets := append(answer.Bullets[:index:index], answer.Bullets[index+1:]...)
	return m.UpdateAnswer(themeID, bullets)
}
