// Package interview runs a full mock interview: one question per
// behavioral theme, answered through a practice session, closed out with
// a single aggregate evaluation of the whole conversation.
package interview

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vanndavid/Mission-Employed/gemini"
	"github.com/Vanndavid/Mission-Employed/practice"
	"github.com/Vanndavid/Mission-Employed/prep"
)

// Round captures one theme, its question, and the candidate's answer.
type Round = gemini.Round

// AggregateEvaluator produces the final report over a whole interview.
type AggregateEvaluator interface {
	EvaluateAggregateSession(ctx context.Context, rounds []Round) (string, error)
}

var (
	// ErrNotStarted reports an operation before Start.
	ErrNotStarted = errors.New("interview not started")

	// ErrNoAnswer reports an Advance with no evaluated answer to record.
	ErrNoAnswer = errors.New("no evaluated answer for the current question")

	// ErrComplete reports an Advance after the interview finished.
	ErrComplete = errors.New("interview already complete")
)

// Orchestrator walks a practice session through every theme and collects
// the rounds for the final report.
type Orchestrator struct {
	themes    []prep.Theme
	session   *practice.Session
	evaluator AggregateEvaluator

	started bool
	rounds  []Round
	report  string
	// reportPending marks a finished interview whose aggregate evaluation
	// failed; the next Advance retries it without touching the rounds.
	reportPending bool
}

// NewOrchestrator creates an orchestrator over the given session. Empty
// themes default to the standard six.
func NewOrchestrator(session *practice.Session, evaluator AggregateEvaluator, themes []prep.Theme) *Orchestrator {
	if len(themes) == 0 {
		themes = prep.DefaultThemes()
	}
	return &Orchestrator{
		themes:    themes,
		session:   session,
		evaluator: evaluator,
	}
}

// Start begins a fresh interview: any previous rounds and report are
// cleared and the first question is requested.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.session.Reset()
	o.started = true
	o.rounds = nil
	o.report = ""
	o.reportPending = false
	return o.session.RequestPrompt(ctx, o.themes[0].Label)
}

// CurrentTheme returns the theme the candidate is answering now.
func (o *Orchestrator) CurrentTheme() (prep.Theme, error) {
	if !o.started {
		return prep.Theme{}, ErrNotStarted
	}
	if len(o.rounds) >= len(o.themes) {
		return prep.Theme{}, ErrComplete
	}
	return o.themes[len(o.rounds)], nil
}

// Advance records the evaluated answer as a round and moves on: to the
// next question, or, after the last theme, to the aggregate evaluation.
// If the aggregate evaluation fails the rounds are kept and the next
// Advance retries only the report.
func (o *Orchestrator) Advance(ctx context.Context) error {
	if !o.started {
		return ErrNotStarted
	}
	if o.report != "" {
		return ErrComplete
	}
	if o.reportPending {
		return o.finish(ctx)
	}

	snap := o.session.Snapshot()
	if snap.State != practice.StateFeedback || snap.Evaluation == nil {
		return fmt.Errorf("%w (session is %s)", ErrNoAnswer, snap.State)
	}

	theme := o.themes[len(o.rounds)]
	o.rounds = append(o.rounds, Round{
		Theme:    theme.Label,
		Prompt:   snap.Prompt,
		Response: snap.Evaluation.Transcript,
	})

	if len(o.rounds) < len(o.themes) {
		next := o.themes[len(o.rounds)]
		return o.session.RequestPrompt(ctx, next.Label)
	}
	return o.finish(ctx)
}

// finish runs the one aggregate evaluation over the collected rounds.
func (o *Orchestrator) finish(ctx context.Context) error {
	report, err := o.evaluator.EvaluateAggregateSession(ctx, o.rounds)
	if err != nil {
		o.reportPending = true
		return err
	}
	o.report = report
	o.reportPending = false
	return nil
}

// Rounds returns a copy of the recorded rounds, in interview order.
func (o *Orchestrator) Rounds() []Round {
	rounds := make([]Round, len(o.rounds))
	copy(rounds, o.rounds)
	return rounds
}

// Complete reports whether every theme was answered and the final report
// is available.
func (o *Orchestrator) Complete() bool {
	return o.report != ""
}

// FinalReport returns the aggregate evaluation of the whole interview.
func (o *Orchestrator) FinalReport() (string, error) {
	if !o.started {
		return "", ErrNotStarted
	}
	if o.report == "" {
		return "", errors.New("final report not ready")
	}
	return o.report, nil
}

// Teardown releases the underlying session. The rounds and report stay
// readable until the next Start.
func (o *Orchestrator) Teardown() {
	o.session.Reset()
}
