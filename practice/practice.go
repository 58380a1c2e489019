// Package practice runs one behavioral answer rehearsal at a time.
//
// A Session is a small state machine: a prompt is fetched, an answer is
// captured (spoken or typed), and the evaluation comes back as feedback.
// Every external call happens outside the session lock, tagged with the
// generation current when it started; Reset bumps the generation, so a
// result landing after a reset is discarded instead of resurrecting a
// session the user already left.
package practice

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Vanndavid/Mission-Employed/gemini"
	"github.com/Vanndavid/Mission-Employed/internal/ids"
	"github.com/Vanndavid/Mission-Employed/record"
)

// State represents where a session is in the rehearsal cycle.
type State string

const (
	// StateIdle means no prompt has been requested.
	StateIdle State = "idle"
	// StateLoading means a prompt request is in flight.
	StateLoading State = "loading"
	// StateReady means a prompt is displayed and an answer can start.
	StateReady State = "ready"
	// StateRecording means the microphone is capturing an answer.
	StateRecording State = "recording"
	// StateTranscribing means a captured answer is being evaluated.
	StateTranscribing State = "transcribing"
	// StateFeedback means an evaluation is displayed.
	StateFeedback State = "feedback"
	// StateError means the last operation failed and awaits acknowledgement.
	StateError State = "error"
)

// ValidStates returns all valid session states.
func ValidStates() []State {
	return []State{StateIdle, StateLoading, StateReady, StateRecording, StateTranscribing, StateFeedback, StateError}
}

// IsValid returns true if the state is a known value.
func (s State) IsValid() bool {
	for _, valid := range ValidStates() {
		if s == valid {
			return true
		}
	}
	return false
}

// ErrInvalidState reports an operation that the current state does not
// allow. The session is left unchanged.
var ErrInvalidState = errors.New("invalid session state")

// PromptSource produces behavioral interview questions.
type PromptSource interface {
	GenerateBehavioralPrompt(ctx context.Context, theme string) (string, error)
}

// Evaluator critiques candidate answers.
type Evaluator interface {
	TranscribeAndEvaluate(ctx context.Context, audio []byte, theme, prompt string) (*gemini.Evaluation, error)
	EvaluateAnswer(ctx context.Context, theme, prompt, answer string) (string, error)
}

// Snapshot is a point-in-time copy of a session's visible state.
type Snapshot struct {
	ID         string
	State      State
	Theme      string
	Prompt     string
	Evaluation *gemini.Evaluation
	ErrMessage string
}

// Session drives one rehearsal at a time through the practice cycle.
type Session struct {
	source    PromptSource
	evaluator Evaluator
	recorder  record.Recorder

	mu         sync.Mutex
	generation int
	state      State
	theme      string
	prompt     string
	evaluation *gemini.Evaluation
	errMessage string
	id         string
}

// NewSession creates an idle session.
func NewSession(source PromptSource, evaluator Evaluator, recorder record.Recorder) *Session {
	return &Session{
		source:    source,
		evaluator: evaluator,
		recorder:  recorder,
		state:     StateIdle,
		id:        ids.GenerateWithTimestamp("practice", time.Now(), ids.DefaultLength),
	}
}

// Snapshot returns a copy of the session's visible state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.id,
		State:      s.state,
		Theme:      s.theme,
		Prompt:     s.prompt,
		Evaluation: s.evaluation,
		ErrMessage: s.errMessage,
	}
}

// RequestPrompt fetches a question for the theme. Allowed while idle,
// ready, showing feedback, or showing an error; the session moves through
// loading to ready, or to error if the fetch fails.
func (s *Session) RequestPrompt(ctx context.Context, theme string) error {
	s.mu.Lock()
	switch s.state {
	case StateIdle, StateReady, StateFeedback, StateError:
	default:
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot request prompt while %s", ErrInvalidState, state)
	}
	generation := s.generation
	s.state = StateLoading
	s.theme = theme
	s.prompt = ""
	s.evaluation = nil
	s.errMessage = ""
	s.mu.Unlock()

	prompt, err := s.source.GenerateBehavioralPrompt(ctx, theme)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		// The session was reset while the request was in flight.
		return nil
	}
	if err != nil {
		s.state = StateError
		s.errMessage = err.Error()
		return err
	}
	s.state = StateReady
	s.prompt = prompt
	return nil
}

// BeginCapture starts recording an answer. Only allowed while ready.
// A capture failure moves the session to error.
func (s *Session) BeginCapture(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateReady {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot record while %s", ErrInvalidState, state)
	}
	generation := s.generation
	s.mu.Unlock()

	err := s.recorder.Start(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		if err == nil {
			// The take belongs to a session that no longer exists.
			_ = s.recorder.Abort()
		}
		return nil
	}
	if err != nil {
		s.state = StateError
		s.errMessage = err.Error()
		return err
	}
	s.state = StateRecording
	return nil
}

// EndCapture stops recording and evaluates the take. Only allowed while
// recording. On failure the session moves to error; feedback from an
// earlier take is left in place.
func (s *Session) EndCapture(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateRecording {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot stop while %s", ErrInvalidState, state)
	}
	generation := s.generation
	theme, prompt := s.theme, s.prompt
	s.state = StateTranscribing
	s.mu.Unlock()

	audio, err := s.recorder.Stop()
	var evaluation *gemini.Evaluation
	if err == nil {
		evaluation, err = s.evaluator.TranscribeAndEvaluate(ctx, audio, theme, prompt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return nil
	}
	if err != nil {
		s.state = StateError
		s.errMessage = err.Error()
		return err
	}
	s.state = StateFeedback
	s.evaluation = evaluation
	return nil
}

// SubmitText evaluates a typed answer instead of a recording. Only
// allowed while ready.
func (s *Session) SubmitText(ctx context.Context, answer string) error {
	s.mu.Lock()
	if s.state != StateReady {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot submit while %s", ErrInvalidState, state)
	}
	generation := s.generation
	theme, prompt := s.theme, s.prompt
	s.state = StateTranscribing
	s.mu.Unlock()

	critique, err := s.evaluator.EvaluateAnswer(ctx, theme, prompt, answer)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != generation {
		return nil
	}
	if err != nil {
		s.state = StateError
		s.errMessage = err.Error()
		return err
	}
	s.state = StateFeedback
	s.evaluation = &gemini.Evaluation{Transcript: answer, Critique: critique}
	return nil
}

// Acknowledge clears a displayed error: back to ready if a prompt is
// still loaded, otherwise back to idle.
func (s *Session) Acknowledge() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateError {
		return fmt.Errorf("%w: nothing to acknowledge while %s", ErrInvalidState, s.state)
	}
	s.errMessage = ""
	if s.prompt != "" {
		s.state = StateReady
	} else {
		s.state = StateIdle
	}
	return nil
}

// Reset returns the session to idle from any state, aborting an active
// recording and invalidating any in-flight request.
func (s *Session) Reset() {
	s.mu.Lock()
	recording := s.state == StateRecording
	s.generation++
	s.state = StateIdle
	s.theme = ""
	s.prompt = ""
	s.evaluation = nil
	s.errMessage = ""
	s.mu.Unlock()

	if recording {
		_ = s.recorder.Abort()
	}
}
