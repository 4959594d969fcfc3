package loading

import (
	"os"
	"sync"

	"github.com/codeorbit/codeorbit-client/internal/logger"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
)

// SpinnerObserver renders the busy indicator as a terminal spinner.
type SpinnerObserver struct {
	base    pterm.SpinnerPrinter
	spinner *pterm.SpinnerPrinter
}

// NewSpinnerObserver returns an observer that draws on pterm's default spinner.
// The spinner draws on stderr and is removed from the terminal once hidden.
func NewSpinnerObserver() *SpinnerObserver {
	base := pterm.DefaultSpinner.WithRemoveWhenDone(true).WithShowTimer(true).WithWriter(os.Stderr)
	return &SpinnerObserver{base: *base}
}

func (s *SpinnerObserver) OnLoadingChange(state State) {
	if !state.Visible {
		if s.spinner != nil {
			_ = s.spinner.Stop()
			s.spinner = nil
		}
		return
	}

	if s.spinner != nil {
		s.spinner.UpdateText(state.Message)
		return
	}

	spinner, err := s.base.Start(state.Message)
	if err != nil {
		logger.Debug("failed to start spinner", zap.Error(err))
		return
	}
	s.spinner = spinner
}

// Recorder keeps every published state. It backs the --trace-loader flag and tests.
type Recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *Recorder) OnLoadingChange(s State) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

// States returns a copy of the recorded states.
func (r *Recorder) States() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]State, len(r.states))
	copy(out, r.states)
	return out
}

// Last returns the most recent state and whether any was recorded.
func (r *Recorder) Last() (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return State{}, false
	}
	return r.states[len(r.states)-1], true
}

// LogObserver writes each state change at debug level.
type LogObserver struct{}

func (LogObserver) OnLoadingChange(s State) {
	logger.Debug("loading state changed",
		zap.Int("in_flight", s.InFlight),
		zap.Bool("visible", s.Visible),
		zap.String("message", s.Message),
	)
}
