package review

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/fieldreport/internal/report"
)

// ErrBusy is returned when a review or polish is already in flight. The two
// actions throttle each other cooperatively; there is no cancellation.
var ErrBusy = errors.New("review or polish already in progress")

const maxPolishLevel = 3

// Engine owns the suggestion collection for one report session and drives
// the simulated review and polish tasks against the document store.
type Engine struct {
	mu          sync.Mutex
	store       *report.Store
	log         *slog.Logger
	suggestions []Suggestion

	reviewing   bool
	polishing   bool
	polishLevel int

	delay time.Duration
}

// NewEngine creates the suggestion engine. delay is the simulated analysis
// latency; zero means results land before the trigger call returns a done
// signal, which tests rely on.
func NewEngine(store *report.Store, log *slog.Logger, delay time.Duration) *Engine {
	return &Engine{store: store, log: log, delay: delay}
}

// Busy reports whether a review or polish task is in flight.
func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reviewing || e.polishing
}

// Reviewing reports the review task state (pending vs idle).
func (e *Engine) Reviewing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reviewing
}

// Polishing reports the polish task state.
func (e *Engine) Polishing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.polishing
}

// PolishLevel returns how many polish passes have been applied (0..3).
func (e *Engine) PolishLevel() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.polishLevel
}

// TriggerReview starts an asynchronous review pass. The fresh batch
// replaces the prior suggestion set wholesale, including unresolved ones.
// The returned channel closes when the batch has landed.
func (e *Engine) TriggerReview() (<-chan struct{}, error) {
	e.mu.Lock()
	if e.reviewing || e.polishing {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	e.reviewing = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if e.delay > 0 {
			time.Sleep(e.delay)
		}
		batch := cannedReview(e.store.Snapshot())

		e.mu.Lock()
		e.suggestions = batch
		e.reviewing = false
		e.mu.Unlock()

		e.log.Info("review completed", "suggestions", len(batch))
	}()
	return done, nil
}

// TriggerPolish starts an asynchronous polish pass over the overview
// purpose text, bumping the polish level on completion.
func (e *Engine) TriggerPolish() (<-chan struct{}, error) {
	e.mu.Lock()
	if e.reviewing || e.polishing {
		e.mu.Unlock()
		return nil, ErrBusy
	}
	e.polishing = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if e.delay > 0 {
			time.Sleep(e.delay)
		}
		doc := e.store.Snapshot()
		polished := polishText(doc.Overview.Purpose)
		e.store.UpdateOverviewField(report.FieldPurpose, polished)

		e.mu.Lock()
		if e.polishLevel < maxPolishLevel {
			e.polishLevel++
		}
		level := e.polishLevel
		e.polishing = false
		e.mu.Unlock()

		e.log.Info("polish completed", "level", level)
	}()
	return done, nil
}

// Suggestions returns a copy of the current suggestion set.
func (e *Engine) Suggestions() []Suggestion {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Suggestion, len(e.suggestions))
	copy(out, e.suggestions)
	return out
}

// Counts tallies suggestion statuses.
func (e *Engine) Counts() Counts {
	e.mu.Lock()
	defer e.mu.Unlock()
	var c Counts
	for _, s := range e.suggestions {
		switch s.Status {
		case StatusPending:
			c.Pending++
		case StatusApplied:
			c.Applied++
		case StatusDismissed:
			c.Dismissed++
		}
	}
	return c
}

// Apply transitions a pending suggestion to applied, writing its proposed
// text into the referenced document field. It reports false for unknown
// IDs, terminal suggestions, suggestions without a proposal, and dangling
// targets; in every such case nothing is mutated.
func (e *Engine) Apply(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.suggestions {
		s := &e.suggestions[i]
		if s.ID != id {
			continue
		}
		if s.Status != StatusPending || s.ProposedText == "" {
			return false
		}
		if !e.store.ApplyText(s.Target, s.ProposedText) {
			return false
		}
		s.Status = StatusApplied
		return true
	}
	return false
}

// Dismiss transitions a pending suggestion to dismissed. Terminal
// suggestions are left untouched.
func (e *Engine) Dismiss(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.suggestions {
		s := &e.suggestions[i]
		if s.ID != id {
			continue
		}
		if s.Status != StatusPending {
			return false
		}
		s.Status = StatusDismissed
		return true
	}
	return false
}
