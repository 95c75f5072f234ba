package onboarding

import (
	"errors"
	"fmt"
)

// ErrStepOutOfRange is returned for a step index outside the wizard.
var ErrStepOutOfRange = errors.New("step index out of range")

// Wizard is the single-session step sequence. Closing it before Finish
// discards all progress.
type Wizard struct {
	steps      []WizardStep
	current    int
	closed     bool
	onComplete func()
}

// NewWizard creates a wizard at the first step with every step pending.
// onComplete runs from Finish.
func NewWizard(onComplete func()) *Wizard {
	return &Wizard{
		steps:      defaultSteps(),
		onComplete: onComplete,
	}
}

// Len returns the number of steps.
func (w *Wizard) Len() int {
	return len(w.steps)
}

// Current returns the index of the step being shown.
func (w *Wizard) Current() int {
	return w.current
}

// CurrentStep returns a copy of the step being shown.
func (w *Wizard) CurrentStep() WizardStep {
	return w.steps[w.current]
}

// Steps returns a copy of all steps.
func (w *Wizard) Steps() []WizardStep {
	out := make([]WizardStep, len(w.steps))
	copy(out, w.steps)
	return out
}

// Advance completes step i and moves to the following step, if any.
// Completing an already completed step is harmless.
func (w *Wizard) Advance(i int) error {
	if i < 0 || i >= len(w.steps) {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, i)
	}
	w.steps[i].Completed = true
	if i < len(w.steps)-1 {
		w.current = i + 1
	}
	return nil
}

// Previous moves back one step without touching completion.
func (w *Wizard) Previous() {
	w.current = max(0, w.current-1)
}

// Skip moves forward one step without completing the current one.
func (w *Wizard) Skip() {
	w.current = min(len(w.steps)-1, w.current+1)
}

// Select jumps to step i unless it is already completed. It reports
// whether the pointer moved there.
func (w *Wizard) Select(i int) bool {
	if i < 0 || i >= len(w.steps) || w.steps[i].Completed {
		return false
	}
	w.current = i
	return true
}

// CanGoBack reports whether Previous would move.
func (w *Wizard) CanGoBack() bool {
	return w.current > 0
}

// CanSkip reports whether Skip would move.
func (w *Wizard) CanSkip() bool {
	return w.current < len(w.steps)-1
}

// CompletedCount returns how many steps are completed.
func (w *Wizard) CompletedCount() int {
	n := 0
	for _, s := range w.steps {
		if s.Completed {
			n++
		}
	}
	return n
}

// AllCompleted is derived from the step flags.
func (w *Wizard) AllCompleted() bool {
	return w.CompletedCount() == len(w.steps)
}

// Progress returns the completed fraction in [0, 1].
func (w *Wizard) Progress() float64 {
	return float64(w.CompletedCount()) / float64(len(w.steps))
}

// Finish runs the completion callback and closes the wizard. Before every
// step is completed it does nothing and returns false.
func (w *Wizard) Finish() bool {
	if !w.AllCompleted() || w.closed {
		return false
	}
	if w.onComplete != nil {
		w.onComplete()
	}
	w.closed = true
	return true
}

// Close abandons the wizard.
func (w *Wizard) Close() {
	w.closed = true
}

// Closed reports whether the wizard was finished or abandoned.
func (w *Wizard) Closed() bool {
	return w.closed
}
