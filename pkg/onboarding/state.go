// Package onboarding holds the analytics setup flow: the persisted
// completion state, the four-step wizard that drives it, and the content
// shown on each step.
package onboarding

import "slices"

// StorageKey is the key the onboarding state is persisted under.
const StorageKey = "analytics-onboarding"

// StepID identifies one of the fixed onboarding steps. Persisted values
// must not change without migrating stored completedSteps.
type StepID string

const (
	StepConnectStore   StepID = "connect-store"
	StepSetupTracking  StepID = "setup-tracking"
	StepConfigureGoals StepID = "configure-goals"
	StepVerifyData     StepID = "verify-data"
)

// CanonicalSteps lists every step in wizard order.
var CanonicalSteps = []StepID{
	StepConnectStore,
	StepSetupTracking,
	StepConfigureGoals,
	StepVerifyData,
}

// IsCanonical reports whether id is one of the four known steps.
func IsCanonical(id StepID) bool {
	return slices.Contains(CanonicalSteps, id)
}

// State is the persisted onboarding record.
type State struct {
	IsCompleted bool `json:"isCompleted"`
	// CompletedSteps is an append-only log and may contain duplicates.
	CompletedSteps    []StepID `json:"completedSteps"`
	LastCompletedStep *StepID  `json:"lastCompletedStep"`
}

// DefaultState is the state of a user who never started onboarding.
func DefaultState() State {
	return State{
		IsCompleted:    false,
		CompletedSteps: []StepID{},
	}
}

// completedState is what finishing the wizard writes.
func completedState() State {
	last := CanonicalSteps[len(CanonicalSteps)-1]
	return State{
		IsCompleted:       true,
		CompletedSteps:    slices.Clone(CanonicalSteps),
		LastCompletedStep: &last,
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{
		IsCompleted:    s.IsCompleted,
		CompletedSteps: slices.Clone(s.CompletedSteps),
	}
	if out.CompletedSteps == nil {
		out.CompletedSteps = []StepID{}
	}
	if s.LastCompletedStep != nil {
		last := *s.LastCompletedStep
		out.LastCompletedStep = &last
	}
	return out
}

// Equal reports whether two states hold the same values.
func (s State) Equal(other State) bool {
	if s.IsCompleted != other.IsCompleted || !slices.Equal(s.CompletedSteps, other.CompletedSteps) {
		return false
	}
	switch {
	case s.LastCompletedStep == nil && other.LastCompletedStep == nil:
		return true
	case s.LastCompletedStep == nil || other.LastCompletedStep == nil:
		return false
	default:
		return *s.LastCompletedStep == *other.LastCompletedStep
	}
}

// HasAllSteps reports whether every canonical step appears in CompletedSteps.
func (s State) HasAllSteps() bool {
	for _, id := range CanonicalSteps {
		if !slices.Contains(s.CompletedSteps, id) {
			return false
		}
	}
	return true
}

func (s *State) normalize() {
	if s.CompletedSteps == nil {
		s.CompletedSteps = []StepID{}
	}
}
