package onboarding

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"beacon/pkg/storage"

	"go.uber.org/zap"
)

// ErrPersist wraps storage write failures. The in-memory state has already
// been updated when it is returned.
var ErrPersist = errors.New("failed to persist onboarding state")

// Store is the durable onboarding gate. The in-memory mirror is authoritative
// for the running session; storage is written on every mutation.
type Store struct {
	mu          sync.Mutex
	kv          storage.KV
	logger      *zap.Logger
	state       State
	subscribers map[int]func(State)
	nextSubID   int
	// version counts local mutations so Reload can spot a read that raced one.
	version uint64
}

// NewStore creates a store over kv and loads the persisted state.
func NewStore(kv storage.KV, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		kv:          kv,
		logger:      logger,
		state:       DefaultState(),
		subscribers: map[int]func(State){},
	}
	s.Load()
	return s
}

// Load reads the persisted state into the mirror and returns it. Missing,
// unreadable or malformed values fall back to DefaultState.
func (s *Store) Load() State {
	loaded := s.read()

	s.mu.Lock()
	s.state = loaded
	s.mu.Unlock()

	return loaded.Clone()
}

// Reload re-reads storage and notifies subscribers if the state changed.
// It is used when another process rewrites the storage file. A read that
// overlaps a local mutation is dropped, since it may predate that write.
func (s *Store) Reload() bool {
	s.mu.Lock()
	version := s.version
	s.mu.Unlock()

	loaded := s.read()

	s.mu.Lock()
	if s.version != version {
		s.mu.Unlock()
		s.logger.Debug("dropped onboarding reload raced by a local change")
		return false
	}
	if s.state.Equal(loaded) {
		s.mu.Unlock()
		return false
	}
	s.state = loaded
	s.mu.Unlock()

	s.logger.Info("onboarding state changed externally", zap.Bool("completed", loaded.IsCompleted))
	s.notify(loaded)
	return true
}

func (s *Store) read() State {
	raw, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Error("error loading onboarding state", zap.Error(err))
		return DefaultState()
	}
	if !ok {
		return DefaultState()
	}

	state := DefaultState()
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logger.Error("error loading onboarding state", zap.Error(err))
		return DefaultState()
	}
	state.normalize()
	return state
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// IsCompleted reports the gate flag.
func (s *Store) IsCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsCompleted
}

// Complete marks onboarding done with every canonical step recorded.
func (s *Store) Complete() error {
	return s.apply(func(State) State { return completedState() }, false)
}

// Reset returns to the default state and removes the storage key.
func (s *Store) Reset() error {
	return s.apply(func(State) State { return DefaultState() }, true)
}

// CompleteStep appends id to the step log and records it as the last step.
// It neither deduplicates nor validates id, and never sets IsCompleted.
func (s *Store) CompleteStep(id StepID) error {
	return s.apply(func(cur State) State {
		next := cur.Clone()
		next.CompletedSteps = append(next.CompletedSteps, id)
		last := id
		next.LastCompletedStep = &last
		return next
	}, false)
}

// Subscribe registers fn to run after every state change. fn runs
// synchronously on the goroutine that caused the change.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *Store) apply(mutate func(State) State, deleteKey bool) error {
	s.mu.Lock()
	next := mutate(s.state)
	s.state = next
	s.version++
	s.mu.Unlock()

	err := s.persist(next, deleteKey)
	s.notify(next.Clone())
	return err
}

func (s *Store) persist(state State, deleteKey bool) error {
	if deleteKey {
		if err := s.kv.Delete(StorageKey); err != nil {
			s.logger.Error("failed to remove onboarding state", zap.Error(err))
			return fmt.Errorf("%w: %w", ErrPersist, err)
		}
		s.logger.Info("onboarding state reset")
		return nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		s.logger.Error("failed to save onboarding state", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.logger.Info("onboarding state saved",
		zap.Bool("completed", state.IsCompleted),
		zap.Int("steps", len(state.CompletedSteps)))
	return nil
}

func (s *Store) notify(state State) {
	s.mu.Lock()
	fns := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state.Clone())
	}
}
