// Package state keeps the last fetched list of each resource for the views.
package state

import (
	"context"
	"sync"
)

type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	LoadError
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadError:
		return "error"
	default:
		return "unknown"
	}
}

// Slot holds one list. Reloads are numbered; a fetch that finishes after a
// newer one has started is discarded, so the slot always reflects the most
// recently started fetch that completed.
type Slot[R any] struct {
	mu     sync.Mutex
	gen    uint64
	status Status
	items  []R
	err    error
}

// Reload runs fetch and stores its result if no newer Reload began in the
// meantime. On error the previous items are kept. It returns fetch's error
// and whether the result was applied.
func (s *Slot[R]) Reload(ctx context.Context, fetch func(ctx context.Context) ([]R, error)) (bool, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.status = Loading
	s.mu.Unlock()

	items, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false, err
	}
	if err != nil {
		s.status = LoadError
		s.err = err
		return true, err
	}
	if items == nil {
		items = []R{}
	}
	s.items = items
	s.status = Loaded
	s.err = nil
	return true, nil
}

// Items returns a copy of the current list.
func (s *Slot[R]) Items() []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]R, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Slot[R]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err is the error of the last applied failed reload.
func (s *Slot[R]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Find returns the first item matching pred.
func (s *Slot[R]) Find(pred func(R) bool) (R, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if pred(it) {
			return it, true
		}
	}
	var zero R
	return zero, false
}

// Reset forgets everything, e.g. on logout.
func (s *Slot[R]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.status = Idle
	s.items = nil
	s.err = nil
}
