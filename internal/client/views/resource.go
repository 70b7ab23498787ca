// Package views holds the client's read views and the profile form. Each
// view fetches its data once per mount and renders to terminal text.
package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/healthplanner/internal/client/client"
)

type State int

const (
	Loading State = iota
	Loaded
	Failed
)

// Fetcher loads the data behind a Resource.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Snapshot is a consistent read of a Resource.
type Snapshot[T any] struct {
	State   State
	Data    T
	Message string
}

// Resource is a single fetch-on-mount view. A mount issues exactly one fetch;
// there is no retry and no refetch until the next mount. Unmount cancels the
// fetch in flight and its result is dropped.
type Resource[T any] struct {
	name     string
	fallback string
	fetch    Fetcher[T]

	mu     sync.Mutex
	snap   Snapshot[T]
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// NewResource returns an unmounted resource. fallback is the failure message
// used when the server supplies no detail.
func NewResource[T any](name, fallback string, fetch Fetcher[T]) *Resource[T] {
	return &Resource[T]{name: name, fallback: fallback, fetch: fetch, done: closedChan()}
}

func (r *Resource[T]) Name() string { return r.name }

// Mount resets the view to Loading and starts the fetch. Mounting an already
// mounted resource unmounts it first.
func (r *Resource[T]) Mount(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unmountLocked()
	r.gen++
	gen := r.gen

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel, r.done = cancel, done
	r.snap = Snapshot[T]{State: Loading}

	go func() {
		defer close(done)
		defer cancel()

		data, err := r.fetch(ctx)

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.gen != gen {
			return
		}
		if err != nil {
			r.snap = Snapshot[T]{State: Failed, Message: client.DetailOf(err, r.fallback)}
			return
		}
		r.snap = Snapshot[T]{State: Loaded, Data: data}
	}()
}

// Unmount cancels the fetch in flight, if any.
func (r *Resource[T]) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unmountLocked()
}

func (r *Resource[T]) unmountLocked() {
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Wait blocks until the current mount settles or ctx ends.
func (r *Resource[T]) Wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load mounts and waits, returning the settled snapshot.
func (r *Resource[T]) Load(ctx context.Context) (Snapshot[T], error) {
	r.Mount(ctx)
	if err := r.Wait(ctx); err != nil {
		r.Unmount()
		return r.Snapshot(), err
	}
	return r.Snapshot(), nil
}

func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
