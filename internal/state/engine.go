// Package state implements a reducer-driven state container with subscriber
// fan-out, best-effort persistence of every transition, and one-shot
// hydration from a storage.Store.
//
// A mutation dispatched before Hydrate completes may be replaced by the
// hydrated LOAD action. Callers that need the persisted state must Hydrate
// before mutating.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/utafrali/EcommerceGo/storefront/internal/storage"
)

// Options configures an Engine.
type Options[S, A any] struct {
	// Name labels logs and metrics, e.g. "cart".
	Name string
	// Key is the storage key the state is written under.
	Key string
	// Initial is the state before any dispatch.
	Initial S
	// Reduce is the pure transition function. It must not mutate its input.
	Reduce func(S, A) S
	// Encode serializes the persisted part of a state.
	Encode func(S) (string, error)
	// Decode turns a persisted value into the action that loads it.
	Decode func(string) (A, error)
}

// Engine owns one state value. All transitions go through Reduce under the
// engine lock, so they are applied in dispatch order.
type Engine[S, A any] struct {
	opts   Options[S, A]
	store  storage.Store
	logger *slog.Logger

	mu      sync.Mutex
	state   S
	subs    map[int]chan S
	nextSub int

	// pending is the newest snapshot not yet handed to the writer. At most
	// one writer runs; idle is closed when it exits.
	pending *S
	writing bool
	idle    chan struct{}

	hydrateOnce sync.Once
}

// New creates an engine holding opts.Initial.
func New[S, A any](opts Options[S, A], store storage.Store, logger *slog.Logger) *Engine[S, A] {
	return &Engine[S, A]{
		opts:   opts,
		store:  store,
		logger: logger.With(slog.String("engine", opts.Name)),
		state:  opts.Initial,
		subs:   make(map[int]chan S),
	}
}

// Key returns the storage key.
func (e *Engine[S, A]) Key() string { return e.opts.Key }

// State returns the current state.
func (e *Engine[S, A]) State() S {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Dispatch applies a and returns the resulting state.
func (e *Engine[S, A]) Dispatch(a A) S {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply(a)
}

// Update lets decide inspect the current state and pick an action under the
// same lock that applies it. When decide returns false nothing is
// dispatched.
func (e *Engine[S, A]) Update(decide func(S) (A, bool)) S {
	e.mu.Lock()
	defer e.mu.Unlock()

	a, ok := decide(e.state)
	if !ok {
		return e.state
	}
	return e.apply(a)
}

// apply must be called with e.mu held.
func (e *Engine[S, A]) apply(a A) S {
	next := e.opts.Reduce(e.state, a)
	e.state = next
	dispatchTotal.WithLabelValues(e.opts.Name, actionName(a)).Inc()

	for _, ch := range e.subs {
		publish(ch, next)
	}
	e.persist(next)
	return next
}

// publish replaces any unread state in ch with s. Only apply sends, and it
// holds the engine lock, so the second send cannot block.
func publish[S any](ch chan S, s S) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

// Subscribe returns a channel that receives the latest state after each
// transition. A slow reader skips intermediate states; it never blocks
// dispatch. Call cancel to release the subscription.
func (e *Engine[S, A]) Subscribe() (<-chan S, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	ch := make(chan S, 1)
	e.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// persist queues s for the writer goroutine, starting one if none is
// running. Writes for one engine never overlap, and a snapshot queued while
// a write is in flight replaces any older queued one, so the last value
// written is always the last state applied. Must be called with e.mu held.
func (e *Engine[S, A]) persist(s S) {
	e.pending = &s
	if e.writing {
		return
	}
	e.writing = true
	e.idle = make(chan struct{})
	go e.writeLoop(e.idle)
}

// writeLoop drains pending until it is empty. Writes are detached from any
// caller context and have no timeout; a failure is logged and counted.
func (e *Engine[S, A]) writeLoop(idle chan struct{}) {
	defer close(idle)

	ctx := context.Background()
	for {
		e.mu.Lock()
		next := e.pending
		e.pending = nil
		if next == nil {
			e.writing = false
			e.mu.Unlock()
			return
		}
		e.mu.Unlock()

		value, err := e.opts.Encode(*next)
		if err == nil {
			err = e.store.Set(ctx, e.opts.Key, value)
		}
		if err != nil {
			persistTotal.WithLabelValues(e.opts.Name, resultError).Inc()
			e.logger.ErrorContext(ctx, "failed to persist state",
				slog.String("key", e.opts.Key),
				slog.String("error", err.Error()),
			)
			continue
		}
		persistTotal.WithLabelValues(e.opts.Name, resultOK).Inc()
	}
}

// Hydrate loads the persisted value once per engine lifetime and dispatches
// the decoded LOAD action. A missing key, read error or decode error leaves
// the state untouched; errors are logged, never returned.
func (e *Engine[S, A]) Hydrate(ctx context.Context) {
	e.hydrateOnce.Do(func() {
		raw, ok, err := e.store.Get(ctx, e.opts.Key)
		if err != nil {
			hydrateTotal.WithLabelValues(e.opts.Name, resultError).Inc()
			e.logger.ErrorContext(ctx, "failed to read persisted state",
				slog.String("key", e.opts.Key),
				slog.String("error", err.Error()),
			)
			return
		}
		if !ok || raw == "" {
			hydrateTotal.WithLabelValues(e.opts.Name, resultEmpty).Inc()
			return
		}

		a, err := e.opts.Decode(raw)
		if err != nil {
			hydrateTotal.WithLabelValues(e.opts.Name, resultError).Inc()
			e.logger.ErrorContext(ctx, "failed to decode persisted state",
				slog.String("key", e.opts.Key),
				slog.String("error", err.Error()),
			)
			return
		}

		e.Dispatch(a)
		hydrateTotal.WithLabelValues(e.opts.Name, resultOK).Inc()
		e.logger.DebugContext(ctx, "state hydrated", slog.String("key", e.opts.Key))
	})
}

// HydrateAsync runs Hydrate on a new goroutine. The returned channel is
// closed when it finishes.
func (e *Engine[S, A]) HydrateAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Hydrate(ctx)
	}()
	return done
}

// Flush waits until every state applied before the call has been written,
// or until ctx is done.
func (e *Engine[S, A]) Flush(ctx context.Context) error {
	e.mu.Lock()
	if !e.writing {
		e.mu.Unlock()
		return nil
	}
	idle := e.idle
	e.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flush %s: %w", e.opts.Name, ctx.Err())
	}
}

// actionName turns cart.AddItem into "AddItem".
func actionName(a any) string {
	name := fmt.Sprintf("%T", a)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
