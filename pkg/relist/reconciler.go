package relist

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*reconcilerConfig)

type reconcilerConfig struct {
	diffOpts  []DiffOption
	onApplied func(Script, error)
}

// WithDiffOptions passes opts to every Diff the reconciler runs.
func WithDiffOptions(opts ...DiffOption) ReconcilerOption {
	return func(c *reconcilerConfig) {
		c.diffOpts = append(c.diffOpts, opts...)
	}
}

// OnApplied registers f to be called on the Run goroutine after every
// reconciliation, with its script or error.
func OnApplied(f func(Script, error)) ReconcilerOption {
	return func(c *reconcilerConfig) {
		c.onApplied = f
	}
}

// Reconciler serializes reconciliations of one collection. Snapshots may be
// submitted from any goroutine; they are applied one at a time on the
// goroutine calling Run. A snapshot submitted while another is still pending
// replaces it: superseded snapshots are dropped, never interleaved.
type Reconciler[T any, K comparable] struct {
	c     *Collection[T]
	key   func(T) K
	equal func(a, b T) bool
	cfg   reconcilerConfig

	mu         sync.Mutex
	pending    []T
	hasPending bool
	update     chan struct{}
}

func NewReconciler[T any, K comparable](c *Collection[T], key func(T) K, equal func(a, b T) bool, opts ...ReconcilerOption) *Reconciler[T, K] {
	r := &Reconciler[T, K]{
		c:      c,
		key:    key,
		equal:  equal,
		update: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(&r.cfg)
	}
	return r
}

// Submit queues next as the snapshot to reconcile to.
func (r *Reconciler[T, K]) Submit(next []T) {
	r.mu.Lock()
	if r.hasPending {
		slog.Debug("relist: dropping superseded snapshot", "items", len(r.pending))
	}
	r.pending = slices.Clone(next)
	r.hasPending = true
	r.mu.Unlock()

	select {
	case r.update <- struct{}{}:
	default:
	}
}

func (r *Reconciler[T, K]) take() ([]T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasPending {
		return nil, false
	}
	next := r.pending
	r.pending = nil
	r.hasPending = false
	return next, true
}

// Run applies submitted snapshots until ctx is done, then returns ctx.Err().
// A failed reconciliation is logged and leaves the collection as it was.
func (r *Reconciler[T, K]) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.update:
		}
		next, ok := r.take()
		if !ok {
			continue
		}
		s, err := reconcile(ctx, r.c, next, r.key, r.equal, r.cfg.diffOpts...)
		if err != nil {
			slog.Error("relist: reconcile failed", "items", len(next), "err", err)
		}
		if r.cfg.onApplied != nil {
			r.cfg.onApplied(s, err)
		}
	}
}
