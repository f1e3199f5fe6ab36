// Package relist reconciles an ordered presentation collection with a new
// snapshot of its items using a minimal script of positional edits.
package relist

import (
	"context"
	"log/slog"
)

// Reconcile diffs the items currently in c against next and applies the
// resulting script to c.
func Reconcile[T any, K comparable](c *Collection[T], next []T, key func(T) K, equal func(a, b T) bool, opts ...DiffOption) (Script, error) {
	return reconcile(context.Background(), c, next, key, equal, opts...)
}

func reconcile[T any, K comparable](ctx context.Context, c *Collection[T], next []T, key func(T) K, equal func(a, b T) bool, opts ...DiffOption) (Script, error) {
	// 1. Diff against what the collection holds, never a stale snapshot.
	s, err := DiffContext(ctx, c.items, next, key, equal, opts...)
	if err != nil {
		return nil, err
	}

	// 2. Apply and notify. An empty script still refreshes the values.
	if err := Apply(s, c, next); err != nil {
		return nil, err
	}
	slog.Debug("relist: reconciled", "items", c.Len(), "edits", len(s))
	return s, nil
}
