package relist

import (
	"context"
	"log/slog"
	"slices"
)

// DiffOption configures Diff.
type DiffOption func(*diffConfig)

type diffConfig struct {
	moves bool
}

// DetectMoves turns removed/inserted pairs with the same identity into moves.
func DetectMoves(v bool) DiffOption {
	return func(c *diffConfig) {
		c.moves = v
	}
}

// Diff computes the script that turns prev into next. key gives the identity
// of an item: two items with the same key are the same logical row. equal
// reports whether two items with the same key also have the same content.
// equal is only consulted for items whose keys match; items with different
// keys are never the same row, whatever equal would say about them.
//
// The script keeps as many rows as the longest common subsequence of keys
// allows, and among those alignments the one with the most unchanged rows.
// Diff is deterministic and never fails.
func Diff[T any, K comparable](prev, next []T, key func(T) K, equal func(a, b T) bool, opts ...DiffOption) Script {
	s, _ := DiffContext(context.Background(), prev, next, key, equal, opts...)
	return s
}

// DiffContext is Diff with cancellation checked between alignment passes.
// The only error it returns is ctx.Err().
func DiffContext[T any, K comparable](ctx context.Context, prev, next []T, key func(T) K, equal func(a, b T) bool, opts ...DiffOption) (Script, error) {
	var cfg diffConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	a, err := align(ctx, prev, next, key, equal)
	if err != nil {
		return nil, err
	}
	if cfg.moves {
		a.pairMoves()
	}
	s := emit(prev, next, equal, a)
	slog.Debug("relist: diff", "old", len(prev), "new", len(next), "moves", cfg.moves, "script", s)
	return s, nil
}

// pairMoves matches removed old items with inserted new items of the same
// identity. Content-equal candidates win, then the earliest old index.
func (a *alignment) pairMoves() {
	pending := map[int][]int{}
	for i, j := range a.oldTo {
		if j < 0 {
			pending[a.oldKeys[i]] = append(pending[a.oldKeys[i]], i)
		}
	}
	if len(pending) == 0 {
		return
	}
	for j, i := range a.newFrom {
		if i >= 0 {
			continue
		}
		cands := pending[a.newKeys[j]]
		if len(cands) == 0 {
			continue
		}
		pick := 0
		for n, c := range cands {
			if a.oldClasses[c] == a.newClasses[j] {
				pick = n
				break
			}
		}
		src := cands[pick]
		pending[a.newKeys[j]] = slices.Delete(cands, pick, pick+1)
		a.pair(src, j)
		a.moved[src] = true
	}
}
