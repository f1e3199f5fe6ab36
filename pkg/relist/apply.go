package relist

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrOutOfBounds is returned by Apply when an edit does not fit the
	// collection. It means the script was not computed against the
	// collection's current items.
	ErrOutOfBounds = errors.New("edit out of bounds")
	// ErrLengthMismatch is returned by Apply when the script would not
	// leave the collection with as many items as the new sequence.
	ErrLengthMismatch = errors.New("script does not produce the new sequence")
)

// Apply applies s to c, taking inserted and changed items from next, and
// notifies c's observers once per edit. The script must have been computed
// against c's current items and next.
//
// The whole script is checked before c is touched: on error c and its
// observers are left as they were.
func Apply[T any](s Script, c *Collection[T], next []T) error {
	if err := check(s, len(c.items), len(next)); err != nil {
		return err
	}
	for _, e := range s {
		switch e.Op {
		case OpInsert:
			c.items = slices.Insert(c.items, e.Pos, next[e.Pos:e.Pos+e.Count]...)
		case OpRemove:
			c.items = slices.Delete(c.items, e.Pos, e.Pos+e.Count)
		case OpChange:
			copy(c.items[e.Pos:e.Pos+e.Count], next[e.Pos:e.Pos+e.Count])
		case OpMove:
			c.items = moveBlock(c.items, e.Pos, e.Count, e.To)
		}
		c.notify(e)
	}
	// Untouched items are equal to their counterparts; take the new values
	// so next is the source of truth from here on.
	copy(c.items, next)
	return nil
}

// check replays the lengths a script goes through.
func check(s Script, n, want int) error {
	for i, e := range s {
		if e.Count <= 0 || e.Pos < 0 {
			return fmt.Errorf("%w: edit %d %s", ErrOutOfBounds, i, e)
		}
		end := e.Pos + e.Count
		switch e.Op {
		case OpInsert:
			// Inserted items come from next at the same position.
			if e.Pos > n || end > want {
				return fmt.Errorf("%w: edit %d %s with %d items, %d new", ErrOutOfBounds, i, e, n, want)
			}
			n += e.Count
		case OpRemove:
			if end > n {
				return fmt.Errorf("%w: edit %d %s with %d items", ErrOutOfBounds, i, e, n)
			}
			n -= e.Count
		case OpChange:
			if end > n || end > want {
				return fmt.Errorf("%w: edit %d %s with %d items, %d new", ErrOutOfBounds, i, e, n, want)
			}
		case OpMove:
			// To counts positions with the block already taken out.
			if end > n || e.To < 0 || e.To > n-e.Count {
				return fmt.Errorf("%w: edit %d %s with %d items", ErrOutOfBounds, i, e, n)
			}
		default:
			return fmt.Errorf("%w: edit %d has unknown op %s", ErrOutOfBounds, i, e.Op)
		}
	}
	if n != want {
		return fmt.Errorf("%w: ends with %d items, want %d", ErrLengthMismatch, n, want)
	}
	return nil
}
