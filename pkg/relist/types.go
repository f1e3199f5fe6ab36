package relist

import (
	"fmt"
	"strings"
)

// Op is the kind of a positional edit.
type Op int

const (
	OpInsert Op = iota // Items from the new sequence appear at Pos
	OpRemove           // Items at Pos are dropped
	OpChange           // Items at Pos keep their identity but get new content
	OpMove             // Items at Pos are taken out and reinserted at To
)

func (op Op) String() string {
	switch op {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpChange:
		return "change"
	case OpMove:
		return "move"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// Edit is one operation of a Script. Pos is an index into the collection
// as it is at the moment the edit is applied.
type Edit struct {
	Op    Op
	Pos   int // Start of the affected run (source run for moves)
	Count int // Number of items in the run
	To    int // Moves only: index of the first moved item after the move
}

func (e Edit) String() string {
	if e.Op == OpMove {
		return fmt.Sprintf("%s(%d->%d,%d)", e.Op, e.Pos, e.To, e.Count)
	}
	return fmt.Sprintf("%s(%d,%d)", e.Op, e.Pos, e.Count)
}

// Script is an ordered list of edits. Applying the edits in order to the
// old sequence yields the new one.
type Script []Edit

// Empty reports whether the script has no edits.
func (s Script) Empty() bool {
	return len(s) == 0
}

func (s Script) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Counts returns the number of items touched by each kind of edit.
func (s Script) Counts() map[Op]int {
	res := make(map[Op]int, 4)
	for _, e := range s {
		res[e.Op] += e.Count
	}
	return res
}
