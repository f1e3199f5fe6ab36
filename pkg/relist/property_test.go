package relist

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// randomRows draws n rows over a small id and body alphabet so that
// duplicate identities, content changes and moves all show up.
func randomRows(rnd *rand.Rand, n int) []Row {
	res := make([]Row, n)
	for i := range res {
		res[i] = Row{
			ID:   string(rune('a' + rnd.Intn(6))),
			Body: strconv.Itoa(rnd.Intn(2)),
		}
	}
	return res
}

func sharesIdentity(prev, next []Row) bool {
	for _, a := range prev {
		for _, b := range next {
			if a.ID == b.ID {
				return true
			}
		}
	}
	return false
}

// token is a replayed row: where it came from and whether a notification
// touched it on the way.
type token struct {
	src     int
	touched bool
}

// replayTokens applies s to the old indices, marking every position a
// notification touches.
func replayTokens(n int, s Script) []token {
	toks := make([]token, n)
	for i := range toks {
		toks[i] = token{src: i}
	}
	for _, e := range s {
		switch e.Op {
		case OpInsert:
			ins := make([]token, e.Count)
			for k := range ins {
				ins[k] = token{src: -1, touched: true}
			}
			toks = append(toks[:e.Pos], append(ins, toks[e.Pos:]...)...)
		case OpRemove:
			toks = append(toks[:e.Pos], toks[e.Pos+e.Count:]...)
		case OpChange:
			for k := e.Pos; k < e.Pos+e.Count; k++ {
				toks[k].touched = true
			}
		case OpMove:
			toks = moveBlock(toks, e.Pos, e.Count, e.To)
			for k := e.To; k < e.To+e.Count; k++ {
				toks[k].touched = true
			}
		}
	}
	return toks
}

func TestDiffProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for iter := 0; iter < 400; iter++ {
		prev := randomRows(rnd, rnd.Intn(12))
		next := randomRows(rnd, rnd.Intn(12))
		for _, moves := range []bool{false, true} {
			name := "iter" + strconv.Itoa(iter)
			if moves {
				name += "/moves"
			}
			t.Run(name, func(t *testing.T) {
				s := Diff(prev, next, rowKey, rowEqual, DetectMoves(moves))

				// Round trip, one notification per edit.
				replay(t, prev, next, s)

				// Stability.
				if diff := cmp.Diff(s, Diff(prev, next, rowKey, rowEqual, DetectMoves(moves))); diff != "" {
					t.Fatalf("Diff() not stable (-first +again):\n%s", diff)
				}

				// No-op.
				if same := Diff(prev, prev, rowKey, rowEqual, DetectMoves(moves)); !same.Empty() {
					t.Fatalf("Diff(prev, prev) = %s, want empty", same)
				}

				// Weak minimality.
				counts := s.Counts()
				structural := counts[OpInsert] + counts[OpRemove]
				bound := len(prev) + len(next)
				if structural > bound || (sharesIdentity(prev, next) && structural >= bound) {
					t.Fatalf("Diff(%v, %v) = %s: %d inserted+removed rows, bound %d", prev, next, s, structural, bound)
				}

				// Notification coverage and position mapping.
				toks := replayTokens(len(prev), s)
				mapped := map[int]int{}
				for j, tok := range toks {
					if tok.src >= 0 {
						mapped[tok.src] = j
					}
					if tok.touched {
						continue
					}
					if tok.src < 0 || !rowEqual(prev[tok.src], next[j]) {
						t.Fatalf("Diff(%v, %v) = %s: row %d differs without a notification", prev, next, s, j)
					}
				}
				for i := range prev {
					want, kept := mapped[i]
					got, ok := MapPosition(s, i)
					if ok != kept || (ok && got != want) {
						t.Fatalf("MapPosition(%s, %d) = %d, %v, want %d, %v", s, i, got, ok, want, kept)
					}
				}
			})
		}
	}
}

// longestIdentityRun is the length of the longest common subsequence of ids,
// found by trying every subset of prev.
func longestIdentityRun(prev, next []Row) int {
	best := 0
	for mask := 0; mask < 1<<len(prev); mask++ {
		j, n := 0, 0
		ok := true
		for i, r := range prev {
			if mask&(1<<i) == 0 {
				continue
			}
			for j < len(next) && next[j].ID != r.ID {
				j++
			}
			if j == len(next) {
				ok = false
				break
			}
			j++
			n++
		}
		if ok {
			best = max(best, n)
		}
	}
	return best
}

func TestDiffKeepsLongestIdentityRun(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for iter := 0; iter < 500; iter++ {
		prev := randomRows(rnd, rnd.Intn(9))
		next := randomRows(rnd, rnd.Intn(9))
		s := Diff(prev, next, rowKey, rowEqual)
		kept := len(prev) - s.Counts()[OpRemove]
		if want := longestIdentityRun(prev, next); kept != want {
			t.Fatalf("Diff(%v, %v) = %s keeps %d rows, want %d", prev, next, s, kept, want)
		}
		withMoves := Diff(prev, next, rowKey, rowEqual, DetectMoves(true)).Counts()
		if got, limit := withMoves[OpInsert]+withMoves[OpRemove], s.Counts()[OpInsert]+s.Counts()[OpRemove]; got > limit {
			t.Fatalf("Diff(%v, %v) with moves inserts and removes %d rows, more than %d without", prev, next, got, limit)
		}
	}
}
