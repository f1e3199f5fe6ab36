package relist

import "slices"

// emit walks next front to back against a simulated collection holding old
// indices. Before step j, positions [0,j) already hold next[0:j], so every
// edit position is valid at the moment the edit is applied.
func emit[T any](prev, next []T, equal func(a, b T) bool, a *alignment) Script {
	var b builder
	cur := make([]int, len(prev))
	for i := range cur {
		cur[i] = i
	}
	for j := range next {
		src := a.newFrom[j]
		for {
			// Removed items waiting at j go first, so inserts and moves
			// never land in front of them.
			if k := a.removedRun(cur, j); k > 0 {
				b.add(Edit{Op: OpRemove, Pos: j, Count: k})
				cur = slices.Delete(cur, j, j+k)
				continue
			}
			// New row.
			if src < 0 {
				b.add(Edit{Op: OpInsert, Pos: j, Count: 1})
				cur = slices.Insert(cur, j, -1)
				break
			}
			// Already in place.
			if cur[j] == src {
				break
			}
			// src sits further down at p. A moved row is pulled up to j.
			p := j + slices.Index(cur[j:], src)
			if a.moved[src] {
				b.add(Edit{Op: OpMove, Pos: p, Count: 1, To: j})
				cur = moveBlock(cur, p, 1, j)
				break
			}
			// src is an anchor: whatever sits in front of it moves later
			// in the list, so push it behind src.
			to := a.pushTarget(cur, p, a.oldTo[cur[j]])
			b.add(Edit{Op: OpMove, Pos: j, Count: 1, To: to})
			cur = moveBlock(cur, j, 1, to)
		}
		// Same row, new content.
		if src >= 0 && !equal(prev[src], next[j]) {
			b.add(Edit{Op: OpChange, Pos: j, Count: 1})
		}
	}
	// Whatever is left past the new end was removed.
	if n := len(next); len(cur) > n {
		b.add(Edit{Op: OpRemove, Pos: n, Count: len(cur) - n})
	}
	return b.edits
}

// removedRun returns the length of the run of removed old items at pos.
func (a *alignment) removedRun(cur []int, pos int) int {
	k := 0
	for pos+k < len(cur) && a.oldTo[cur[pos+k]] < 0 {
		k++
	}
	return k
}

// pushTarget picks where a moved item whose destination is dest goes when
// it blocks the anchor at p: right before the first anchor bound past dest,
// and before any moved or removed items queued up in front of that anchor
// which are themselves bound past dest. The result is an index into the
// collection with the pushed item already taken out.
func (a *alignment) pushTarget(cur []int, p, dest int) int {
	// First anchor after p that must stay behind the pushed item.
	q := len(cur)
	for k := p + 1; k < len(cur); k++ {
		t := cur[k]
		if !a.moved[t] && a.oldTo[t] > dest {
			q = k
			break
		}
	}
	// Step back over items in front of it that are also bound past dest,
	// stopping at anchors and at moved items due earlier.
	for q-1 > p {
		t := cur[q-1]
		if a.oldTo[t] >= 0 && (!a.moved[t] || a.oldTo[t] < dest) {
			break
		}
		q--
	}
	// The pushed item leaves from in front of q, so q shifts down by one.
	return q - 1
}

// moveBlock takes n items out at from and reinserts them so the first one
// lands at to.
func moveBlock[S ~[]E, E any](s S, from, n, to int) S {
	block := slices.Clone(s[from : from+n])
	s = slices.Delete(s, from, from+n)
	return slices.Insert(s, to, block...)
}

// builder appends edits, merging each one into the previous edit when both
// describe one contiguous run.
type builder struct {
	edits Script
}

func (b *builder) add(e Edit) {
	if n := len(b.edits); n > 0 {
		last := &b.edits[n-1]
		if last.Op == e.Op && b.merge(last, e) {
			return
		}
	}
	b.edits = append(b.edits, e)
}

func (b *builder) merge(last *Edit, e Edit) bool {
	switch e.Op {
	case OpInsert, OpChange:
		if last.Pos+last.Count == e.Pos {
			last.Count += e.Count
			return true
		}
	case OpRemove:
		if last.Pos == e.Pos {
			last.Count += e.Count
			return true
		}
	case OpMove:
		// Items pulled forward one after the other.
		if last.To < last.Pos && e.To < e.Pos &&
			e.Pos == last.Pos+last.Count && e.To == last.To+last.Count {
			last.Count += e.Count
			return true
		}
		// Items pushed back one after the other to the same spot.
		if last.To > last.Pos && e.To > e.Pos && e.Count == 1 &&
			e.Pos == last.Pos && e.To == last.To+last.Count-1 {
			last.Count++
			last.To--
			return true
		}
	}
	return false
}
