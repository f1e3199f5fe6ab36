package relist

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF

	// maxRunes is the number of distinct values runeAt can encode.
	maxRunes = utf8.MaxRune + 1 - (surrogateMax - surrogateMin + 1)
)

// runeAt maps n onto the n-th valid rune, skipping the surrogate range so
// that the rune survives the string round trip inside diffmatchpatch.
func runeAt(n int) rune {
	if n >= surrogateMin {
		n += surrogateMax - surrogateMin + 1
	}
	return rune(n)
}

func toRunes(ids []int) []rune {
	rs := make([]rune, len(ids))
	for i, id := range ids {
		rs[i] = runeAt(id)
	}
	return rs
}

type classRep[T any] struct {
	item  T
	class int
}

// alignment pairs indices of the old sequence with indices of the new one.
// Pairs are either anchors (aligned in order) or, when move detection is on,
// moved items.
type alignment struct {
	oldKeys, newKeys       []int
	oldClasses, newClasses []int

	oldTo   []int  // old index -> new index, -1 when removed
	newFrom []int  // new index -> old index, -1 when inserted
	moved   []bool // by old index
}

type region struct {
	oldStart, oldEnd int
	newStart, newEnd int
}

// maxCells bounds the score table of lcs. Larger middle regions are
// aligned by anchorRuns instead.
const maxCells = 1 << 22

// align interns identity keys and content classes into ids and pairs old
// and new indices by the longest common subsequence of identity keys. Among
// alignments of that length it keeps the one with the most exact matches,
// so rows that did not change anchor and changed rows get a Change rather
// than a remove and an insert.
func align[T any, K comparable](ctx context.Context, prev, next []T, key func(T) K, equal func(a, b T) bool) (*alignment, error) {
	a := &alignment{
		oldKeys:    make([]int, len(prev)),
		newKeys:    make([]int, len(next)),
		oldClasses: make([]int, len(prev)),
		newClasses: make([]int, len(next)),
		oldTo:      make([]int, len(prev)),
		newFrom:    make([]int, len(next)),
		moved:      make([]bool, len(prev)),
	}
	ids := map[K]int{}
	reps := map[K][]classRep[T]{}
	classes := 0
	// equal is only ever asked about two items of the same key.
	classify := func(x T) (int, int) {
		k := key(x)
		id, ok := ids[k]
		if !ok {
			id = len(ids)
			ids[k] = id
		}
		for _, rep := range reps[k] {
			if equal(rep.item, x) {
				return id, rep.class
			}
		}
		reps[k] = append(reps[k], classRep[T]{item: x, class: classes})
		classes++
		return id, classes - 1
	}
	for i, x := range prev {
		a.oldKeys[i], a.oldClasses[i] = classify(x)
		a.oldTo[i] = -1
	}
	for j, x := range next {
		a.newKeys[j], a.newClasses[j] = classify(x)
		a.newFrom[j] = -1
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ids) > maxRunes || classes > maxRunes {
		a.trim()
		return a, nil
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	// Exact prefix and suffix runs belong to some best alignment: pair them
	// and leave only the middle to score.
	oldRunes, newRunes := toRunes(a.oldClasses), toRunes(a.newClasses)
	pre := dmp.DiffCommonPrefix(string(oldRunes), string(newRunes))
	suf := dmp.DiffCommonSuffix(string(oldRunes[pre:]), string(newRunes[pre:]))
	for k := 0; k < pre; k++ {
		a.pair(k, k)
	}
	n, m := len(prev), len(next)
	for k := 1; k <= suf; k++ {
		a.pair(n-k, m-k)
	}
	mid := region{oldStart: pre, oldEnd: n - suf, newStart: pre, newEnd: m - suf}
	rows, cols := mid.oldEnd-mid.oldStart, mid.newEnd-mid.newStart
	if rows == 0 || cols == 0 {
		return a, nil
	}
	var err error
	if (rows+1)*(cols+1) <= maxCells {
		err = a.lcs(ctx, mid)
	} else {
		slog.Debug("relist: region too large to score, anchoring exact runs", "old", rows, "new", cols)
		err = a.anchorRuns(ctx, dmp, mid)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// lcs pairs r by the longest common subsequence of identity keys, breaking
// ties by the number of exact matches. Every identity pair weighs more than
// all exact bonuses together.
func (a *alignment) lcs(ctx context.Context, r region) error {
	n, m := r.oldEnd-r.oldStart, r.newEnd-r.newStart
	w := int32(min(n, m) + 1)
	score := make([]int32, (n+1)*(m+1))
	at := func(i, j int) int { return i*(m+1) + j }
	match := func(i, j int) (int32, bool) {
		oi, nj := r.oldStart+i, r.newStart+j
		if a.oldKeys[oi] != a.newKeys[nj] {
			return 0, false
		}
		v := w + score[at(i+1, j+1)]
		if a.oldClasses[oi] == a.newClasses[nj] {
			v++
		}
		return v, true
	}

	// score[i][j] is the best weight of old[i:] against new[j:].
	for i := n - 1; i >= 0; i-- {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for j := m - 1; j >= 0; j-- {
			best := max(score[at(i+1, j)], score[at(i, j+1)])
			if v, ok := match(i, j); ok && v > best {
				best = v
			}
			score[at(i, j)] = best
		}
	}

	// Walk forward, taking a pair whenever it is on a best path, then
	// dropping old items before new ones.
	for i, j := 0, 0; i < n && j < m; {
		s := score[at(i, j)]
		if v, ok := match(i, j); ok && v == s {
			a.pair(r.oldStart+i, r.newStart+j)
			i++
			j++
			continue
		}
		if s == score[at(i+1, j)] {
			i++
		} else {
			j++
		}
	}
	return nil
}

// anchorRuns runs two passes of Myers over r: content classes first, so
// that untouched rows anchor, then identity keys inside every gap between
// anchors.
func (a *alignment) anchorRuns(ctx context.Context, dmp *diffmatchpatch.DiffMatchPatch, r region) error {
	var gaps []region
	diffs := dmp.DiffMainRunes(
		toRunes(a.oldClasses[r.oldStart:r.oldEnd]),
		toRunes(a.newClasses[r.newStart:r.newEnd]),
		false)
	walkDiffs(diffs, r.oldStart, r.newStart, a.pair, func(g region) {
		gaps = append(gaps, g)
	})
	for _, g := range gaps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if g.oldStart == g.oldEnd || g.newStart == g.newEnd {
			continue
		}
		diffs := dmp.DiffMainRunes(
			toRunes(a.oldKeys[g.oldStart:g.oldEnd]),
			toRunes(a.newKeys[g.newStart:g.newEnd]),
			false)
		walkDiffs(diffs, g.oldStart, g.newStart, a.pair, nil)
	}
	return nil
}

func (a *alignment) pair(i, j int) {
	a.oldTo[i] = j
	a.newFrom[j] = i
}

// trim aligns only the common identity prefix and suffix.
func (a *alignment) trim() {
	n, m := len(a.oldKeys), len(a.newKeys)
	pre := 0
	for pre < n && pre < m && a.oldKeys[pre] == a.newKeys[pre] {
		a.pair(pre, pre)
		pre++
	}
	for suf := 1; n-suf >= pre && m-suf >= pre && a.oldKeys[n-suf] == a.newKeys[m-suf]; suf++ {
		a.pair(n-suf, m-suf)
	}
}

// walkDiffs replays diffs computed over old[oldOff:] and new[newOff:],
// reporting every equal pair and every gap between equal runs.
func walkDiffs(diffs []diffmatchpatch.Diff, oldOff, newOff int, pair func(i, j int), gap func(region)) {
	i, j := oldOff, newOff
	gapOld, gapNew := i, j
	flush := func() {
		if gap != nil && (i > gapOld || j > gapNew) {
			gap(region{oldStart: gapOld, oldEnd: i, newStart: gapNew, newEnd: j})
		}
	}
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			for k := 0; k < n; k++ {
				pair(i+k, j+k)
			}
			i += n
			j += n
			gapOld, gapNew = i, j
		case diffmatchpatch.DiffDelete:
			i += n
		case diffmatchpatch.DiffInsert:
			j += n
		}
	}
	flush()
}
