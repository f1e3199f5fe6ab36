package relist

// MapPosition translates an index of the sequence a script was computed
// from to its index once the script is applied. It returns false when the
// item at pos is removed by the script.
func MapPosition(s Script, pos int) (int, bool) {
	p := pos
	for _, e := range s {
		end := e.Pos + e.Count
		switch e.Op {
		case OpInsert:
			// Items at or after the insertion point shift right.
			if p >= e.Pos {
				p += e.Count
			}
		case OpRemove:
			if p >= e.Pos && p < end {
				return -1, false
			}
			if p >= end {
				p -= e.Count
			}
		case OpMove:
			if p >= e.Pos && p < end {
				p = e.To + (p - e.Pos)
				continue
			}
			if p >= end {
				p -= e.Count
			}
			if p >= e.To {
				p += e.Count
			}
		}
	}
	return p, true
}
