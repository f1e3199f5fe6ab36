package relist

import (
	"strings"

	"github.com/fatih/color"
)

func opColors(colored bool) map[Op]*color.Color {
	res := map[Op]*color.Color{
		OpInsert: color.New(color.FgGreen),
		OpRemove: color.New(color.FgRed),
		OpChange: color.New(color.FgYellow),
		OpMove:   color.New(color.FgCyan),
	}
	for _, c := range res {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return res
}

// Visualize renders s one edit per line. Inserted and changed edits list the
// items they bring in from next, rendered with format.
func Visualize[T any](s Script, next []T, format func(T) string, colored bool) string {
	colors := opColors(colored)
	var builder strings.Builder
	for _, e := range s {
		builder.WriteString(colors[e.Op].Sprint(e.String()))
		if e.Op == OpInsert || e.Op == OpChange {
			start, end := max(e.Pos, 0), min(e.Pos+e.Count, len(next))
			for i := start; i < end; i++ {
				if i == start {
					builder.WriteString(": ")
				} else {
					builder.WriteString(", ")
				}
				builder.WriteString(format(next[i]))
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}
