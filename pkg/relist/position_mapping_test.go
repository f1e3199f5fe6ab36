package relist

import "testing"

func TestMapPosition(t *testing.T) {
	tests := []struct {
		name   string
		script Script
		pos    int
		want   int
		wantOK bool
	}{
		{
			name:   "no edits",
			pos:    5,
			want:   5,
			wantOK: true,
		},
		{
			name:   "insert before",
			script: Script{{Op: OpInsert, Pos: 0, Count: 3}},
			pos:    2,
			want:   5,
			wantOK: true,
		},
		{
			name:   "insert at position shifts it",
			script: Script{{Op: OpInsert, Pos: 2, Count: 1}},
			pos:    2,
			want:   3,
			wantOK: true,
		},
		{
			name:   "insert after",
			script: Script{{Op: OpInsert, Pos: 4, Count: 2}},
			pos:    3,
			want:   3,
			wantOK: true,
		},
		{
			name:   "removed",
			script: Script{{Op: OpRemove, Pos: 1, Count: 2}},
			pos:    2,
			want:   -1,
			wantOK: false,
		},
		{
			name:   "remove before",
			script: Script{{Op: OpRemove, Pos: 1, Count: 2}},
			pos:    3,
			want:   1,
			wantOK: true,
		},
		{
			name:   "change keeps position",
			script: Script{{Op: OpChange, Pos: 0, Count: 4}},
			pos:    1,
			want:   1,
			wantOK: true,
		},
		{
			name:   "moved item",
			script: Script{{Op: OpMove, Pos: 3, Count: 2, To: 0}},
			pos:    4,
			want:   1,
			wantOK: true,
		},
		{
			name:   "item jumped over by a move",
			script: Script{{Op: OpMove, Pos: 3, Count: 2, To: 0}},
			pos:    1,
			want:   3,
			wantOK: true,
		},
		{
			name:   "item left behind by a move",
			script: Script{{Op: OpMove, Pos: 0, Count: 1, To: 3}},
			pos:    2,
			want:   1,
			wantOK: true,
		},
		{
			name: "placeholders replaced",
			script: Script{
				{Op: OpRemove, Pos: 0, Count: 10},
				{Op: OpInsert, Pos: 0, Count: 10},
			},
			pos:    12,
			want:   12,
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MapPosition(tt.script, tt.pos)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("MapPosition(%s, %d) = %d, %v, want %d, %v", tt.script, tt.pos, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
