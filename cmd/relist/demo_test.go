package main

import (
	"bytes"
	"testing"

	"github.com/jsnanigans/relist/pkg/feed"
)

const demoOut = `fetch started:
  notify insert(0,2)
  1 edits, anchor 0 -> 2
fetch done:
  notify remove(0,2)
  notify insert(0,2)
  2 edits, anchor 2 -> 2
final:
   0 article("New article 0")
   1 article("New article 1")
   2 article("Article 0")
   3 article("Article 1")
`

func TestRunDemo(t *testing.T) {
	cfg := &DemoConfig{MainConfig: &MainConfig{Main: MainCommand()}, N: 2}
	t.Run("kind", func(t *testing.T) {
		var buf bytes.Buffer
		if err := runDemo(cfg, &buf, feed.Key); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != demoOut {
			t.Errorf("runDemo() wrote\n%s\nwant\n%s", got, demoOut)
		}
	})
	t.Run("id", func(t *testing.T) {
		var buf bytes.Buffer
		if err := runDemo(cfg, &buf, feed.ID); err != nil {
			t.Fatal(err)
		}
		if got := buf.String(); got != demoOut {
			t.Errorf("runDemo() wrote\n%s\nwant\n%s", got, demoOut)
		}
	})
}

func TestByID(t *testing.T) {
	tests := []struct {
		key     string
		want    bool
		wantErr bool
	}{
		{"", false, false},
		{"kind", false, false},
		{"id", true, false},
		{"class", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := byID(tt.key)
			if got != tt.want || (err != nil) != tt.wantErr {
				t.Errorf("byID(%q) = %v, %v, want %v, error %v", tt.key, got, err, tt.want, tt.wantErr)
			}
		})
	}
}
