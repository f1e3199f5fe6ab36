package feed

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

type yamlItem struct {
	Kind string `yaml:"kind"`
	Text string `yaml:"text"`
	ID   string `yaml:"id,omitempty"`
}

// Load reads a YAML snapshot: a sequence of {kind, text, id} mappings.
// Placeholders without an id get a fresh one.
func Load(r io.Reader) ([]Item, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var raw []yamlItem
	if err := yaml.Unmarshal(d, &raw); err != nil {
		return nil, fmt.Errorf("error decoding snapshot: %w", err)
	}
	res := make([]Item, len(raw))
	for i, ri := range raw {
		kind, err := ParseKind(ri.Kind)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		res[i] = Item{Kind: kind, Text: ri.Text, ID: ri.ID}
		if kind == Placeholder && ri.ID == "" {
			res[i].ID = NewID()
		}
	}
	return res, nil
}

// Dump writes items in the format Load reads.
func Dump(w io.Writer, items []Item) error {
	raw := make([]yamlItem, len(items))
	for i, it := range items {
		raw[i] = yamlItem{Kind: it.Kind.String(), Text: it.Text, ID: it.ID}
	}
	d, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
