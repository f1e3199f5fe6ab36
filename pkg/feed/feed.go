// Package feed is the item model of the article list: rows are either
// placeholders shown while a fetch is in flight or articles.
//
// Rows can be keyed two ways. Key keys them by kind, so every placeholder
// is the same row as every other placeholder. ID keys them by id: articles
// by their text, placeholders by an id minted when they are built.
package feed

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/oklog/ulid/v2"
)

// Kind tags the variant of an Item.
type Kind int

const (
	Placeholder Kind = iota + 1
	Article
)

func (k Kind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case Article:
		return "article"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind parses the names produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "placeholder":
		return Placeholder, nil
	case "article":
		return Article, nil
	}
	return 0, fmt.Errorf("unknown item kind %q", s)
}

// Item is one row of the list.
type Item struct {
	Kind Kind
	Text string
	ID   string // Empty means the text is the id
}

func (it Item) String() string {
	return it.Kind.String() + "(" + strconv.Quote(it.Text) + ")"
}

// Key is the identity of an item: rows of the same kind are the same row
// with possibly different content.
func Key(it Item) Kind {
	return it.Kind
}

// ID is the identity of an item for id-keyed lists.
func ID(it Item) string {
	if it.ID == "" {
		return it.Text
	}
	return it.ID
}

// Equal reports whether two items have the same kind and text. Ids are
// identity, not content, and are not compared.
func Equal(a, b Item) bool {
	return a.Kind == b.Kind && a.Text == b.Text
}

// Placeholders returns n placeholder rows, each with a fresh id.
func Placeholders(n int) []Item {
	res := numbered(Placeholder, "Placeholder", n)
	for i := range res {
		res[i].ID = NewID()
	}
	return res
}

// NewID mints a placeholder id.
func NewID() string {
	return ulid.Make().String()
}

// Articles returns n articles titled "<prefix> 0" to "<prefix> n-1".
func Articles(prefix string, n int) []Item {
	return numbered(Article, prefix, n)
}

func numbered(kind Kind, prefix string, n int) []Item {
	res := make([]Item, n)
	for i := range res {
		res[i] = Item{Kind: kind, Text: prefix + " " + strconv.Itoa(i)}
	}
	return res
}

// ReplaceHead returns repl followed by items without its first n rows.
func ReplaceHead(items []Item, n int, repl []Item) []Item {
	n = min(n, len(items))
	return append(slices.Clone(repl), items[n:]...)
}
