package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jsnanigans/relist/pkg/relist"
	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='color the edit script'"`
	Verbose bool `cli:"name=v desc='log diff and reconcile traces'"`
	Moves   bool `cli:"name=moves desc='report reordered rows as moves'"`

	Main *cli.Command
}

func (cfg *MainConfig) diffOpts() []relist.DiffOption {
	return []relist.DiffOption{relist.DetectMoves(cfg.Moves)}
}

// byID reports whether rows are keyed by feed.ID rather than feed.Key.
func byID(key string) (bool, error) {
	switch key {
	case "", "kind":
		return false, nil
	case "id":
		return true, nil
	}
	return false, fmt.Errorf("%w: -key must be kind or id, got %q", cli.ErrUsage, key)
}

// colored reports whether output to w gets colors: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type DiffConfig struct {
	*MainConfig
	Key string `cli:"name=key desc='row identity: kind or id'"`

	Diff *cli.Command
}

type DemoConfig struct {
	*MainConfig
	N    int    `cli:"name=n desc='number of rows per fetch'"`
	Key  string `cli:"name=key desc='row identity: kind or id'"`
	Dump string `cli:"name=dump desc='write the final snapshot to this file'"`

	Demo *cli.Command
}
