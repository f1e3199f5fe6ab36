package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jsnanigans/relist/pkg/feed"
	"github.com/jsnanigans/relist/pkg/relist"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	ids, err := byID(cfg.Key)
	if err != nil {
		return err
	}
	prev, err := loadFile(args[0])
	if err != nil {
		return err
	}
	next, err := loadFile(args[1])
	if err != nil {
		return err
	}
	var differs bool
	if ids {
		differs, err = diffSnapshots(cfg.MainConfig, cc.Out, prev, next, feed.ID)
	} else {
		differs, err = diffSnapshots(cfg.MainConfig, cc.Out, prev, next, feed.Key)
	}
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func loadFile(p string) ([]feed.Item, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	items, err := feed.Load(f)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", p, err)
	}
	return items, nil
}

func diffSnapshots[K comparable](cfg *MainConfig, w io.Writer, prev, next []feed.Item, key func(feed.Item) K) (bool, error) {
	s := relist.Diff(prev, next, key, feed.Equal, cfg.diffOpts()...)
	if s.Empty() {
		return false, nil
	}
	_, err := io.WriteString(w, relist.Visualize(s, next, feed.Item.String, cfg.colored(w)))
	return true, err
}
