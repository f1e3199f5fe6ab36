package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jsnanigans/relist/pkg/feed"
	"github.com/jsnanigans/relist/pkg/relist"

	"github.com/scott-cotton/cli"
)

type applied struct {
	s   relist.Script
	err error
}

func demo(cfg *DemoConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Demo.Parse(cc, args)
	if err != nil {
		cfg.Demo.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: demo takes no args, got %v", cli.ErrUsage, args)
	}
	if cfg.N < 1 {
		return fmt.Errorf("%w: -n must be positive, got %d", cli.ErrUsage, cfg.N)
	}
	ids, err := byID(cfg.Key)
	if err != nil {
		return err
	}
	if ids {
		return runDemo(cfg, cc.Out, feed.ID)
	}
	return runDemo(cfg, cc.Out, feed.Key)
}

// runDemo replays the fetch flow with rows keyed by key.
func runDemo[K comparable](cfg *DemoConfig, w io.Writer, key func(feed.Item) K) error {
	colored := cfg.colored(w)

	c := relist.NewCollection(feed.Articles("Article", cfg.N))
	c.Observe(relist.ObserverFunc(func(e relist.Edit) {
		fmt.Fprintf(w, "  notify %s", relist.Visualize(relist.Script{e}, nil, feed.Item.String, colored))
	}))

	done := make(chan applied)
	r := relist.NewReconciler(c, key, feed.Equal,
		relist.WithDiffOptions(cfg.diffOpts()...),
		relist.OnApplied(func(s relist.Script, err error) {
			done <- applied{s: s, err: err}
		}))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- r.Run(ctx) }()

	// The row the user is looking at.
	anchor := 0
	steps := []struct {
		name string
		next func([]feed.Item) []feed.Item
	}{
		{"fetch started", func(cur []feed.Item) []feed.Item {
			return append(feed.Placeholders(cfg.N), cur...)
		}},
		{"fetch done", func(cur []feed.Item) []feed.Item {
			return feed.ReplaceHead(cur, cfg.N, feed.Articles("New article", cfg.N))
		}},
	}
	for _, step := range steps {
		fmt.Fprintf(w, "%s:\n", step.name)
		r.Submit(step.next(c.Items()))
		res := <-done
		if res.err != nil {
			return res.err
		}
		pos, ok := relist.MapPosition(res.s, anchor)
		if !ok {
			slog.Debug("demo: anchor row removed", "pos", anchor)
			pos = 0
		}
		fmt.Fprintf(w, "  %d edits, anchor %d -> %d\n", len(res.s), anchor, pos)
		anchor = pos
	}

	cancel()
	if err := <-runErr; !errors.Is(err, context.Canceled) {
		return err
	}
	return dumpItems(cfg, w, c.Items())
}

func dumpItems(cfg *DemoConfig, w io.Writer, items []feed.Item) error {
	if cfg.Dump == "" {
		fmt.Fprintln(w, "final:")
		for i, it := range items {
			fmt.Fprintf(w, "  %2d %s\n", i, it)
		}
		return nil
	}
	f, err := os.Create(cfg.Dump)
	if err != nil {
		return err
	}
	if err := feed.Dump(f, items); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", cfg.Dump, err)
	}
	return f.Close()
}
