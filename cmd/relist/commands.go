package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "relist").
		WithSynopsis("relist [opts] command [opts]").
		WithDescription("relist computes and replays list edit scripts.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return relistMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			DemoCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff old.yaml new.yaml").
		WithDescription("print the edit script between two snapshots, exit 1 if they differ").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func DemoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DemoConfig{MainConfig: mainCfg, N: 10}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("demo").
		WithOpts(opts...).
		WithSynopsis("demo [-n rows] [-dump file]").
		WithDescription("replay a placeholder then articles fetch through a reconciler").
		WithRun(func(cc *cli.Context, args []string) error {
			return demo(cfg, cc, args)
		})
	cfg.Demo = cmd
	return cmd
}
