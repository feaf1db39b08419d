package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/twyst/sheets-reshape/commands"
	"github.com/twyst/sheets-reshape/log"
)

var options = commands.Options{
	Debug:  false,
	Config: "",
}

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.AuthoriseCmd,
	&commands.LongerCmd,
	&commands.WiderCmd,
	&commands.GetCmd,
	&commands.PutCmd,
	&commands.PreviewCmd,
	&commands.RunCmd,
	&commands.RevisionCmd,
}

func main() {
	flagset := flag.NewFlagSet(commands.APP, flag.ContinueOnError)
	flagset.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flagset.StringVar(&options.Config, "config", options.Config, "Configuration file ('key value' per line)")

	subcommands := []*ffcli.Command{}
	for _, c := range cli {
		subcommands = append(subcommands, commands.NewCommand(c, &options))
	}

	root := &ffcli.Command{
		Name:        commands.APP,
		ShortUsage:  fmt.Sprintf("%s [--debug] [--config <file>] <command> [options]", commands.APP),
		FlagSet:     flagset,
		Subcommands: subcommands,
		Options: []ff.Option{
			ff.WithEnvVarPrefix(commands.ENV_PREFIX),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithIgnoreUndefined(true),
		},
	}

	root.Exec = func(ctx context.Context, args []string) error {
		fmt.Fprintln(os.Stderr, ffcli.DefaultUsageFunc(root))
		return flag.ErrHelp
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := root.ParseAndRun(ctx, os.Args[1:])

	log.Sync()

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(1)
	default:
		log.Errorf("%v", err)
		log.Sync()
		os.Exit(1)
	}
}
