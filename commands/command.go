package commands

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/twyst/sheets-reshape/local"
	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/pipeline"
	"github.com/twyst/sheets-reshape/sheets"
)

const APP = "sheets-reshape"

// ENV_PREFIX is the prefix for environment variables that set command line options e.g.
// SHEETS_RESHAPE_CREDENTIALS.
const ENV_PREFIX = "SHEETS_RESHAPE"

// Options holds the global command line options.
type Options struct {
	Debug  bool
	Config string
}

// Command is implemented by every CLI command.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Help() string
	FlagSet() *flag.FlagSet
	Execute(ctx context.Context, options *Options) error
}

// NewCommand wraps a Command as an ffcli subcommand. Flags not set on the command line are
// taken from the environment and then from the --config file.
func NewCommand(cmd Command, options *Options) *ffcli.Command {
	return &ffcli.Command{
		Name:       cmd.Name(),
		ShortUsage: fmt.Sprintf("%s [--debug] %s %s", APP, cmd.Name(), cmd.Usage()),
		ShortHelp:  cmd.Description(),
		LongHelp:   cmd.Help(),
		FlagSet:    cmd.FlagSet(),
		Options: []ff.Option{
			ff.WithEnvVarPrefix(ENV_PREFIX),
			ff.WithConfigFileVia(&options.Config),
			ff.WithConfigFileParser(ff.PlainParser),
			ff.WithIgnoreUndefined(true),
		},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected arguments %v", args)
			}

			log.SetDebug(options.Debug)

			return cmd.Execute(ctx, options)
		},
	}
}

// command holds the options shared by the commands that access Google Sheets.
type command struct {
	workdir     string
	credentials string
	tokens      string
	charset     string
}

func newCommand() command {
	return command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		tokens:      "",
		charset:     "",
	}
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ContinueOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, revisions, etc)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file")
	flagset.StringVar(&c.tokens, "tokens", c.tokens, "Directory for the authorisation tokens. Defaults to <workdir>/.google")
	flagset.StringVar(&c.charset, "charset", c.charset, "Character set for TSV/CSV files e.g. 'windows-1252'. Defaults to UTF-8")

	return flagset
}

func (c *command) tokensDir() string {
	if c.tokens != "" {
		return c.tokens
	}

	return filepath.Join(c.workdir, ".google")
}

// router returns a Source/Sink for both local files and Google Sheets. The Google client is
// only authorised if a Google Sheets location is actually used.
func (c *command) router() *pipeline.Router {
	return &pipeline.Router{
		Google: c.google,
		Local: &local.Store{
			Charset: c.charset,
		},
	}
}

func (c *command) google(ctx context.Context) (*sheets.Client, error) {
	if strings.TrimSpace(c.credentials) == "" {
		return nil, fmt.Errorf("--credentials is a required option for Google Sheets")
	}

	client, err := authorize(ctx, c.credentials, []string{sheets.SHEETS, sheets.DRIVE}, c.tokensDir())
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	return sheets.NewClient(ctx, client)
}
