package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/twyst/sheets-reshape/sheets"
)

var RevisionCmd = Revision{
	command: newCommand(),
}

type Revision struct {
	command
	url string
}

func (cmd *Revision) Name() string {
	return "revision"
}

func (cmd *Revision) Description() string {
	return "Displays the latest revision of a Google Sheets spreadsheet"
}

func (cmd *Revision) Usage() string {
	return "--url <url>"
}

func (cmd *Revision) Help() string {
	return strings.Join([]string{
		"Displays the ID and modification time of the latest Google Drive revision of a spreadsheet, e.g.",
		"to check whether a source has changed since it was last reshaped.",
		"",
		"Examples:",
		`  sheets-reshape revision --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"`,
	}, "\n")
}

func (cmd *Revision) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("revision")

	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")

	return flagset
}

func (cmd *Revision) Execute(ctx context.Context, options *Options) error {
	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if _, err := sheets.ParseURL(cmd.url); err != nil {
		return err
	}

	client, err := cmd.google(ctx)
	if err != nil {
		return err
	}

	revision, err := client.Revision(ctx, cmd.url)
	if err != nil {
		return err
	}

	fmt.Printf("%v\n", revision)

	return nil
}
