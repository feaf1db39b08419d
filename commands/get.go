package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/sheets"
)

var GetCmd = Get{
	command: newCommand(),
	area:    "",
	file:    time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	url  string
	area string
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a Google Sheets worksheet range and stores it to a local file"
}

func (cmd *Get) Usage() string {
	return "--url <url> --range <range> --file <file>"
}

func (cmd *Get) Help() string {
	return strings.Join([]string{
		"Downloads a Google Sheets worksheet range to a local TSV, CSV, XLSX, JSON, SQLite or Arrow file. The",
		"file format is chosen from the file extension.",
		"",
		"Examples:",
		`  sheets-reshape --debug get --credentials "credentials.json" \`,
		`                             --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`,
		`                             --range "Market Share!A1:H" \`,
		`                             --file "market-share.tsv"`,
	}, "\n")
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL")
	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet range e.g. 'Market Share!A1:H'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "Local file. Defaults to '<yyyy-mm-dd HHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(ctx context.Context, options *Options) error {
	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(cmd.area) == "" {
		return fmt.Errorf("--range is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	if _, err := sheets.ParseURL(cmd.url); err != nil {
		return err
	}

	area, err := sheets.ParseArea(cmd.area)
	if err != nil {
		return err
	}

	log.Debugf("spreadsheet:%s  range:%v", cmd.url, area)

	router := cmd.router()

	t, err := router.Fetch(ctx, cmd.url, cmd.area)
	if err != nil {
		return err
	}

	if err := router.Persist(ctx, cmd.file, area.Sheet, t); err != nil {
		return err
	}

	log.Infof("retrieved %d rows to file %s", t.Len(), cmd.file)

	return nil
}
