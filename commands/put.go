package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/sheets"
)

var PutCmd = Put{
	command: newCommand(),
}

type Put struct {
	command
	file  string
	area  string
	url   string
	sheet string
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Uploads a local file to a Google Sheets worksheet"
}

func (cmd *Put) Usage() string {
	return "--file <file> --url <url> --sheet <sheet>"
}

func (cmd *Put) Help() string {
	return strings.Join([]string{
		"Uploads a local TSV, CSV, XLSX, JSON or SQLite file to a worksheet, replacing the worksheet contents.",
		"The worksheet is created if it does not exist. A URL of the form 'new:<title>' creates a new",
		"spreadsheet.",
		"",
		"Examples:",
		`  sheets-reshape put --credentials "credentials.json" \`,
		`                     --file "market-share.tsv" \`,
		`                     --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`,
		`                     --sheet "Market Share"`,
	}, "\n")
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.file, "file", cmd.file, "Local file")
	flagset.StringVar(&cmd.area, "range", cmd.area, "Worksheet (XLSX) or table (SQLite) in the local file")
	flagset.StringVar(&cmd.url, "url", cmd.url, "Spreadsheet URL or 'new:<title>'")
	flagset.StringVar(&cmd.sheet, "sheet", cmd.sheet, "Destination worksheet")

	return flagset
}

func (cmd *Put) Execute(ctx context.Context, options *Options) error {
	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	if strings.TrimSpace(cmd.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if strings.TrimSpace(cmd.sheet) == "" {
		return fmt.Errorf("--sheet is a required option")
	}

	if !sheets.IsNew(cmd.url) {
		if _, err := sheets.ParseURL(cmd.url); err != nil {
			return err
		}
	}

	router := cmd.router()

	t, err := router.Fetch(ctx, cmd.file, cmd.area)
	if err != nil {
		return err
	}

	if err := router.Persist(ctx, cmd.url, cmd.sheet, t); err != nil {
		return err
	}

	log.Infof("uploaded %d rows to worksheet '%s'", t.Len(), cmd.sheet)

	return nil
}
