package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/pipeline"
)

// reshape holds the options shared by the 'longer' and 'wider' commands.
type reshape struct {
	command
	from        string
	area        string
	to          string
	sheet       string
	identifiers string
	category    string
	value       string
	preview     bool
	rows        int
}

func newReshape() reshape {
	return reshape{
		command:  newCommand(),
		category: "category",
		value:    "value",
		rows:     20,
	}
}

func (r *reshape) flags(flagset *flag.FlagSet) {
	flagset.StringVar(&r.from, "from", r.from, "Source spreadsheet URL or local file")
	flagset.StringVar(&r.area, "range", r.area, "Source range e.g. 'Market Share!A1:H', worksheet or SQLite table")
	flagset.StringVar(&r.to, "to", r.to, "Destination spreadsheet URL, 'new:<title>' or local file")
	flagset.StringVar(&r.sheet, "sheet", r.sheet, "Destination worksheet (or SQLite table)")
	flagset.StringVar(&r.identifiers, "id", r.identifiers, "Identifier columns, as a list of names e.g. 'Year,Month' or a range e.g. '1:2'")
	flagset.StringVar(&r.category, "category", r.category, "Category column name")
	flagset.StringVar(&r.value, "value", r.value, "Value column name")
	flagset.BoolVar(&r.preview, "preview", r.preview, "Prints the reshaped table instead of writing it to the destination")
	flagset.IntVar(&r.rows, "rows", r.rows, "Maximum number of rows to print with --preview")
}

func (r *reshape) validate() error {
	if strings.TrimSpace(r.from) == "" {
		return fmt.Errorf("--from is a required option")
	}

	if strings.TrimSpace(r.to) == "" && !r.preview {
		return fmt.Errorf("--to is a required option (unless --preview)")
	}

	return nil
}

func (r *reshape) job(name string, rs pipeline.Reshape) pipeline.Job {
	sheet := r.sheet
	if sheet == "" {
		sheet = "Sheet1"
	}

	return pipeline.Job{
		Name: name,
		Source: pipeline.Range{
			Location: r.from,
			Range:    r.area,
		},
		Reshape: rs,
		Sink: pipeline.Target{
			Location: r.to,
			Sheet:    sheet,
		},
	}
}

func (r *reshape) execute(ctx context.Context, job pipeline.Job) error {
	router := r.router()
	runner := pipeline.Runner{
		Source: router,
		Sink:   router,
	}

	if r.preview {
		t, err := runner.Reshape(ctx, job)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, render(t, r.rows))

		return nil
	}

	t, err := runner.Run(ctx, job)
	if err != nil {
		return err
	}

	log.Infof("%s: wrote %d rows to '%s' %s", job.Name, t.Len(), job.Sink.Sheet, job.Sink.Location)

	return nil
}
