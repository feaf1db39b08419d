package commands

import (
	"context"
	"flag"
	"strings"

	"github.com/twyst/sheets-reshape/pipeline"
)

var LongerCmd = Longer{
	reshape: newReshape(),
}

type Longer struct {
	reshape
	measures   string
	dropAbsent bool
}

func (cmd *Longer) Name() string {
	return "longer"
}

func (cmd *Longer) Description() string {
	return "Reshapes a wide table to long form"
}

func (cmd *Longer) Usage() string {
	return "--from <location> --range <range> --id <columns> --to <location> --sheet <sheet>"
}

func (cmd *Longer) Help() string {
	return strings.Join([]string{
		"Reshapes a wide table to long form. The identifier columns are kept and every other (measure)",
		"column becomes one row per input row, with the column name in the category column and the cell",
		"in the value column. Either the identifier columns (--id) or the measure columns (--measures)",
		"can be given.",
		"",
		"Examples:",
		`  sheets-reshape longer --from "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`,
		`                        --range "Wide!A1:H" \`,
		`                        --id "Year,Month" --category Vendor --value Share \`,
		`                        --to "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`,
		`                        --sheet Long`,
		"",
		`  sheets-reshape longer --from market-share.xlsx --range Wide --measures "4:" --preview`,
	}, "\n")
}

func (cmd *Longer) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("longer")

	cmd.flags(flagset)
	flagset.StringVar(&cmd.measures, "measures", cmd.measures, "Measure columns, as a list of names or a range e.g. '4:'")
	flagset.BoolVar(&cmd.dropAbsent, "drop-absent", cmd.dropAbsent, "Omits rows with an empty value")

	return flagset
}

func (cmd *Longer) Execute(ctx context.Context, options *Options) error {
	if err := cmd.validate(); err != nil {
		return err
	}

	job := cmd.job("longer", pipeline.Reshape{
		Direction:   pipeline.Longer,
		Identifiers: cmd.identifiers,
		Measures:    cmd.measures,
		Category:    cmd.category,
		Value:       cmd.value,
		DropAbsent:  cmd.dropAbsent,
	})

	if err := job.Reshape.Validate(); err != nil {
		return err
	}

	return cmd.execute(ctx, job)
}
