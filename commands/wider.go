package commands

import (
	"context"
	"flag"
	"strings"

	"github.com/twyst/sheets-reshape/pipeline"
)

var WiderCmd = Wider{
	reshape: newReshape(),
}

type Wider struct {
	reshape
	fill *string
}

func (cmd *Wider) Name() string {
	return "wider"
}

func (cmd *Wider) Description() string {
	return "Reshapes a long table to wide form"
}

func (cmd *Wider) Usage() string {
	return "--from <location> --range <range> --category <column> --value <column> --to <location> --sheet <sheet>"
}

func (cmd *Wider) Help() string {
	return strings.Join([]string{
		"Reshapes a long table to wide form, with one row per distinct set of identifier values and one",
		"column per distinct category, in the order first seen. The identifiers default to every column",
		"other than the category and value columns. Missing combinations are left empty unless --fill",
		"is given. Duplicate (identifiers, category) pairs are an error.",
		"",
		"Examples:",
		`  sheets-reshape wider --from long.tsv --category Vendor --value Share --to market-share.xlsx --sheet Wide`,
		"",
		`  sheets-reshape wider --from data.db --range shares --id "Year,Month" --category Vendor --value Share --fill 0 --preview`,
	}, "\n")
}

func (cmd *Wider) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("wider")

	cmd.flags(flagset)
	flagset.Func("fill", "Value for missing (identifiers, category) combinations", func(s string) error {
		cmd.fill = &s
		return nil
	})

	return flagset
}

func (cmd *Wider) Execute(ctx context.Context, options *Options) error {
	if err := cmd.validate(); err != nil {
		return err
	}

	job := cmd.job("wider", pipeline.Reshape{
		Direction:   pipeline.Wider,
		Identifiers: cmd.identifiers,
		Category:    cmd.category,
		Value:       cmd.value,
		Fill:        cmd.fill,
	})

	if err := job.Reshape.Validate(); err != nil {
		return err
	}

	return cmd.execute(ctx, job)
}
