package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/pipeline"
)

var RunCmd = Run{
	command: newCommand(),
	limit:   pipeline.DefaultLimit,
}

type Run struct {
	command
	jobs  string
	only  string
	limit int
}

func (cmd *Run) Name() string {
	return "run"
}

func (cmd *Run) Description() string {
	return "Runs the reshaping jobs in a jobs file"
}

func (cmd *Run) Usage() string {
	return "--jobs <file> [--job <names>] [--limit <N>]"
}

func (cmd *Run) Help() string {
	return strings.Join([]string{
		"Runs the jobs defined in a YAML jobs file. Jobs are independent and run concurrently, at most",
		"--limit at a time. The first job to fail cancels the others.",
		"",
		"  jobs:",
		"    - name: market-share",
		"      source:",
		"        location: https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		"        range: Wide!A1:H",
		"      reshape:",
		"        direction: longer",
		"        identifiers: Year,Month",
		"        category: Vendor",
		"        value: Share",
		"      sink:",
		"        location: market-share.xlsx",
		"        sheet: Long",
		"",
		"Examples:",
		`  sheets-reshape run --jobs jobs.yaml`,
		`  sheets-reshape run --jobs jobs.yaml --job market-share`,
	}, "\n")
}

func (cmd *Run) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("run")

	flagset.StringVar(&cmd.jobs, "jobs", cmd.jobs, "YAML jobs file")
	flagset.StringVar(&cmd.only, "job", cmd.only, "Comma separated list of the jobs to run. Defaults to all jobs")
	flagset.IntVar(&cmd.limit, "limit", cmd.limit, "Maximum number of jobs to run concurrently")

	return flagset
}

func (cmd *Run) Execute(ctx context.Context, options *Options) error {
	if strings.TrimSpace(cmd.jobs) == "" {
		return fmt.Errorf("--jobs is a required option")
	}

	if cmd.limit < 1 {
		return fmt.Errorf("invalid --limit (%d)", cmd.limit)
	}

	jobs, err := pipeline.LoadJobs(cmd.jobs)
	if err != nil {
		return err
	}

	jobs, err = selectJobs(jobs, cmd.only)
	if err != nil {
		return err
	}

	log.Infof("running %d jobs from %s", len(jobs), cmd.jobs)

	router := cmd.router()
	runner := pipeline.Runner{
		Source: router,
		Sink:   router,
		Limit:  cmd.limit,
	}

	return runner.RunAll(ctx, jobs)
}

func selectJobs(jobs []pipeline.Job, only string) ([]pipeline.Job, error) {
	if strings.TrimSpace(only) == "" {
		return jobs, nil
	}

	index := map[string]pipeline.Job{}
	for _, job := range jobs {
		index[job.Name] = job
	}

	selected := []pipeline.Job{}
	for _, name := range strings.Split(only, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		job, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("no job named '%s'", name)
		}

		selected = append(selected, job)
	}

	return selected, nil
}
