package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/sheets"
	"github.com/twyst/sheets-reshape/table"
)

// Runner executes jobs against a Source and Sink. Each job is strictly sequential (fetch,
// reshape, persist) but independent jobs may run concurrently, at most Limit at a time.
type Runner struct {
	Source Source
	Sink   Sink
	Limit  int
}

// DefaultLimit is the number of concurrent jobs used when Runner.Limit is not set.
const DefaultLimit = 4

// Run fetches, reshapes and persists a single job, returning the reshaped table.
func (r *Runner) Run(ctx context.Context, job Job) (*table.Table, error) {
	logger := log.With(job.Name)
	start := time.Now()

	if err := job.Validate(); err != nil {
		return nil, err
	}

	t, err := r.Reshape(ctx, job)
	if err != nil {
		return nil, err
	}

	if err := r.Sink.Persist(ctx, job.Sink.Location, job.Sink.Sheet, t); err != nil {
		return nil, err
	}

	logger.Infow("persisted",
		"destination", job.Sink.Location,
		"sheet", job.Sink.Sheet,
		"rows", t.Len(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return t, nil
}

// Reshape fetches and reshapes a job without persisting the result.
func (r *Runner) Reshape(ctx context.Context, job Job) (*table.Table, error) {
	logger := log.With(job.Name)

	if strings.TrimSpace(job.Source.Location) == "" {
		return nil, fmt.Errorf("missing source location")
	}

	if err := job.Reshape.Validate(); err != nil {
		return nil, err
	}

	src, err := r.Source.Fetch(ctx, job.Source.Location, job.Source.Range)
	if err != nil {
		return nil, err
	}

	logger.Debugw("fetched", "source", job.Source.Location, "range", job.Source.Range, "rows", src.Len(), "columns", src.Width())

	t, err := job.Reshape.Apply(src)
	if err != nil {
		return nil, fmt.Errorf("%s (%w)", job.Reshape.Direction, err)
	}

	logger.Debugw("reshaped", "direction", job.Reshape.Direction, "rows", t.Len(), "columns", t.Width())

	return t, nil
}

// RunAll runs a list of jobs concurrently. Jobs that write to the same destination run one
// after the other, in the order given. The first failure cancels the jobs still running and
// is returned.
func (r *Runner) RunAll(ctx context.Context, jobs []Job) error {
	g, ctx := errgroup.WithContext(ctx)

	if r.Limit > 0 {
		g.SetLimit(r.Limit)
	} else {
		g.SetLimit(DefaultLimit)
	}

	for _, group := range byDestination(jobs) {
		g.Go(func() error {
			for _, job := range group {
				if _, err := r.Run(ctx, job); err != nil {
					return fmt.Errorf("%s: %w", job.Name, err)
				}
			}

			return nil
		})
	}

	return g.Wait()
}

// byDestination groups jobs by sink, keeping the jobs file order within each group and
// the order of first appearance across groups.
func byDestination(jobs []Job) [][]Job {
	groups := [][]Job{}
	index := map[string]int{}

	for _, job := range jobs {
		key := destination(job.Sink.Location)
		if key == "" {
			groups = append(groups, []Job{job})
			continue
		}

		if ix, ok := index[key]; ok {
			groups[ix] = append(groups[ix], job)
		} else {
			index[key] = len(groups)
			groups = append(groups, []Job{job})
		}
	}

	return groups
}

// destination returns the key identifying a sink: the spreadsheet ID for a Google Sheets URL
// and the absolute path for a local file. Each 'new:' destination creates its own spreadsheet
// and so has no key.
func destination(location string) string {
	location = strings.TrimSpace(location)

	switch {
	case sheets.IsNew(location):
		return ""

	case sheets.IsURL(location):
		if id, err := sheets.ParseURL(location); err == nil {
			return id
		}

		return location

	default:
		if path, err := filepath.Abs(location); err == nil {
			return path
		}

		return filepath.Clean(location)
	}
}
