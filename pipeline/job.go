package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/twyst/sheets-reshape/table"
)

const (
	Longer = "longer"
	Wider  = "wider"
)

// Job describes a single fetch-reshape-persist run. Jobs files are YAML e.g.
//
//	jobs:
//	  - name: market-share
//	    source:
//	      location: https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms
//	      range: Wide!A1:H
//	    reshape:
//	      direction: longer
//	      identifiers: Year,Month
//	      category: Vendor
//	      value: Share
//	    sink:
//	      location: shares.xlsx
//	      sheet: Long
type Job struct {
	Name    string  `yaml:"name"`
	Source  Range   `yaml:"source"`
	Reshape Reshape `yaml:"reshape"`
	Sink    Target  `yaml:"sink"`
}

type Range struct {
	Location string `yaml:"location"`
	Range    string `yaml:"range"`
}

type Target struct {
	Location string `yaml:"location"`
	Sheet    string `yaml:"sheet"`
}

// Reshape is the reshaping half of a job. Identifiers and Measures are column selectors (see
// table.ParseSelector): 'longer' takes either one, 'wider' takes optional identifiers and
// otherwise groups by every column except the category and value columns.
type Reshape struct {
	Direction   string  `yaml:"direction"`
	Identifiers string  `yaml:"identifiers"`
	Measures    string  `yaml:"measures"`
	Category    string  `yaml:"category"`
	Value       string  `yaml:"value"`
	DropAbsent  bool    `yaml:"drop-absent"`
	Fill        *string `yaml:"fill"`
}

type jobs struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadJobs reads and validates a YAML jobs file.
func LoadJobs(file string) ([]Job, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return ParseJobs(f)
}

func ParseJobs(r io.Reader) ([]Job, error) {
	var list jobs

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&list); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid jobs file (%w)", err)
	}

	if len(list.Jobs) == 0 {
		return nil, fmt.Errorf("no jobs defined")
	}

	names := map[string]int{}
	for i := range list.Jobs {
		job := &list.Jobs[i]
		if job.Name == "" {
			job.Name = fmt.Sprintf("job-%d", i+1)
		}

		if j, ok := names[job.Name]; ok {
			return nil, fmt.Errorf("jobs %d and %d have the same name '%s'", j+1, i+1, job.Name)
		}

		names[job.Name] = i

		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", job.Name, err)
		}
	}

	return list.Jobs, nil
}

// Validate checks that a job is complete and that its selectors parse. Column names are only
// checked against the fetched table when the job runs.
func (j Job) Validate() error {
	if strings.TrimSpace(j.Source.Location) == "" {
		return fmt.Errorf("missing source location")
	}

	if strings.TrimSpace(j.Sink.Location) == "" {
		return fmt.Errorf("missing sink location")
	}

	return j.Reshape.Validate()
}

func (r Reshape) Validate() error {
	switch r.Direction {
	case Longer:
		if r.Identifiers == "" && r.Measures == "" {
			return fmt.Errorf("'longer' requires either identifiers or measures")
		}

		if r.Identifiers != "" && r.Measures != "" {
			return fmt.Errorf("'longer' takes identifiers or measures, not both")
		}

		if r.Fill != nil {
			return fmt.Errorf("'fill' only applies to 'wider'")
		}

	case Wider:
		if r.Measures != "" {
			return fmt.Errorf("'wider' does not take measures")
		}

		if r.DropAbsent {
			return fmt.Errorf("'drop-absent' only applies to 'longer'")
		}

	default:
		return fmt.Errorf("invalid direction '%s' (expected '%s' or '%s')", r.Direction, Longer, Wider)
	}

	for _, s := range []string{r.Identifiers, r.Measures} {
		if s != "" {
			if _, err := table.ParseSelector(s); err != nil {
				return err
			}
		}
	}

	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("missing category column name")
	}

	if strings.TrimSpace(r.Value) == "" {
		return fmt.Errorf("missing value column name")
	}

	return nil
}

// Apply reshapes a table. Selectors are resolved against the table's own columns.
func (r Reshape) Apply(t *table.Table) (*table.Table, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	columns := t.Columns()

	switch r.Direction {
	case Longer:
		var identifiers []string

		if r.Identifiers != "" {
			selected, err := selectColumns(r.Identifiers, columns)
			if err != nil {
				return nil, err
			}

			identifiers = selected
		} else {
			measures, err := selectColumns(r.Measures, columns)
			if err != nil {
				return nil, err
			}

			identifiers = table.Complement(columns, measures)
		}

		options := []table.Option{}
		if r.DropAbsent {
			options = append(options, table.DropAbsent())
		}

		return table.WideToLong(t, identifiers, r.Category, r.Value, options...)

	default:
		var identifiers []string

		if r.Identifiers != "" {
			selected, err := selectColumns(r.Identifiers, columns)
			if err != nil {
				return nil, err
			}

			identifiers = selected
		} else {
			identifiers = table.Complement(columns, []string{r.Category, r.Value})
		}

		options := []table.Option{}
		if r.Fill != nil {
			options = append(options, table.Fill(table.Parse(*r.Fill)))
		}

		return table.LongToWide(t, identifiers, r.Category, r.Value, options...)
	}
}

func selectColumns(selector string, columns []string) ([]string, error) {
	s, err := table.ParseSelector(selector)
	if err != nil {
		return nil, err
	}

	return s.Select(columns)
}
