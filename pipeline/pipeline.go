// Package pipeline wires a table source, the reshaper and a table sink together, either for
// a single ad hoc reshape or for a file of jobs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/twyst/sheets-reshape/local"
	"github.com/twyst/sheets-reshape/log"
	"github.com/twyst/sheets-reshape/sheets"
	"github.com/twyst/sheets-reshape/table"
)

// Source supplies a rectangular table read from a range in a spreadsheet or file.
type Source interface {
	Fetch(ctx context.Context, location, area string) (*table.Table, error)
}

// Sink writes a table to a named sheet, creating the destination and sheet if absent.
type Sink interface {
	Persist(ctx context.Context, destination, sheet string, t *table.Table) error
}

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrSinkUnavailable   = errors.New("sink unavailable")
)

// Router is a Source and Sink that dispatches on the location: Google Sheets URLs (and
// 'new:' destinations) go to the Google client, everything else to the local file store.
// The Google client is only created when first needed.
type Router struct {
	Google func(ctx context.Context) (*sheets.Client, error)
	Local  *local.Store

	guard  sync.Mutex
	client *sheets.Client
}

func (r *Router) Fetch(ctx context.Context, location, area string) (*table.Table, error) {
	source, err := r.source(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%w)", ErrSourceUnavailable, location, err)
	}

	t, err := source.Fetch(ctx, location, area)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%w)", ErrSourceUnavailable, location, err)
	}

	return t, nil
}

func (r *Router) Persist(ctx context.Context, destination, sheet string, t *table.Table) error {
	sink, err := r.sink(ctx, destination)
	if err != nil {
		return fmt.Errorf("%w: %s (%w)", ErrSinkUnavailable, destination, err)
	}

	if err := sink.Persist(ctx, destination, sheet, t); err != nil {
		return fmt.Errorf("%w: %s (%w)", ErrSinkUnavailable, destination, err)
	}

	return nil
}

func (r *Router) source(ctx context.Context, location string) (Source, error) {
	if sheets.IsURL(location) {
		return r.google(ctx)
	}

	if local.Supports(location) {
		return r.store(), nil
	}

	return nil, fmt.Errorf("unrecognised location")
}

func (r *Router) sink(ctx context.Context, destination string) (Sink, error) {
	if sheets.IsURL(destination) || sheets.IsNew(destination) {
		return r.google(ctx)
	}

	if local.Supports(destination) {
		return r.store(), nil
	}

	return nil, fmt.Errorf("unrecognised destination")
}

func (r *Router) google(ctx context.Context) (*sheets.Client, error) {
	r.guard.Lock()
	defer r.guard.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	if r.Google == nil {
		return nil, fmt.Errorf("Google Sheets access not configured")
	}

	log.Debugf("initialising Google Sheets client")

	client, err := r.Google(ctx)
	if err != nil {
		return nil, err
	}

	r.client = client

	return client, nil
}

func (r *Router) store() *local.Store {
	if r.Local == nil {
		return &local.Store{}
	}

	return r.Local
}
