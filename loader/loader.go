// Package loader fetches the expense, receipt and contra feeds and builds a
// dataset snapshot from them.
//
// A load is all-or-nothing: the three feeds are fetched concurrently and a
// snapshot is only returned when every one of them succeeded.
//
// Example usage:
//
//	l := loader.New(
//	    loader.WithLocations(expensesURL, receiptsURL, contrasURL),
//	    loader.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
//	)
//	snap, err := l.Load(ctx)
package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/telemetry"
)

// Feed names one of the three published tables.
type Feed string

const (
	FeedExpenses Feed = "expenses"
	FeedReceipts Feed = "receipts"
	FeedContras  Feed = "contras"
)

// Feeds lists the feeds in load order.
var Feeds = []Feed{FeedExpenses, FeedReceipts, FeedContras}

// DefaultTimeout bounds a single feed download.
const DefaultTimeout = 30 * time.Second

// ErrNoSource is wrapped in a FeedError when a feed has no configured
// location.
var ErrNoSource = errors.New("no source configured")

// FeedError reports which feed failed to load.
type FeedError struct {
	Feed     Feed
	Location string
	Err      error
}

func (e *FeedError) Error() string {
	if e.Location == "" {
		return fmt.Sprintf("loading %s: %v", e.Feed, e.Err)
	}
	return fmt.Sprintf("loading %s from %s: %v", e.Feed, e.Location, e.Err)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// Loader fetches the feeds.
//
// Configure it with functional options passed to New:
//
//	l := New(WithSource(FeedExpenses, src), WithLocations("", "r.csv", "c.csv"))
type Loader struct {
	client    *http.Client
	locations map[Feed]string
	sources   map[Feed]Source
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used by HTTP feeds.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithLocations sets the URL or path of each feed. Empty locations are
// ignored.
func WithLocations(expenses, receipts, contras string) Option {
	return func(l *Loader) {
		for feed, location := range map[Feed]string{
			FeedExpenses: expenses,
			FeedReceipts: receipts,
			FeedContras:  contras,
		} {
			if location != "" {
				l.locations[feed] = location
			}
		}
	}
}

// WithSource sets the source of a feed, taking precedence over its
// location.
func WithSource(feed Feed, src Source) Option {
	return func(l *Loader) {
		l.sources[feed] = src
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		client:    &http.Client{Timeout: DefaultTimeout},
		locations: make(map[Feed]string),
		sources:   make(map[Feed]Source),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Source returns the source of a feed, or nil when the feed has neither a
// source nor a location.
func (l *Loader) Source(feed Feed) Source {
	if src, ok := l.sources[feed]; ok {
		return src
	}
	if location, ok := l.locations[feed]; ok {
		return NewSource(location, l.client)
	}
	return nil
}

// Files returns the paths of the feeds read from disk.
func (l *Loader) Files() []string {
	var paths []string
	for _, feed := range Feeds {
		if src, ok := l.Source(feed).(*FileSource); ok {
			paths = append(paths, src.Path)
		}
	}
	return paths
}

// Fetch loads the raw rows of a single feed.
func (l *Loader) Fetch(ctx context.Context, feed Feed) ([]dataset.Row, error) {
	src := l.Source(feed)
	if src == nil {
		return nil, &FeedError{Feed: feed, Err: ErrNoSource}
	}

	_, timer := telemetry.Start(ctx, fmt.Sprintf("fetch %s", feed))
	defer timer.End()

	rows, err := src.Fetch(ctx)
	if err != nil {
		return nil, &FeedError{Feed: feed, Location: src.Location(), Err: err}
	}
	return rows, nil
}

// Load fetches all feeds concurrently and builds a snapshot. The first
// failure cancels the remaining fetches and is returned as a *FeedError.
func (l *Loader) Load(ctx context.Context) (*dataset.Snapshot, error) {
	ctx, timer := telemetry.Start(ctx, "load")
	defer timer.End()

	results := make([][]dataset.Row, len(Feeds))

	g, gctx := errgroup.WithContext(ctx)
	for i, feed := range Feeds {
		g.Go(func() error {
			rows, err := l.Fetch(gctx, feed)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	_, build := telemetry.Start(ctx, "build snapshot")
	defer build.End()

	return dataset.NewSnapshot(results[0], results[1], results[2]), nil
}
