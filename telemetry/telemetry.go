// Package telemetry records how long a refresh and its steps take.
//
// A Collector travels through the context. When none is installed every
// call is a no-op, so instrumented code never checks whether telemetry is
// enabled.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	ctx, timer := telemetry.Start(ctx, "refresh")
//	_, fetch := telemetry.Start(ctx, "fetch expenses")
//	fetch.End()
//	timer.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/insight/output"
)

type collectorKey struct{}

type timerKey struct{}

// Collector gathers timings.
type Collector interface {
	// Start begins a top-level timer.
	Start(name string) Timer

	// Report writes the collected timings. styles may be nil for plain
	// output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer measures one operation. Timers nest through Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector installs collector in ctx.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, collector)
}

// FromContext returns the collector installed in ctx, or a no-op collector.
func FromContext(ctx context.Context) Collector {
	if c, ok := ctx.Value(collectorKey{}).(Collector); ok {
		return c
	}
	return noOpCollector{}
}

// WithTimer makes timer the parent of timers started from the returned
// context.
func WithTimer(ctx context.Context, timer Timer) context.Context {
	return context.WithValue(ctx, timerKey{}, timer)
}

// TimerFromContext returns the innermost timer of ctx, if any.
func TimerFromContext(ctx context.Context) (Timer, bool) {
	t, ok := ctx.Value(timerKey{}).(Timer)
	return t, ok
}

// Start begins a timer nested under the innermost timer of ctx, or a
// top-level timer of the context's collector. The returned context carries
// the new timer.
func Start(ctx context.Context, name string) (context.Context, Timer) {
	var timer Timer
	if parent, ok := TimerFromContext(ctx); ok {
		timer = parent.Child(name)
	} else {
		timer = FromContext(ctx).Start(name)
	}
	return WithTimer(ctx, timer), timer
}
