// Package dashboard keeps the derived views of the dashboard consistent with
// its filter state.
//
// A Dashboard owns the current snapshot, the filter and paging State and the
// open drill-down ledgers. Every command handler recomputes the affected
// views synchronously from the snapshot and returns a fresh view model, so
// a presentation layer never reads or mutates shared state directly.
//
// Example usage:
//
//	d := dashboard.New(loader.New(loader.WithLocations(e, r, c)))
//	if _, err := d.Refresh(ctx); err != nil {
//	    return err
//	}
//	view := d.OnFilterChanged(filter.Criteria{Project: "Tower A"})
//	fmt.Println(view.Summary.NetProfit)
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/filter"
	"github.com/robinvdvleuten/insight/ledger"
	"github.com/robinvdvleuten/insight/normalize"
	"github.com/robinvdvleuten/insight/telemetry"
)

var (
	// ErrRefreshInProgress is returned by Refresh while another refresh is
	// still loading.
	ErrRefreshInProgress = errors.New("refresh already in progress")
	// ErrNoLedgerOpen is returned by account ledger commands before an
	// account ledger has been opened.
	ErrNoLedgerOpen = errors.New("no account ledger open")
	// ErrNoSupplierLedgerOpen is returned by supplier ledger commands before
	// a supplier ledger has been opened.
	ErrNoSupplierLedgerOpen = errors.New("no supplier ledger open")
	// ErrUnknownChart is returned when a chart click names no known chart.
	ErrUnknownChart = errors.New("unknown chart")
	// ErrNoDrilldown is returned when a chart has no drill-down view.
	ErrNoDrilldown = errors.New("chart has no drill-down")
)

// ChartIndexError is returned when a chart click points past the chart's
// labels.
type ChartIndexError struct {
	Chart Chart
	Index int
	Len   int
}

func (e *ChartIndexError) Error() string {
	return fmt.Sprintf("chart %s has %d labels, index %d is out of range", e.Chart, e.Len, e.Index)
}

// Loader produces snapshots.
type Loader interface {
	Load(ctx context.Context) (*dataset.Snapshot, error)
}

// Config holds the presentation settings of a dashboard.
type Config struct {
	CurrencySymbol     string
	PageSize           int
	LedgerPageSize     int
	SupplierChartLimit int
	WorkTypeChartLimit int
}

// DefaultConfig returns the standard dashboard settings.
func DefaultConfig() Config {
	return Config{
		CurrencySymbol:     normalize.DefaultCurrencySymbol,
		PageSize:           20,
		LedgerPageSize:     ledger.PageSize,
		SupplierChartLimit: 12,
		WorkTypeChartLimit: 10,
	}
}

// withDefaults fills zero settings from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = def.CurrencySymbol
	}
	if c.PageSize <= 0 {
		c.PageSize = def.PageSize
	}
	if c.LedgerPageSize <= 0 {
		c.LedgerPageSize = def.LedgerPageSize
	}
	if c.SupplierChartLimit <= 0 {
		c.SupplierChartLimit = def.SupplierChartLimit
	}
	if c.WorkTypeChartLimit <= 0 {
		c.WorkTypeChartLimit = def.WorkTypeChartLimit
	}
	return c
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithConfig sets the presentation settings. Zero fields keep their
// defaults.
func WithConfig(cfg Config) Option {
	return func(d *Dashboard) {
		d.cfg = cfg.withDefaults()
	}
}

// WithLogger sets the logger refresh outcomes are reported to.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(d *Dashboard) {
		d.log = logger
	}
}

// WithSnapshot starts the dashboard from snap instead of an empty snapshot.
func WithSnapshot(snap *dataset.Snapshot) Option {
	return func(d *Dashboard) {
		d.snap = snap
	}
}

// Dashboard is the view orchestrator. It is safe for concurrent use.
type Dashboard struct {
	loader Loader
	cfg    Config
	log    logrus.FieldLogger
	money  normalize.Formatter

	refreshing atomic.Bool

	mu       sync.Mutex
	snap     *dataset.Snapshot
	state    State
	account  *accountSession
	supplier *supplierSession
}

// New creates a dashboard that refreshes from loader. The dashboard starts
// with an empty snapshot until the first successful Refresh.
func New(loader Loader, opts ...Option) *Dashboard {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	d := &Dashboard{
		loader: loader,
		cfg:    DefaultConfig(),
		log:    quiet,
		snap:   dataset.Empty(),
		state:  DefaultState(),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.money = normalize.NewFormatter(d.cfg.CurrencySymbol)
	return d
}

// Config returns the dashboard settings.
func (d *Dashboard) Config() Config {
	return d.cfg
}

// Snapshot returns the current snapshot. Snapshots are never mutated, so the
// caller may keep using it after a refresh replaced it.
func (d *Dashboard) Snapshot() *dataset.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

// State returns a copy of the current filter and paging state.
func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Refresh loads a new snapshot. The snapshot is swapped only when every feed
// loaded; on failure the previous snapshot and state are kept. A successful
// refresh resets the filter selections (the search text is kept), returns
// both tables to their first page and closes any open drill-down ledger.
func (d *Dashboard) Refresh(ctx context.Context) (*View, error) {
	if !d.refreshing.CompareAndSwap(false, true) {
		return nil, ErrRefreshInProgress
	}
	defer d.refreshing.Store(false)

	ctx, timer := telemetry.Start(ctx, "refresh")
	defer timer.End()

	start := time.Now()
	snap, err := d.loader.Load(ctx)
	if err != nil {
		d.log.WithError(err).Error("refresh failed, keeping previous snapshot")
		return nil, err
	}

	_, recompute := telemetry.Start(ctx, "recompute")
	defer recompute.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.snap = snap
	search := d.state.Criteria.Search
	d.state.Criteria = filter.AllCriteria()
	d.state.Criteria.Search = search
	d.state.ExpensePage = 1
	d.state.ReceiptPage = 1
	d.account = nil
	d.supplier = nil

	d.log.WithFields(logrus.Fields{
		"snapshot": snap.ID.String(),
		"expenses": len(snap.Expenses),
		"receipts": len(snap.Receipts),
		"contras":  len(snap.Contras),
		"duration": time.Since(start).String(),
	}).Info("refreshed snapshot")

	return d.view(), nil
}

// Refreshing reports whether a refresh is loading.
func (d *Dashboard) Refreshing() bool {
	return d.refreshing.Load()
}

// Accounts returns every account name of the current snapshot.
func (d *Dashboard) Accounts() []string {
	return ledger.Accounts(d.Snapshot())
}

// Reconcile cross-checks the account balances of the current snapshot.
func (d *Dashboard) Reconcile() *ledger.Reconciliation {
	return ledger.Reconcile(d.Snapshot())
}
