package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/normalize"
)

// Unknown labels rows whose grouping field is blank.
const Unknown = "Unknown"

// Default chart limits.
const (
	SupplierLimit = 12
	WorkTypeLimit = 10
)

// Series is one labelled data set of a chart. Labels and Values are
// parallel.
type Series struct {
	Label  string            `json:"label"`
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Labels)
}

// Trend is the monthly expense and receipt series. Both series share the
// same labels.
type Trend struct {
	Labels   []string `json:"labels"`
	Expenses Series   `json:"expenses"`
	Receipts Series   `json:"receipts"`
}

// MonthlyTrend groups expenses and receipts by "Month Year". Labels are
// ordered chronologically. Labels that compare equal keep the order in which
// they were first seen, expenses before receipts.
func MonthlyTrend(expenses []*dataset.Expense, receipts []*dataset.Receipt) Trend {
	exp := newGroups()
	rec := newGroups()
	labels := newGroups()

	for _, e := range expenses {
		key := e.MonthLabel()
		if key == "" {
			continue
		}
		exp.add(key, e.TotalAmount)
		labels.add(key, decimal.Zero)
	}
	for _, r := range receipts {
		key := r.MonthLabel()
		if key == "" {
			continue
		}
		rec.add(key, r.Amount)
		labels.add(key, decimal.Zero)
	}

	keys := append([]string{}, labels.keys...)
	slices.SortStableFunc(keys, func(a, b string) int {
		return normalize.MonthYearToDate(a).Compare(normalize.MonthYearToDate(b))
	})

	trend := Trend{
		Labels:   keys,
		Expenses: Series{Label: "Expense", Labels: keys, Values: make([]decimal.Decimal, len(keys))},
		Receipts: Series{Label: "Receipts", Labels: keys, Values: make([]decimal.Decimal, len(keys))},
	}
	for i, key := range keys {
		trend.Expenses.Values[i] = exp.get(key)
		trend.Receipts.Values[i] = rec.get(key)
	}
	return trend
}

// SupplierPayables sums payables per supplier, largest first, keeping at most
// limit suppliers. A non-positive limit keeps all of them.
func SupplierPayables(expenses []*dataset.Expense, limit int) Series {
	g := newGroups()
	for _, e := range expenses {
		g.add(orUnknown(e.Supplier), e.Payables)
	}
	return g.series("Payables", limit)
}

// WorkTypeTotals sums expense totals per work type, largest first, keeping at
// most limit work types.
func WorkTypeTotals(expenses []*dataset.Expense, limit int) Series {
	g := newGroups()
	for _, e := range expenses {
		g.add(orUnknown(e.WorkType), e.TotalAmount)
	}
	return g.series("Expense", limit)
}

// PaidByTotals sums paid amounts per paying account, largest first.
func PaidByTotals(expenses []*dataset.Expense) Series {
	g := newGroups()
	for _, e := range expenses {
		g.add(orUnknown(normalize.AccountName(e.PaidBy)), e.PaidAmount)
	}
	return g.series("Paid", 0)
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

// groups accumulates sums per key and remembers the order keys were first
// seen in.
type groups struct {
	keys []string
	sums map[string]decimal.Decimal
}

func newGroups() *groups {
	return &groups{sums: make(map[string]decimal.Decimal)}
}

func (g *groups) add(key string, amount decimal.Decimal) {
	sum, ok := g.sums[key]
	if !ok {
		g.keys = append(g.keys, key)
	}
	g.sums[key] = sum.Add(amount)
}

func (g *groups) get(key string) decimal.Decimal {
	return g.sums[key]
}

// series sorts the groups by sum, descending and stable, and truncates them
// to limit entries.
func (g *groups) series(label string, limit int) Series {
	keys := append([]string{}, g.keys...)
	slices.SortStableFunc(keys, func(a, b string) int {
		return g.sums[b].Cmp(g.sums[a])
	})
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	s := Series{
		Label:  label,
		Labels: keys,
		Values: make([]decimal.Decimal, len(keys)),
	}
	for i, key := range keys {
		s.Values[i] = g.sums[key]
	}
	return s
}
