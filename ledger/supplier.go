package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/filter"
)

// SupplierRows returns the expenses booked against supplier, in feed order.
// Supplier names are compared exactly.
func SupplierRows(supplier string, snap *dataset.Snapshot) []*dataset.Expense {
	rows := make([]*dataset.Expense, 0)
	if snap == nil {
		return rows
	}
	for _, e := range snap.Expenses {
		if e.Supplier == supplier {
			rows = append(rows, e)
		}
	}
	return rows
}

// SupplierCriteria narrow a supplier ledger.
type SupplierCriteria struct {
	Project  string `json:"project"`
	Month    string `json:"month"`
	Year     string `json:"year"`
	PaidBy   string `json:"paidBy"`
	WorkType string `json:"workType"`
	Search   string `json:"search"`
}

// Apply returns the rows matching every enabled criterion.
func (c SupplierCriteria) Apply(rows []*dataset.Expense) []*dataset.Expense {
	return filter.Chain(rows,
		filter.Equal[*dataset.Expense](dataset.FieldProject, c.Project),
		filter.Equal[*dataset.Expense](dataset.FieldMonth, c.Month),
		filter.Equal[*dataset.Expense](dataset.FieldYear, c.Year),
		filter.EqualAccount[*dataset.Expense](dataset.FieldPaidBy, c.PaidBy),
		filter.Equal[*dataset.Expense](dataset.FieldWorkType, c.WorkType),
		filter.Search[*dataset.Expense](c.Search),
	)
}

// SupplierTotals are the aggregates of a filtered supplier ledger.
type SupplierTotals struct {
	Purchase decimal.Decimal `json:"purchase"`
	Paid     decimal.Decimal `json:"paid"`
	Payables decimal.Decimal `json:"payables"`
}

// SupplierLedger is a filtered supplier ledger, newest first.
type SupplierLedger struct {
	Supplier string             `json:"supplier"`
	Rows     []*dataset.Expense `json:"rows"`
	Totals   SupplierTotals     `json:"totals"`
}

// Info describes the number of rows in the ledger.
func (l *SupplierLedger) Info() string {
	return fmt.Sprintf("Rows: %d", len(l.Rows))
}

// ComputeSupplier filters a supplier's rows, orders them newest first and
// totals them.
func ComputeSupplier(supplier string, rows []*dataset.Expense, c SupplierCriteria) *SupplierLedger {
	matched := c.Apply(rows)
	slices.SortStableFunc(matched, func(a, b *dataset.Expense) int {
		return b.Date.Compare(a.Date)
	})

	l := &SupplierLedger{Supplier: supplier, Rows: matched}
	for _, e := range matched {
		l.Totals.Purchase = l.Totals.Purchase.Add(e.TotalAmount)
		l.Totals.Paid = l.Totals.Paid.Add(e.PaidAmount)
		l.Totals.Payables = l.Totals.Payables.Add(e.Payables)
	}
	return l
}

// SupplierOptions are the distinct values offered by the supplier ledger
// filter controls.
type SupplierOptions struct {
	Projects  []string `json:"projects"`
	Months    []string `json:"months"`
	Years     []string `json:"years"`
	PaidBy    []string `json:"paidBy"`
	WorkTypes []string `json:"workTypes"`
}

// CollectSupplierOptions gathers the filter values of a supplier's rows.
func CollectSupplierOptions(rows []*dataset.Expense) SupplierOptions {
	return SupplierOptions{
		Projects:  dataset.SortedValues(rows, func(e *dataset.Expense) string { return e.Project }),
		Months:    dataset.SortedValues(rows, func(e *dataset.Expense) string { return e.Month }),
		Years:     dataset.SortedValues(rows, func(e *dataset.Expense) string { return e.Year }),
		PaidBy:    dataset.SortedValues(rows, func(e *dataset.Expense) string { return e.PaidBy }),
		WorkTypes: dataset.SortedValues(rows, func(e *dataset.Expense) string { return e.WorkType }),
	}
}
