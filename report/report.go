// Package report aggregates filtered expense and receipt records into the
// dashboard's summary figures and chart series.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/filter"
)

// Totals are the headline figures over a filtered set.
type Totals struct {
	Expense  decimal.Decimal `json:"expense"`
	Paid     decimal.Decimal `json:"paid"`
	Payables decimal.Decimal `json:"payables"`
	Receipts decimal.Decimal `json:"receipts"`
}

// Summarize sums the filtered expenses and receipts.
func Summarize(expenses []*dataset.Expense, receipts []*dataset.Receipt) Totals {
	var t Totals
	for _, e := range expenses {
		t.Expense = t.Expense.Add(e.TotalAmount)
		t.Paid = t.Paid.Add(e.PaidAmount)
		t.Payables = t.Payables.Add(e.Payables)
	}
	for _, r := range receipts {
		t.Receipts = t.Receipts.Add(r.Amount)
	}
	return t
}

// Profit is the net result of a project.
type Profit struct {
	Project string          `json:"project"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

// Negative reports whether the project is running at a loss.
func (p Profit) Negative() bool {
	return p.Profit.IsNegative()
}

// NetProfit compares receipts with expense totals of a project over the
// whole history. Only the project criterion applies: year, month, payer and
// search selections are ignored. An empty or ALL project covers every row.
func NetProfit(expenses []*dataset.Expense, receipts []*dataset.Receipt, project string) Profit {
	p := Profit{Project: project}

	inProject := func(name string) bool {
		return filter.Disabled(project) || name == project
	}

	for _, r := range receipts {
		if inProject(r.Project) {
			p.Income = p.Income.Add(r.Amount)
		}
	}
	for _, e := range expenses {
		if inProject(e.Project) {
			p.Expense = p.Expense.Add(e.TotalAmount)
		}
	}

	p.Profit = p.Income.Sub(p.Expense)
	return p
}
