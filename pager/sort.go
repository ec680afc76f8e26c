package pager

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// SortKey selects an ordering of table rows.
type SortKey string

const (
	DateAsc    SortKey = "date_asc"
	DateDesc   SortKey = "date_desc"
	AmountAsc  SortKey = "amount_asc"
	AmountDesc SortKey = "amount_desc"
)

// Valid reports whether k is one of the known sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case DateAsc, DateDesc, AmountAsc, AmountDesc:
		return true
	}
	return false
}

// Sortable is implemented by rows that can be ordered by date and amount.
// Expenses sort by their total amount, receipts by their amount.
type Sortable interface {
	SortDate() time.Time
	SortAmount() decimal.Decimal
}

// Sort returns a stably sorted copy of rows. Unknown keys return an unchanged
// copy.
func Sort[T Sortable](rows []T, key SortKey) []T {
	sorted := slices.Clone(rows)
	if sorted == nil {
		sorted = []T{}
	}

	switch key {
	case DateAsc:
		slices.SortStableFunc(sorted, func(a, b T) int {
			return a.SortDate().Compare(b.SortDate())
		})
	case DateDesc:
		slices.SortStableFunc(sorted, func(a, b T) int {
			return b.SortDate().Compare(a.SortDate())
		})
	case AmountAsc:
		slices.SortStableFunc(sorted, func(a, b T) int {
			return a.SortAmount().Cmp(b.SortAmount())
		})
	case AmountDesc:
		slices.SortStableFunc(sorted, func(a, b T) int {
			return b.SortAmount().Cmp(a.SortAmount())
		})
	}

	return sorted
}
