// Package filter applies the dashboard's shared filter criteria to row
// collections.
//
// Filters never mutate their input and always return a new slice. Applying
// the same criteria twice yields the same result as applying them once.
package filter

import (
	"strings"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/normalize"
)

// All is the sentinel criterion value that disables a filter stage.
const All = "ALL"

// Kind selects which kind-specific criteria apply to a row collection.
type Kind int

const (
	KindExpense Kind = iota
	KindReceipt
)

func (k Kind) String() string {
	switch k {
	case KindExpense:
		return "expense"
	case KindReceipt:
		return "receipt"
	default:
		return "unknown"
	}
}

// Fielder is implemented by every filterable row.
type Fielder interface {
	// Field returns the value of a normalized field name.
	Field(name string) string
	// SearchText returns the lower-cased, space-joined field values.
	SearchText() string
}

// Criteria are the dashboard filter selections. Empty or All values disable
// their stage.
type Criteria struct {
	Project    string `json:"project"`
	Year       string `json:"year"`
	Month      string `json:"month"`
	Supplier   string `json:"supplier"`
	PaidBy     string `json:"paidBy"`
	ReceivedBy string `json:"receivedBy"`
	Search     string `json:"search"`
}

// AllCriteria returns criteria with every stage disabled.
func AllCriteria() Criteria {
	return Criteria{
		Project:    All,
		Year:       All,
		Month:      All,
		Supplier:   All,
		PaidBy:     All,
		ReceivedBy: All,
	}
}

// Stage keeps or drops a single row.
type Stage[T Fielder] func(T) bool

// Apply filters rows by project, year and month, then by the criteria of the
// given kind (supplier and payer for expenses, receiver for receipts), then by
// a case-insensitive search over all field values.
func Apply[T Fielder](c Criteria, rows []T, kind Kind) []T {
	stages := []Stage[T]{
		Equal[T](dataset.FieldProject, c.Project),
		Equal[T](dataset.FieldYear, c.Year),
		Equal[T](dataset.FieldMonth, c.Month),
	}

	switch kind {
	case KindExpense:
		stages = append(stages,
			Equal[T](dataset.FieldSupplier, c.Supplier),
			EqualAccount[T](dataset.FieldPaidBy, c.PaidBy),
		)
	case KindReceipt:
		stages = append(stages,
			EqualAccount[T](dataset.FieldReceivedBy, c.ReceivedBy),
		)
	}

	stages = append(stages, Search[T](c.Search))

	return Chain(rows, stages...)
}

// Chain runs rows through every non-nil stage in order.
func Chain[T Fielder](rows []T, stages ...Stage[T]) []T {
	out := make([]T, 0, len(rows))
next:
	for _, row := range rows {
		for _, keep := range stages {
			if keep != nil && !keep(row) {
				continue next
			}
		}
		out = append(out, row)
	}
	return out
}

// Disabled reports whether a criterion value turns its stage off.
func Disabled(value string) bool {
	return value == "" || value == All
}

// Equal keeps rows whose field equals want. It returns nil when want is
// disabled.
func Equal[T Fielder](field, want string) Stage[T] {
	if Disabled(want) {
		return nil
	}
	return func(row T) bool {
		return row.Field(field) == want
	}
}

// EqualAccount keeps rows whose field names the same account as want.
func EqualAccount[T Fielder](field, want string) Stage[T] {
	account := normalize.AccountName(want)
	if Disabled(want) || account == "All" {
		return nil
	}
	return func(row T) bool {
		return normalize.AccountName(row.Field(field)) == account
	}
}

// Search keeps rows whose search text contains the trimmed, lower-cased
// query.
func Search[T Fielder](query string) Stage[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return func(row T) bool {
		return strings.Contains(row.SearchText(), q)
	}
}
