// Package dataset holds the normalized rows of the three feeds and the typed
// expense, receipt and contra records built from them.
package dataset

import (
	"strings"

	"github.com/robinvdvleuten/insight/normalize"
)

// Field names after key normalization.
const (
	FieldDate        = "Date"
	FieldProject     = "Project"
	FieldPaidBy      = "Paid_By"
	FieldSupplier    = "Supplier"
	FieldWorkType    = "Work_Type"
	FieldTotalAmount = "Total_Amount"
	FieldPaidAmount  = "Paid_Amount"
	FieldPayables    = "Payables"
	FieldMonth       = "Month"
	FieldYear        = "Year"
	FieldStage       = "Stage"
	FieldReceivedBy  = "Received_By"
	FieldAmount      = "Amount"
	FieldFrom        = "From"
	FieldTo          = "To"
	FieldMode        = "Mode"
)

// Field is a single named cell of a row.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Row is an ordered set of fields. The order is the header order of the feed
// so that the joined search text of a row is deterministic.
type Row []Field

// Get returns the value of the named field, or "" when the row has no such
// field.
func (r Row) Get(name string) string {
	for _, f := range r {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Set replaces the value of the named field, appending it when missing.
func (r *Row) Set(name, value string) {
	for i := range *r {
		if (*r)[i].Name == name {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, Field{Name: name, Value: value})
}

// Values returns the field values in order.
func (r Row) Values() []string {
	values := make([]string, len(r))
	for i, f := range r {
		values[i] = f.Value
	}
	return values
}

// SearchText returns the lower-cased, space-joined values of the row.
func (r Row) SearchText() string {
	return strings.ToLower(strings.Join(r.Values(), " "))
}

// IsEmpty reports whether every value of the row is empty.
func (r Row) IsEmpty() bool {
	for _, f := range r {
		if f.Value != "" {
			return false
		}
	}
	return true
}

// Clone returns a copy of r that shares no storage with it.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return append(Row(nil), r...)
}

// CleanRow normalizes every key with normalize.Key and every value with
// normalize.Text. When two keys normalize to the same name, the later value
// wins and keeps the position of the first.
func CleanRow(raw Row) Row {
	cleaned := make(Row, 0, len(raw))
	for _, f := range raw {
		cleaned.Set(normalize.Key(f.Name), normalize.Text(f.Value))
	}
	return cleaned
}

// RemoveEmptyRows cleans every row and drops the ones whose values are all
// empty. Order is preserved.
func RemoveEmptyRows(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, raw := range rows {
		row := CleanRow(raw)
		if row.IsEmpty() {
			continue
		}
		out = append(out, row)
	}
	return out
}
