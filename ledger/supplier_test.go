package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/insight/dataset"
)

func supplierSnapshot() *dataset.Snapshot {
	return dataset.NewSnapshot([]dataset.Row{
		expenseRow("01-Jan-2024", "Tower A", "ram kumar", "Steel Co", "Structure", "1000", "600", "400"),
		expenseRow("15-Jan-2024", "Tower B", "Sita", "Steel Co", "Plumbing", "200", "200", "0"),
		expenseRow("10-Jan-2024", "Tower A", "RAM KUMAR", "Steel Co", "Structure", "300", "0", "300"),
		expenseRow("12-Jan-2024", "Tower A", "Sita", "Cement Ltd", "Structure", "999", "999", "0"),
	}, nil, nil)
}

func TestSupplierRows(t *testing.T) {
	rows := SupplierRows("Steel Co", supplierSnapshot())
	assert.Equal(t, 3, len(rows))

	assert.Equal(t, 0, len(SupplierRows("steel co", supplierSnapshot())))
}

func TestComputeSupplier(t *testing.T) {
	rows := SupplierRows("Steel Co", supplierSnapshot())

	l := ComputeSupplier("Steel Co", rows, SupplierCriteria{})
	assert.Equal(t, 3, len(l.Rows))
	assert.Equal(t, "15-Jan-2024", l.Rows[0].DateText)
	assert.Equal(t, "10-Jan-2024", l.Rows[1].DateText)
	assert.Equal(t, "01-Jan-2024", l.Rows[2].DateText)
	assert.Equal(t, "1500", l.Totals.Purchase.String())
	assert.Equal(t, "800", l.Totals.Paid.String())
	assert.Equal(t, "700", l.Totals.Payables.String())
	assert.Equal(t, "Rows: 3", l.Info())

	// The input keeps feed order.
	assert.Equal(t, "01-Jan-2024", rows[0].DateText)
}

func TestComputeSupplierFilters(t *testing.T) {
	rows := SupplierRows("Steel Co", supplierSnapshot())

	tests := []struct {
		name     string
		criteria SupplierCriteria
		want     int
	}{
		{"project", SupplierCriteria{Project: "Tower A"}, 2},
		{"payer", SupplierCriteria{PaidBy: "ram  KUMAR"}, 2},
		{"work type", SupplierCriteria{WorkType: "Plumbing"}, 1},
		{"month", SupplierCriteria{Month: "February"}, 0},
		{"search", SupplierCriteria{Search: "sita"}, 1},
		{"all", SupplierCriteria{Project: "ALL", PaidBy: "ALL"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeSupplier("Steel Co", rows, tt.criteria)
			assert.Equal(t, tt.want, len(l.Rows))
		})
	}
}

func TestCollectSupplierOptions(t *testing.T) {
	opts := CollectSupplierOptions(SupplierRows("Steel Co", supplierSnapshot()))
	assert.Equal(t, []string{"Tower A", "Tower B"}, opts.Projects)
	assert.Equal(t, []string{"Ram Kumar", "Sita"}, opts.PaidBy)
	assert.Equal(t, []string{"Plumbing", "Structure"}, opts.WorkTypes)
}
