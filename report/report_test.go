package report

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/filter"
)

func expense(project, month, year, supplier, workType, paidBy, total, paid, payables string) *dataset.Expense {
	return dataset.NewExpense(dataset.Row{
		{Name: dataset.FieldProject, Value: project},
		{Name: dataset.FieldMonth, Value: month},
		{Name: dataset.FieldYear, Value: year},
		{Name: dataset.FieldSupplier, Value: supplier},
		{Name: dataset.FieldWorkType, Value: workType},
		{Name: dataset.FieldPaidBy, Value: paidBy},
		{Name: dataset.FieldTotalAmount, Value: total},
		{Name: dataset.FieldPaidAmount, Value: paid},
		{Name: dataset.FieldPayables, Value: payables},
	})
}

func receipt(project, month, year, amount string) *dataset.Receipt {
	return dataset.NewReceipt(dataset.Row{
		{Name: dataset.FieldProject, Value: project},
		{Name: dataset.FieldMonth, Value: month},
		{Name: dataset.FieldYear, Value: year},
		{Name: dataset.FieldAmount, Value: amount},
	})
}

func strs(values []decimal.Decimal) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.StringFixed(2)
	}
	return out
}

func TestSummarize(t *testing.T) {
	expenses := []*dataset.Expense{
		expense("P", "January", "2024", "S", "W", "A", "1,000", "400", "600"),
		expense("P", "January", "2024", "S", "W", "A", "₹ 500.50", "500.50", "0"),
	}
	receipts := []*dataset.Receipt{
		receipt("P", "January", "2024", "2000"),
	}

	totals := Summarize(expenses, receipts)
	assert.Equal(t, "1500.50", totals.Expense.StringFixed(2))
	assert.Equal(t, "900.50", totals.Paid.StringFixed(2))
	assert.Equal(t, "600.00", totals.Payables.StringFixed(2))
	assert.Equal(t, "2000.00", totals.Receipts.StringFixed(2))

	empty := Summarize(nil, nil)
	assert.True(t, empty.Expense.IsZero())
	assert.True(t, empty.Receipts.IsZero())
}

func TestSummarizeKeepsPublishedPayables(t *testing.T) {
	expenses := []*dataset.Expense{
		expense("P", "January", "2024", "S", "W", "A", "1000", "400", "100"),
	}
	assert.Equal(t, "100.00", Summarize(expenses, nil).Payables.StringFixed(2))
}

func TestNetProfitIgnoresPeriodFilters(t *testing.T) {
	expenses := []*dataset.Expense{
		expense("Tower A", "January", "2023", "S", "W", "A", "1000", "0", "0"),
		expense("Tower A", "March", "2024", "S", "W", "A", "500", "0", "0"),
		expense("Tower B", "March", "2024", "S", "W", "A", "9999", "0", "0"),
	}
	receipts := []*dataset.Receipt{
		receipt("Tower A", "February", "2023", "3000"),
		receipt("Tower B", "February", "2023", "100"),
	}

	// A month filter narrows the tables but not the profit.
	filtered := filter.Apply(filter.Criteria{Project: "Tower A", Month: "March"}, expenses, filter.KindExpense)
	assert.Equal(t, 1, len(filtered))

	p := NetProfit(expenses, receipts, "Tower A")
	assert.Equal(t, "3000.00", p.Income.StringFixed(2))
	assert.Equal(t, "1500.00", p.Expense.StringFixed(2))
	assert.Equal(t, "1500.00", p.Profit.StringFixed(2))
	assert.False(t, p.Negative())

	all := NetProfit(expenses, receipts, filter.All)
	assert.Equal(t, "3100.00", all.Income.StringFixed(2))
	assert.Equal(t, "11499.00", all.Expense.StringFixed(2))
	assert.True(t, all.Negative())
}

func TestMonthlyTrend(t *testing.T) {
	expenses := []*dataset.Expense{
		expense("P", "March", "2024", "S", "W", "A", "300", "0", "0"),
		expense("P", "January", "2024", "S", "W", "A", "100", "0", "0"),
		expense("P", "", "", "S", "W", "A", "7", "0", "0"),
		expense("P", "March", "2024", "S", "W", "A", "50", "0", "0"),
	}
	receipts := []*dataset.Receipt{
		receipt("P", "February", "2024", "20"),
		receipt("P", "January", "2024", "10"),
		receipt("P", "December", "2023", "5"),
	}

	trend := MonthlyTrend(expenses, receipts)
	assert.Equal(t, []string{"December 2023", "January 2024", "February 2024", "March 2024"}, trend.Labels)
	assert.Equal(t, []string{"0.00", "100.00", "0.00", "350.00"}, strs(trend.Expenses.Values))
	assert.Equal(t, []string{"5.00", "10.00", "20.00", "0.00"}, strs(trend.Receipts.Values))
	assert.Equal(t, trend.Labels, trend.Receipts.Labels)
}

func TestSupplierPayables(t *testing.T) {
	var expenses []*dataset.Expense
	for i := 0; i < 15; i++ {
		supplier := string(rune('A' + i))
		expenses = append(expenses, expense("P", "January", "2024", supplier, "W", "X", "0", "0", decimal.NewFromInt(int64(i)).String()))
	}
	expenses = append(expenses, expense("P", "January", "2024", "", "W", "X", "0", "0", "100"))

	s := SupplierPayables(expenses, SupplierLimit)
	assert.Equal(t, 12, s.Len())
	assert.Equal(t, Unknown, s.Labels[0])
	assert.Equal(t, "O", s.Labels[1])
	assert.Equal(t, "100.00", s.Values[0].StringFixed(2))
}

func TestWorkTypeTotalsIsStable(t *testing.T) {
	expenses := []*dataset.Expense{
		expense("P", "January", "2024", "S", "Plumbing", "A", "100", "0", "0"),
		expense("P", "January", "2024", "S", "", "A", "300", "0", "0"),
		expense("P", "January", "2024", "S", "Electrical", "A", "100", "0", "0"),
		expense("P", "January", "2024", "S", "Structure", "A", "100", "0", "0"),
	}

	s := WorkTypeTotals(expenses, WorkTypeLimit)
	assert.Equal(t, []string{Unknown, "Plumbing", "Electrical", "Structure"}, s.Labels)

	s = WorkTypeTotals(expenses, 2)
	assert.Equal(t, []string{Unknown, "Plumbing"}, s.Labels)
}

func TestPaidByTotalsMergesSpellings(t *testing.T) {
	expenses := []*dataset.Expense{
		expense("P", "January", "2024", "S", "W", "ram kumar", "0", "100", "0"),
		expense("P", "January", "2024", "S", "W", "RAM  KUMAR", "0", "50", "0"),
		expense("P", "January", "2024", "S", "W", "", "0", "10", "0"),
		expense("P", "January", "2024", "S", "W", "Sita", "0", "500", "0"),
	}

	s := PaidByTotals(expenses)
	assert.Equal(t, []string{"Sita", "Ram Kumar", Unknown}, s.Labels)
	assert.Equal(t, []string{"500.00", "150.00", "10.00"}, strs(s.Values))
}
