package dashboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/filter"
	"github.com/robinvdvleuten/insight/pager"
	"github.com/robinvdvleuten/insight/report"
)

// Column headers of the dashboard tables.
var (
	ExpenseColumns = []string{"Date", "Project", "Paid By", "Supplier", "Work Type", "Total", "Paid", "Payables"}
	ReceiptColumns = []string{"Date", "Project", "Stage", "Received By", "Amount"}
)

// View is the complete main dashboard.
type View struct {
	SnapshotID string          `json:"snapshotId"`
	LoadedAt   time.Time       `json:"loadedAt"`
	Subtitle   string          `json:"subtitle"`
	State      State           `json:"state"`
	Summary    SummaryView     `json:"summary"`
	Expenses   TableView       `json:"expenses"`
	Receipts   TableView       `json:"receipts"`
	Charts     ChartsView      `json:"charts"`
	Options    dataset.Options `json:"options"`
}

// SummaryView holds the headline figures, formatted for display.
type SummaryView struct {
	TotalExpense   string `json:"totalExpense"`
	TotalPaid      string `json:"totalPaid"`
	TotalPayables  string `json:"totalPayables"`
	TotalReceipts  string `json:"totalReceipts"`
	NetProfit      string `json:"netProfit"`
	ProfitNote     string `json:"profitNote"`
	ProfitNegative bool   `json:"profitNegative"`

	Totals report.Totals `json:"totals"`
	Profit report.Profit `json:"profit"`
}

// TableView is one page of a dashboard table.
type TableView struct {
	Columns  []string      `json:"columns"`
	Rows     [][]string    `json:"rows"`
	Empty    string        `json:"empty,omitempty"`
	Sort     pager.SortKey `json:"sort"`
	Page     pager.Window  `json:"page"`
	PageInfo string        `json:"pageInfo"`
}

// Chart identifies a dashboard chart.
type Chart string

const (
	ChartTrend            Chart = "trend"
	ChartSupplierPayables Chart = "suppliers"
	ChartWorkTypes        Chart = "worktypes"
	ChartPaidBy           Chart = "paidby"
)

// Dataset is one numeric series of a chart. Values feed the chart library;
// Amounts are the same figures kept exact.
type Dataset struct {
	Label   string            `json:"label"`
	Values  []float64         `json:"values"`
	Amounts []decimal.Decimal `json:"amounts"`
}

// ChartView is the data of a single chart. Every dataset is parallel to
// Labels.
type ChartView struct {
	Chart     Chart     `json:"chart"`
	Type      string    `json:"type"`
	Labels    []string  `json:"labels"`
	Datasets  []Dataset `json:"datasets"`
	Drilldown bool      `json:"drilldown"`
}

// ChartsView holds the four dashboard charts.
type ChartsView struct {
	Trend            ChartView `json:"trend"`
	SupplierPayables ChartView `json:"supplierPayables"`
	WorkTypes        ChartView `json:"workTypes"`
	PaidBy           ChartView `json:"paidBy"`
}

// Get returns the chart named c.
func (v ChartsView) Get(c Chart) (ChartView, bool) {
	switch c {
	case ChartTrend:
		return v.Trend, true
	case ChartSupplierPayables:
		return v.SupplierPayables, true
	case ChartWorkTypes:
		return v.WorkTypes, true
	case ChartPaidBy:
		return v.PaidBy, true
	}
	return ChartView{}, false
}

// filtered applies the current criteria to the snapshot. Callers hold d.mu.
func (d *Dashboard) filtered() ([]*dataset.Expense, []*dataset.Receipt) {
	c := d.state.Criteria
	return filter.Apply(c, d.snap.Expenses, filter.KindExpense),
		filter.Apply(c, d.snap.Receipts, filter.KindReceipt)
}

// view builds the main dashboard. Callers hold d.mu.
func (d *Dashboard) view() *View {
	expenses, receipts := d.filtered()

	v := &View{
		LoadedAt: d.snap.LoadedAt,
		Subtitle: subtitle(d.state.Criteria),
		Summary:  d.summary(expenses, receipts),
		Expenses: d.expenseTable(expenses),
		Receipts: d.receiptTable(receipts),
		Charts:   d.charts(expenses, receipts),
		Options:  d.snap.Options(),
	}
	if d.snap.ID != uuid.Nil {
		v.SnapshotID = d.snap.ID.String()
	}
	// Table builders clamp the pages.
	v.State = d.state
	return v
}

func subtitle(c filter.Criteria) string {
	show := func(s string) string {
		if s == "" {
			return filter.All
		}
		return s
	}
	return fmt.Sprintf("Project: %s | %s | %s", show(c.Project), show(c.Month), show(c.Year))
}

func (d *Dashboard) summary(expenses []*dataset.Expense, receipts []*dataset.Receipt) SummaryView {
	totals := report.Summarize(expenses, receipts)
	profit := report.NetProfit(d.snap.Expenses, d.snap.Receipts, d.state.Criteria.Project)

	return SummaryView{
		TotalExpense:   d.money.Money(totals.Expense),
		TotalPaid:      d.money.Money(totals.Paid),
		TotalPayables:  d.money.Money(totals.Payables),
		TotalReceipts:  d.money.Money(totals.Receipts),
		NetProfit:      d.money.Money(profit.Profit),
		ProfitNote:     fmt.Sprintf("Project Income (%s) - Project Expense (%s)", d.money.Money(profit.Income), d.money.Money(profit.Expense)),
		ProfitNegative: profit.Negative(),
		Totals:         totals,
		Profit:         profit,
	}
}

func (d *Dashboard) expenseTable(expenses []*dataset.Expense) TableView {
	sorted := pager.Sort(expenses, d.state.ExpenseSort)
	rows, w := pager.Paginate(sorted, d.state.ExpensePage, d.cfg.PageSize)
	d.state.ExpensePage = w.Page

	t := TableView{
		Columns:  ExpenseColumns,
		Rows:     d.expenseRows(rows),
		Sort:     d.state.ExpenseSort,
		Page:     w,
		PageInfo: pageInfo(w),
	}
	if len(rows) == 0 {
		t.Empty = "No expense data"
	}
	return t
}

func (d *Dashboard) receiptTable(receipts []*dataset.Receipt) TableView {
	sorted := pager.Sort(receipts, d.state.ReceiptSort)
	rows, w := pager.Paginate(sorted, d.state.ReceiptPage, d.cfg.PageSize)
	d.state.ReceiptPage = w.Page

	t := TableView{
		Columns:  ReceiptColumns,
		Rows:     make([][]string, 0, len(rows)),
		Sort:     d.state.ReceiptSort,
		Page:     w,
		PageInfo: pageInfo(w),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.DateText,
			r.Project,
			r.Stage,
			r.ReceivedBy,
			d.money.Money(r.Amount),
		})
	}
	if len(rows) == 0 {
		t.Empty = "No receipts data"
	}
	return t
}

// expenseRows renders expenses with the ExpenseColumns layout.
func (d *Dashboard) expenseRows(expenses []*dataset.Expense) [][]string {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.DateText,
			e.Project,
			e.PaidBy,
			e.Supplier,
			e.WorkType,
			d.money.Money(e.TotalAmount),
			d.money.Money(e.PaidAmount),
			d.money.Money(e.Payables),
		})
	}
	return rows
}

func pageInfo(w pager.Window) string {
	return fmt.Sprintf("Page %d of %d (Rows: %d)", w.Page, w.TotalPages, w.TotalRows)
}

func (d *Dashboard) charts(expenses []*dataset.Expense, receipts []*dataset.Receipt) ChartsView {
	trend := report.MonthlyTrend(expenses, receipts)

	return ChartsView{
		Trend: ChartView{
			Chart:    ChartTrend,
			Type:     "line",
			Labels:   trend.Labels,
			Datasets: []Dataset{toDataset(trend.Expenses), toDataset(trend.Receipts)},
		},
		SupplierPayables: seriesChart(ChartSupplierPayables, "bar",
			report.SupplierPayables(expenses, d.cfg.SupplierChartLimit)),
		WorkTypes: seriesChart(ChartWorkTypes, "doughnut",
			report.WorkTypeTotals(expenses, d.cfg.WorkTypeChartLimit)),
		PaidBy: seriesChart(ChartPaidBy, "pie",
			report.PaidByTotals(expenses)),
	}
}

func seriesChart(c Chart, typ string, s report.Series) ChartView {
	return ChartView{
		Chart:     c,
		Type:      typ,
		Labels:    s.Labels,
		Datasets:  []Dataset{toDataset(s)},
		Drilldown: true,
	}
}

func toDataset(s report.Series) Dataset {
	return Dataset{Label: s.Label, Values: floats(s.Values), Amounts: s.Values}
}

func floats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}
