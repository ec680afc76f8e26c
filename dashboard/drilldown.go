package dashboard

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/filter"
	"github.com/robinvdvleuten/insight/ledger"
	"github.com/robinvdvleuten/insight/normalize"
	"github.com/robinvdvleuten/insight/pager"
)

// Column headers of the drill-down tables.
var (
	LedgerColumns   = []string{"Date", "Type", "Project", "Supplier", "Description", "Debit", "Credit", "Balance"}
	SupplierColumns = []string{"Date", "Project", "Paid By", "Work Type", "Total", "Paid", "Payables"}
)

// accountSession is an open account ledger.
type accountSession struct {
	account  string
	entries  []*ledger.Entry
	criteria ledger.Criteria
	page     int
}

// supplierSession is an open supplier ledger.
type supplierSession struct {
	supplier string
	rows     []*dataset.Expense
	criteria ledger.SupplierCriteria
}

// LedgerRow is one rendered account ledger entry. Debit and Credit are
// empty when zero.
type LedgerRow struct {
	Date        string `json:"date"`
	Kind        string `json:"kind"`
	Project     string `json:"project"`
	Supplier    string `json:"supplier"`
	Description string `json:"description"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Balance     string `json:"balance"`
	Negative    bool   `json:"negative"`
}

// LedgerView is one page of an account ledger.
type LedgerView struct {
	Account  string          `json:"account"`
	Title    string          `json:"title"`
	Criteria ledger.Criteria `json:"criteria"`
	Columns  []string        `json:"columns"`
	Rows     []LedgerRow     `json:"rows"`
	Empty    string          `json:"empty,omitempty"`

	TotalDebit       string `json:"totalDebit"`
	TotalCredit      string `json:"totalCredit"`
	Balance          string `json:"balance"`
	TotalReceipts    string `json:"totalReceipts"`
	TotalExpensePaid string `json:"totalExpensePaid"`
	TotalContraIn    string `json:"totalContraIn"`
	TotalContraOut   string `json:"totalContraOut"`

	PageDebit  string `json:"pageDebit"`
	PageCredit string `json:"pageCredit"`
	PageChange string `json:"pageChange"`

	Info     string         `json:"info"`
	PageInfo string         `json:"pageInfo"`
	Page     pager.Window   `json:"page"`
	Options  ledger.Options `json:"options"`

	Totals ledger.Totals `json:"totals"`
}

// SupplierLedgerView is a filtered supplier ledger.
type SupplierLedgerView struct {
	Supplier string                  `json:"supplier"`
	Title    string                  `json:"title"`
	Criteria ledger.SupplierCriteria `json:"criteria"`
	Columns  []string                `json:"columns"`
	Rows     [][]string              `json:"rows"`
	Empty    string                  `json:"empty,omitempty"`

	TotalPurchase string `json:"totalPurchase"`
	TotalPaid     string `json:"totalPaid"`
	TotalPayables string `json:"totalPayables"`
	Info          string `json:"info"`

	Options ledger.SupplierOptions `json:"options"`
	Totals  ledger.SupplierTotals  `json:"totals"`
}

// WorkTypeView lists the filtered expenses of one work type.
type WorkTypeView struct {
	WorkType string     `json:"workType"`
	Title    string     `json:"title"`
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	Empty    string     `json:"empty,omitempty"`
	Info     string     `json:"info"`
}

// Drilldown is the view opened by a chart click. Exactly one of its views is
// set.
type Drilldown struct {
	Chart    Chart               `json:"chart"`
	Label    string              `json:"label"`
	Ledger   *LedgerView         `json:"ledger,omitempty"`
	Supplier *SupplierLedgerView `json:"supplier,omitempty"`
	WorkType *WorkTypeView       `json:"workType,omitempty"`
}

// OnChartClick resolves the clicked label of a chart against the current
// view and opens its drill-down: the supplier ledger for supplier payables,
// the work type details for work types and the account ledger for payers.
// The trend chart has no drill-down.
func (d *Dashboard) OnChartClick(chart Chart, index int) (*Drilldown, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	charts := d.view().Charts
	cv, ok := charts.Get(chart)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, chart)
	}
	if !cv.Drilldown {
		return nil, fmt.Errorf("%w: %s", ErrNoDrilldown, chart)
	}
	if index < 0 || index >= len(cv.Labels) {
		return nil, &ChartIndexError{Chart: chart, Index: index, Len: len(cv.Labels)}
	}

	label := cv.Labels[index]
	dd := &Drilldown{Chart: chart, Label: label}

	switch chart {
	case ChartSupplierPayables:
		dd.Supplier = d.openSupplierLedger(label)
	case ChartWorkTypes:
		dd.WorkType = d.workTypeDetails(label)
	case ChartPaidBy:
		dd.Ledger = d.openAccountLedger(label)
	}
	return dd, nil
}

// OpenAccountLedger opens the ledger of account with cleared filters on its
// first page.
func (d *Dashboard) OpenAccountLedger(account string) *LedgerView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.openAccountLedger(account)
}

func (d *Dashboard) openAccountLedger(account string) *LedgerView {
	d.account = &accountSession{
		account: normalize.AccountName(account),
		entries: ledger.Build(account, d.snap),
		page:    1,
	}
	return d.ledgerView()
}

// OnLedgerFilterChanged replaces the criteria of the open account ledger and
// returns it to its first page.
func (d *Dashboard) OnLedgerFilterChanged(c ledger.Criteria) (*LedgerView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.account == nil {
		return nil, ErrNoLedgerOpen
	}
	d.account.criteria = c
	d.account.page = 1
	return d.ledgerView(), nil
}

// OnLedgerPage moves the open account ledger to page n, clamped into range.
func (d *Dashboard) OnLedgerPage(n int) (*LedgerView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.account == nil {
		return nil, ErrNoLedgerOpen
	}
	d.account.page = n
	return d.ledgerView(), nil
}

// Ledger returns the open account ledger.
func (d *Dashboard) Ledger() (*LedgerView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.account == nil {
		return nil, ErrNoLedgerOpen
	}
	return d.ledgerView(), nil
}

func (d *Dashboard) ledgerView() *LedgerView {
	s := d.account
	rows := ledger.Compute(s.entries, s.criteria)
	page := ledger.Paginate(rows, s.page, d.cfg.LedgerPageSize)
	s.page = page.Window.Page

	v := &LedgerView{
		Account:  s.account,
		Title:    "Account Ledger: " + s.account,
		Criteria: s.criteria,
		Columns:  LedgerColumns,
		Rows:     make([]LedgerRow, 0, len(page.Entries)),

		TotalDebit:       d.money.Money(page.Totals.Debit),
		TotalCredit:      d.money.Money(page.Totals.Credit),
		Balance:          d.money.Money(page.Totals.Balance),
		TotalReceipts:    d.money.Money(page.Totals.Receipts),
		TotalExpensePaid: d.money.Money(page.Totals.ExpensePaid),
		TotalContraIn:    d.money.Money(page.Totals.ContraIn),
		TotalContraOut:   d.money.Money(page.Totals.ContraOut),

		PageDebit:  d.money.Money(page.PageDebit),
		PageCredit: d.money.Money(page.PageCredit),
		PageChange: d.money.Money(page.PageChange),

		Info:     page.Info(),
		PageInfo: page.PageInfo(),
		Page:     page.Window,
		Options:  ledger.CollectOptions(s.entries),
		Totals:   page.Totals,
	}

	for _, e := range page.Entries {
		v.Rows = append(v.Rows, LedgerRow{
			Date:        e.DateText,
			Kind:        string(e.Kind),
			Project:     e.Project,
			Supplier:    e.Supplier,
			Description: e.Description,
			Debit:       d.nonZero(e.Debit),
			Credit:      d.nonZero(e.Credit),
			Balance:     d.money.Money(e.RunningBalance),
			Negative:    e.RunningBalance.IsNegative(),
		})
	}
	if len(rows) == 0 {
		v.Empty = "No ledger data found"
	}
	return v
}

func (d *Dashboard) nonZero(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	return d.money.Money(amount)
}

// OpenSupplierLedger opens the ledger of supplier with cleared filters.
func (d *Dashboard) OpenSupplierLedger(supplier string) *SupplierLedgerView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.openSupplierLedger(supplier)
}

func (d *Dashboard) openSupplierLedger(supplier string) *SupplierLedgerView {
	d.supplier = &supplierSession{
		supplier: supplier,
		rows:     ledger.SupplierRows(supplier, d.snap),
	}
	return d.supplierView()
}

// OnSupplierFilterChanged replaces the criteria of the open supplier ledger.
func (d *Dashboard) OnSupplierFilterChanged(c ledger.SupplierCriteria) (*SupplierLedgerView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.supplier == nil {
		return nil, ErrNoSupplierLedgerOpen
	}
	d.supplier.criteria = c
	return d.supplierView(), nil
}

func (d *Dashboard) supplierView() *SupplierLedgerView {
	s := d.supplier
	l := ledger.ComputeSupplier(s.supplier, s.rows, s.criteria)

	v := &SupplierLedgerView{
		Supplier:      s.supplier,
		Title:         "Supplier Ledger: " + s.supplier,
		Criteria:      s.criteria,
		Columns:       SupplierColumns,
		Rows:          make([][]string, 0, len(l.Rows)),
		TotalPurchase: d.money.Money(l.Totals.Purchase),
		TotalPaid:     d.money.Money(l.Totals.Paid),
		TotalPayables: d.money.Money(l.Totals.Payables),
		Info:          l.Info(),
		Options:       ledger.CollectSupplierOptions(s.rows),
		Totals:        l.Totals,
	}
	for _, e := range l.Rows {
		v.Rows = append(v.Rows, []string{
			e.DateText,
			e.Project,
			e.PaidBy,
			e.WorkType,
			d.money.Money(e.TotalAmount),
			d.money.Money(e.PaidAmount),
			d.money.Money(e.Payables),
		})
	}
	if len(l.Rows) == 0 {
		v.Empty = "No supplier data found"
	}
	return v
}

// WorkTypeDetails lists the expenses of workType that match the main
// dashboard filters.
func (d *Dashboard) WorkTypeDetails(workType string) *WorkTypeView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.workTypeDetails(workType)
}

func (d *Dashboard) workTypeDetails(workType string) *WorkTypeView {
	expenses, _ := d.filtered()
	matched := filter.Chain[*dataset.Expense](expenses, func(e *dataset.Expense) bool {
		return e.WorkType == workType
	})

	v := &WorkTypeView{
		WorkType: workType,
		Title:    "Work Type Details: " + workType,
		Columns:  ExpenseColumns,
		Rows:     d.expenseRows(matched),
		Info:     fmt.Sprintf("Rows: %d", len(matched)),
	}
	if len(matched) == 0 {
		v.Empty = "No data found"
	}
	return v
}
