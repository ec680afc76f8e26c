package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/filter"
	"github.com/robinvdvleuten/insight/pager"
)

// PageSize is the number of entries on a ledger page.
const PageSize = 50

// Criteria narrow an account ledger. Empty or ALL values disable their
// stage.
type Criteria struct {
	Project  string `json:"project"`
	Supplier string `json:"supplier"`
	Month    string `json:"month"`
	Year     string `json:"year"`
	Kind     string `json:"kind"`
	Search   string `json:"search"`
}

// Apply returns the entries that match every enabled criterion.
func (c Criteria) Apply(entries []*Entry) []*Entry {
	return filter.Chain(entries,
		filter.Equal[*Entry](dataset.FieldProject, c.Project),
		filter.Equal[*Entry](dataset.FieldSupplier, c.Supplier),
		filter.Equal[*Entry](dataset.FieldMonth, c.Month),
		filter.Equal[*Entry](dataset.FieldYear, c.Year),
		filter.Equal[*Entry](FieldKind, c.Kind),
		filter.Search[*Entry](c.Search),
	)
}

// Compute filters the entries, orders them by date (stable, so entries on
// the same day keep their build order) and assigns running balances over the
// whole filtered set. The input entries are not modified.
func Compute(entries []*Entry, c Criteria) []*Entry {
	matched := c.Apply(entries)

	rows := make([]*Entry, len(matched))
	for i, e := range matched {
		entry := *e
		rows[i] = &entry
	}

	slices.SortStableFunc(rows, func(a, b *Entry) int {
		return a.Date.Compare(b.Date)
	})

	balance := decimal.Zero
	for _, e := range rows {
		balance = balance.Add(e.Change())
		e.RunningBalance = balance
	}

	return rows
}

// Totals are the aggregates of a filtered ledger.
type Totals struct {
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	Receipts    decimal.Decimal `json:"receipts"`
	ExpensePaid decimal.Decimal `json:"expensePaid"`
	ContraIn    decimal.Decimal `json:"contraIn"`
	ContraOut   decimal.Decimal `json:"contraOut"`
}

// Sum totals the entries by direction and by kind.
func Sum(entries []*Entry) Totals {
	var t Totals
	for _, e := range entries {
		t.Debit = t.Debit.Add(e.Debit)
		t.Credit = t.Credit.Add(e.Credit)

		switch e.Kind {
		case KindReceipt:
			t.Receipts = t.Receipts.Add(e.Debit)
		case KindExpense:
			t.ExpensePaid = t.ExpensePaid.Add(e.Credit)
		case KindContraIn:
			t.ContraIn = t.ContraIn.Add(e.Debit)
		case KindContraOut:
			t.ContraOut = t.ContraOut.Add(e.Credit)
		}
	}
	t.Balance = t.Debit.Sub(t.Credit)
	return t
}

// Page is one window of a computed ledger.
type Page struct {
	Entries []*Entry     `json:"entries"`
	Window  pager.Window `json:"window"`
	Size    int          `json:"size"`

	PageDebit  decimal.Decimal `json:"pageDebit"`
	PageCredit decimal.Decimal `json:"pageCredit"`
	PageChange decimal.Decimal `json:"pageChange"`

	// Totals cover every computed entry, not just this page.
	Totals Totals `json:"totals"`
}

// Paginate slices the requested page out of computed entries. The page is
// clamped into range and its entries keep the running balances assigned by
// Compute.
func Paginate(rows []*Entry, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}

	entries, w := pager.Paginate(rows, page, size)
	p := Page{
		Entries: entries,
		Window:  w,
		Size:    size,
		Totals:  Sum(rows),
	}

	for _, e := range entries {
		p.PageDebit = p.PageDebit.Add(e.Debit)
		p.PageCredit = p.PageCredit.Add(e.Credit)
	}
	p.PageChange = p.PageDebit.Sub(p.PageCredit)

	return p
}

// Info describes the rows and the current page of the ledger.
func (p Page) Info() string {
	return fmt.Sprintf("Rows: %d | Showing Page %d/%d (%d rows per page)",
		p.Window.TotalRows, p.Window.Page, p.Window.TotalPages, p.Size)
}

// PageInfo describes the current page.
func (p Page) PageInfo() string {
	return fmt.Sprintf("Page %d of %d (Rows: %d)", p.Window.Page, p.Window.TotalPages, p.Window.TotalRows)
}

// Options are the distinct values offered by the ledger filter controls.
type Options struct {
	Projects  []string `json:"projects"`
	Suppliers []string `json:"suppliers"`
	Months    []string `json:"months"`
	Years     []string `json:"years"`
	Kinds     []Kind   `json:"kinds"`
}

// CollectOptions gathers the filter values of a built, unfiltered ledger.
func CollectOptions(entries []*Entry) Options {
	return Options{
		Projects:  dataset.SortedValues(entries, func(e *Entry) string { return e.Project }),
		Suppliers: dataset.SortedValues(entries, func(e *Entry) string { return e.Supplier }),
		Months:    dataset.SortedValues(entries, func(e *Entry) string { return e.Month }),
		Years:     dataset.SortedValues(entries, func(e *Entry) string { return e.Year }),
		Kinds:     slices.Clone(Kinds),
	}
}
