package dataset

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/insight/normalize"
)

// Expense is a row of the expense feed.
type Expense struct {
	Row Row `json:"-"`

	Date        time.Time       `json:"date"`
	DateText    string          `json:"dateText"`
	Project     string          `json:"project"`
	PaidBy      string          `json:"paidBy"`
	Supplier    string          `json:"supplier"`
	WorkType    string          `json:"workType"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	// Payables is taken as published. It is not required to equal
	// TotalAmount - PaidAmount.
	Payables decimal.Decimal `json:"payables"`
	Month    string          `json:"month"`
	Year     string          `json:"year"`
}

// NewExpense builds an Expense from a cleaned row. The payer is replaced by
// its account name in the returned record's row as well.
func NewExpense(row Row) *Expense {
	row = canonicalAccounts(row, FieldPaidBy)
	paidBy := row.Get(FieldPaidBy)

	return &Expense{
		Row:         row,
		Date:        normalize.ParseDate(row.Get(FieldDate)),
		DateText:    row.Get(FieldDate),
		Project:     row.Get(FieldProject),
		PaidBy:      paidBy,
		Supplier:    row.Get(FieldSupplier),
		WorkType:    row.Get(FieldWorkType),
		TotalAmount: normalize.Number(row.Get(FieldTotalAmount)),
		PaidAmount:  normalize.Number(row.Get(FieldPaidAmount)),
		Payables:    normalize.Number(row.Get(FieldPayables)),
		Month:       row.Get(FieldMonth),
		Year:        row.Get(FieldYear),
	}
}

// Field, SearchText, SortDate and SortAmount satisfy filter.Fielder and
// pager.Sortable. SortAmount is the total amount.
func (e *Expense) Field(name string) string    { return e.Row.Get(name) }
func (e *Expense) SearchText() string          { return e.Row.SearchText() }
func (e *Expense) SortDate() time.Time         { return e.Date }
func (e *Expense) SortAmount() decimal.Decimal { return e.TotalAmount }

// MonthLabel returns the "Month Year" bucket of the expense.
func (e *Expense) MonthLabel() string          { return monthLabel(e.Month, e.Year) }

// Receipt is a row of the receipt feed.
type Receipt struct {
	Row Row `json:"-"`

	Date       time.Time       `json:"date"`
	DateText   string          `json:"dateText"`
	Project    string          `json:"project"`
	Stage      string          `json:"stage"`
	ReceivedBy string          `json:"receivedBy"`
	Amount     decimal.Decimal `json:"amount"`
	Month      string          `json:"month"`
	Year       string          `json:"year"`
}

// NewReceipt builds a Receipt from a cleaned row.
func NewReceipt(row Row) *Receipt {
	row = canonicalAccounts(row, FieldReceivedBy)
	receivedBy := row.Get(FieldReceivedBy)

	return &Receipt{
		Row:        row,
		Date:       normalize.ParseDate(row.Get(FieldDate)),
		DateText:   row.Get(FieldDate),
		Project:    row.Get(FieldProject),
		Stage:      row.Get(FieldStage),
		ReceivedBy: receivedBy,
		Amount:     normalize.Number(row.Get(FieldAmount)),
		Month:      row.Get(FieldMonth),
		Year:       row.Get(FieldYear),
	}
}

// Field, SearchText, SortDate and SortAmount satisfy filter.Fielder and
// pager.Sortable. SortAmount is the receipt amount.
func (r *Receipt) Field(name string) string    { return r.Row.Get(name) }
func (r *Receipt) SearchText() string          { return r.Row.SearchText() }
func (r *Receipt) SortDate() time.Time         { return r.Date }
func (r *Receipt) SortAmount() decimal.Decimal { return r.Amount }

// MonthLabel returns the "Month Year" bucket of the receipt.
func (r *Receipt) MonthLabel() string          { return monthLabel(r.Month, r.Year) }

// Contra is a transfer between two accounts.
type Contra struct {
	Row Row `json:"-"`

	Date     time.Time       `json:"date"`
	DateText string          `json:"dateText"`
	Project  string          `json:"project"`
	From     string          `json:"from"`
	To       string          `json:"to"`
	Mode     string          `json:"mode"`
	Amount   decimal.Decimal `json:"amount"`
	Month    string          `json:"month"`
	Year     string          `json:"year"`
}

// NewContra builds a Contra from a cleaned row.
func NewContra(row Row) *Contra {
	row = canonicalAccounts(row, FieldFrom, FieldTo)
	from, to := row.Get(FieldFrom), row.Get(FieldTo)

	return &Contra{
		Row:      row,
		Date:     normalize.ParseDate(row.Get(FieldDate)),
		DateText: row.Get(FieldDate),
		Project:  row.Get(FieldProject),
		From:     from,
		To:       to,
		Mode:     row.Get(FieldMode),
		Amount:   normalize.Number(row.Get(FieldAmount)),
		Month:    row.Get(FieldMonth),
		Year:     row.Get(FieldYear),
	}
}

// Field and SearchText satisfy filter.Fielder.
func (c *Contra) Field(name string) string { return c.Row.Get(name) }
func (c *Contra) SearchText() string       { return c.Row.SearchText() }

func monthLabel(month, year string) string {
	return normalize.Text(month + " " + year)
}

// canonicalAccounts returns a copy of row whose account fields hold their
// account names. Fields missing from the row are not added.
func canonicalAccounts(row Row, fields ...string) Row {
	row = row.Clone()
	for i, f := range row {
		for _, name := range fields {
			if f.Name == name {
				row[i].Value = normalize.AccountName(f.Value)
			}
		}
	}
	return row
}
