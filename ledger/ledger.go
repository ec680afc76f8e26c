// Package ledger builds per-account and per-supplier ledgers from a dataset
// snapshot.
//
// An account ledger collects every movement of one account across the three
// feeds:
//   - receipts the account received are debits
//   - expense payments the account made are credits
//   - contra transfers out of the account are credits
//   - contra transfers into the account are debits
//
// Entries are kept in chronological order and carry a running balance, the
// cumulative sum of debit minus credit over the filtered set. Accounts are
// matched through normalize.AccountName, so two spellings that normalize to
// the same name are the same account.
//
// Example usage:
//
//	entries := ledger.Build("Ram Kumar", snapshot)
//	rows := ledger.Compute(entries, ledger.Criteria{Year: "2024"})
//	page := ledger.Paginate(rows, 1, ledger.PageSize)
//	fmt.Println(page.Totals.Balance)
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/normalize"
)

// Kind classifies a ledger entry by the feed and direction it came from.
type Kind string

const (
	KindReceipt   Kind = "Receipt"
	KindExpense   Kind = "Expense"
	KindContraIn  Kind = "Contra In"
	KindContraOut Kind = "Contra Out"
)

// Kinds lists every entry kind in the order the ledger filter offers them.
var Kinds = []Kind{KindReceipt, KindExpense, KindContraIn, KindContraOut}

// FieldKind is the filter field name of an entry's kind.
const FieldKind = "Kind"

// Entry is a single movement on an account.
type Entry struct {
	Date           time.Time       `json:"date"`
	DateText       string          `json:"dateText"`
	Kind           Kind            `json:"kind"`
	Project        string          `json:"project"`
	Supplier       string          `json:"supplier"`
	Month          string          `json:"month"`
	Year           string          `json:"year"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// Change returns the effect of the entry on the account balance.
func (e *Entry) Change() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// Field returns the value of a filterable entry field.
func (e *Entry) Field(name string) string {
	switch name {
	case dataset.FieldProject:
		return e.Project
	case dataset.FieldSupplier:
		return e.Supplier
	case dataset.FieldMonth:
		return e.Month
	case dataset.FieldYear:
		return e.Year
	case FieldKind:
		return string(e.Kind)
	}
	return ""
}

// SearchText returns the lower-cased text an entry is searched by.
func (e *Entry) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		e.DateText,
		string(e.Kind),
		e.Project,
		e.Supplier,
		e.Month,
		e.Year,
		e.Description,
		e.Debit.String(),
		e.Credit.String(),
	}, " "))
}

// Build collects the entries of account from the snapshot, in feed order:
// expenses, then receipts, then contras. A transfer from an account to
// itself yields both a Contra Out and a Contra In entry. An empty account
// name matches nothing.
func Build(account string, snap *dataset.Snapshot) []*Entry {
	account = normalize.AccountName(account)
	if account == "" || snap == nil {
		return []*Entry{}
	}

	entries := make([]*Entry, 0)

	for _, e := range snap.Expenses {
		if normalize.AccountName(e.PaidBy) != account {
			continue
		}
		entries = append(entries, &Entry{
			Date:        e.Date,
			DateText:    e.DateText,
			Kind:        KindExpense,
			Project:     e.Project,
			Supplier:    e.Supplier,
			Month:       e.Month,
			Year:        e.Year,
			Description: fmt.Sprintf("Paid to %s (%s)", e.Supplier, e.WorkType),
			Credit:      e.PaidAmount,
		})
	}

	for _, r := range snap.Receipts {
		if normalize.AccountName(r.ReceivedBy) != account {
			continue
		}
		entries = append(entries, &Entry{
			Date:        r.Date,
			DateText:    r.DateText,
			Kind:        KindReceipt,
			Project:     r.Project,
			Month:       r.Month,
			Year:        r.Year,
			Description: fmt.Sprintf("Received from Project (%s)", r.Stage),
			Debit:       r.Amount,
		})
	}

	for _, c := range snap.Contras {
		from := normalize.AccountName(c.From)
		to := normalize.AccountName(c.To)

		if from == account {
			entries = append(entries, &Entry{
				Date:        c.Date,
				DateText:    c.DateText,
				Kind:        KindContraOut,
				Project:     c.Project,
				Month:       c.Month,
				Year:        c.Year,
				Description: fmt.Sprintf("Transfer to %s (%s)", to, c.Mode),
				Credit:      c.Amount,
			})
		}
		if to == account {
			entries = append(entries, &Entry{
				Date:        c.Date,
				DateText:    c.DateText,
				Kind:        KindContraIn,
				Project:     c.Project,
				Month:       c.Month,
				Year:        c.Year,
				Description: fmt.Sprintf("Received from %s (%s)", from, c.Mode),
				Debit:       c.Amount,
			})
		}
	}

	return entries
}

// Accounts returns every distinct account name found in the payer, receiver
// and contra columns of the snapshot, sorted.
func Accounts(snap *dataset.Snapshot) []string {
	var names []string
	for _, e := range snap.Expenses {
		names = append(names, normalize.AccountName(e.PaidBy))
	}
	for _, r := range snap.Receipts {
		names = append(names, normalize.AccountName(r.ReceivedBy))
	}
	for _, c := range snap.Contras {
		names = append(names, normalize.AccountName(c.From), normalize.AccountName(c.To))
	}
	return dataset.SortedValues(names, func(s string) string { return s })
}
