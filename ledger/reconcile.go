package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/normalize"
)

// Tolerance is the largest difference a reconciliation check accepts.
var Tolerance = decimal.New(1, -2)

// AccountBalance is the movement summary of a single account.
type AccountBalance struct {
	Account     string          `json:"account"`
	Receipts    decimal.Decimal `json:"receipts"`
	ExpensePaid decimal.Decimal `json:"expensePaid"`
	ContraIn    decimal.Decimal `json:"contraIn"`
	ContraOut   decimal.Decimal `json:"contraOut"`
	Balance     decimal.Decimal `json:"balance"`
}

// Check compares an expected figure with one derived from account balances.
type Check struct {
	Name       string          `json:"name"`
	Expected   decimal.Decimal `json:"expected"`
	Actual     decimal.Decimal `json:"actual"`
	Difference decimal.Decimal `json:"difference"`
	Match      bool            `json:"match"`
}

func newCheck(name string, expected, actual decimal.Decimal) Check {
	diff := actual.Sub(expected)
	return Check{
		Name:       name,
		Expected:   expected,
		Actual:     actual,
		Difference: diff,
		Match:      diff.Abs().LessThan(Tolerance),
	}
}

// Reconciliation cross-checks the account balances against project totals.
type Reconciliation struct {
	Accounts []AccountBalance `json:"accounts"`

	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Paid     decimal.Decimal `json:"paid"`
	Payables decimal.Decimal `json:"payables"`

	// AccountCash is the sum of every account balance.
	AccountCash decimal.Decimal `json:"accountCash"`

	// Cash compares AccountCash with income minus paid expenses.
	Cash Check `json:"cash"`
	// Project compares AccountCash minus payables with income minus total
	// expenses.
	Project Check `json:"project"`
}

// Balanced reports whether both checks match.
func (r *Reconciliation) Balanced() bool {
	return r.Cash.Match && r.Project.Match
}

// Reconcile computes the balance of every account over the whole snapshot
// and checks the totals against the project figures. Contra transfers net to
// zero across accounts, so the sum of balances must equal the cash received
// minus the cash paid out. Movements without an account name belong to no
// account and surface as a difference.
func Reconcile(snap *dataset.Snapshot) *Reconciliation {
	r := &Reconciliation{}
	balances := make(map[string]*AccountBalance)

	account := func(name string) *AccountBalance {
		name = normalize.AccountName(name)
		b, ok := balances[name]
		if !ok {
			b = &AccountBalance{Account: name}
			balances[name] = b
		}
		return b
	}

	for _, e := range snap.Expenses {
		r.Expense = r.Expense.Add(e.TotalAmount)
		r.Paid = r.Paid.Add(e.PaidAmount)
		r.Payables = r.Payables.Add(e.Payables)

		b := account(e.PaidBy)
		b.ExpensePaid = b.ExpensePaid.Add(e.PaidAmount)
	}
	for _, rc := range snap.Receipts {
		r.Income = r.Income.Add(rc.Amount)

		b := account(rc.ReceivedBy)
		b.Receipts = b.Receipts.Add(rc.Amount)
	}
	for _, c := range snap.Contras {
		out := account(c.From)
		out.ContraOut = out.ContraOut.Add(c.Amount)

		in := account(c.To)
		in.ContraIn = in.ContraIn.Add(c.Amount)
	}

	for _, name := range sortedKeys(balances) {
		b := balances[name]
		b.Balance = b.Receipts.Add(b.ContraIn).Sub(b.ExpensePaid).Sub(b.ContraOut)
		r.AccountCash = r.AccountCash.Add(b.Balance)
		r.Accounts = append(r.Accounts, *b)
	}

	r.Cash = newCheck("cash", r.Income.Sub(r.Paid), r.AccountCash)
	r.Project = newCheck("project", r.Income.Sub(r.Expense), r.AccountCash.Sub(r.Payables))

	return r
}

// sortedKeys returns the account names in order. The blank name collects
// unattributed movements and is left out.
func sortedKeys(m map[string]*AccountBalance) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return dataset.SortedValues(keys, func(s string) string { return s })
}
