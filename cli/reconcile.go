package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/insight/ledger"
	"github.com/robinvdvleuten/insight/normalize"
	"github.com/robinvdvleuten/insight/output"
)

type ReconcileCmd struct{}

// Run prints every account balance and both reconciliation checks. It exits
// with status 1 when a check does not match.
func (cmd *ReconcileCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := globals.runContext(ctx)
	defer report()

	d, err := globals.load(runCtx, ctx)
	if err != nil {
		return err
	}

	r := d.Reconcile()
	money := normalize.NewFormatter(d.Config().CurrencySymbol)
	writeReconciliation(ctx.Stdout, r, money)

	if !r.Balanced() {
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "account balances do not reconcile")
		return NewCommandError(1)
	}
	_, _ = fmt.Fprintln(ctx.Stdout)
	printSuccess(ctx.Stdout, "Balances reconcile")
	return nil
}

func writeReconciliation(w io.Writer, r *ledger.Reconciliation, money normalize.Formatter) {
	styles := output.NewStyles(w)

	accounts := newTable("Account", "Receipts", "Expense Paid", "Contra In", "Contra Out", "Balance").
		alignRight(1, 2, 3, 4, 5)
	for _, a := range r.Accounts {
		accounts.add(a.Account,
			money.Money(a.Receipts),
			money.Money(a.ExpensePaid),
			money.Money(a.ContraIn),
			money.Money(a.ContraOut),
			money.Money(a.Balance),
		)
	}
	accounts.style = func(row, col int, cell string) string {
		switch col {
		case 0:
			return styles.Account(cell)
		case 5:
			return styles.Balance(cell, r.Accounts[row].Balance.IsNegative())
		}
		return cell
	}
	accounts.render(w)
	_, _ = fmt.Fprintln(w)

	checks := newTable("Check", "Expected", "Actual", "Difference", "").alignRight(1, 2, 3)
	for _, c := range []ledger.Check{r.Cash, r.Project} {
		status := "match"
		if !c.Match {
			status = "MISMATCH"
		}
		checks.add(c.Name, money.Money(c.Expected), money.Money(c.Actual), money.Money(c.Difference), status)
	}
	checks.style = func(row, col int, cell string) string {
		if col != 4 {
			return cell
		}
		if []ledger.Check{r.Cash, r.Project}[row].Match {
			return styles.Success(cell)
		}
		return styles.Error(cell)
	}
	checks.render(w)
}
