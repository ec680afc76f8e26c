package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/insight/dashboard"
	"github.com/robinvdvleuten/insight/ledger"
	"github.com/robinvdvleuten/insight/output"
)

type LedgerCmd struct {
	Account string `help:"Account to show. Prompts for one when omitted on a terminal." arg:"" optional:""`

	Project  string `help:"Only show entries of this project." default:"ALL"`
	Supplier string `help:"Only show entries for this supplier." default:"ALL"`
	Month    string `help:"Only show entries of this month." default:"ALL"`
	Year     string `help:"Only show entries of this year." default:"ALL"`
	Kind     string `help:"Only show entries of this kind." enum:"ALL,Receipt,Expense,Contra In,Contra Out" default:"ALL"`
	Search   string `help:"Only show entries containing this text." short:"s"`
	Page     int    `help:"Page to show." default:"1"`
}

func (cmd *LedgerCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := globals.runContext(ctx)
	defer report()

	d, err := globals.load(runCtx, ctx)
	if err != nil {
		return err
	}

	account := cmd.Account
	if account == "" {
		account, err = promptAccount(d.Accounts())
		if err != nil {
			return err
		}
	}
	if account == "" {
		printError(ctx.Stderr, "no account given")
		printInfof(ctx.Stderr, "Accounts: %s", strings.Join(d.Accounts(), ", "))
		return NewCommandError(2)
	}

	d.OpenAccountLedger(account)
	if _, err := d.OnLedgerFilterChanged(ledger.Criteria{
		Project:  cmd.Project,
		Supplier: cmd.Supplier,
		Month:    cmd.Month,
		Year:     cmd.Year,
		Kind:     cmd.Kind,
		Search:   cmd.Search,
	}); err != nil {
		return err
	}
	view, err := d.OnLedgerPage(cmd.Page)
	if err != nil {
		return err
	}

	writeLedger(ctx.Stdout, view)
	return nil
}

// writeLedger prints one page of an account ledger followed by its totals.
func writeLedger(w io.Writer, v *dashboard.LedgerView) {
	styles := output.NewStyles(w)

	_, _ = fmt.Fprintln(w, titleStyle.Render(v.Title))
	_, _ = fmt.Fprintln(w, styles.Dim(v.Info))
	_, _ = fmt.Fprintln(w)

	if v.Empty != "" {
		_, _ = fmt.Fprintln(w, v.Empty)
		return
	}

	t := newTable(v.Columns...).alignRight(5, 6, 7)
	for _, row := range v.Rows {
		t.add(row.Date, row.Kind, row.Project, row.Supplier, row.Description, row.Debit, row.Credit, row.Balance)
	}
	t.style = func(r, col int, cell string) string {
		switch col {
		case 1:
			return styles.Keyword(cell)
		case 5:
			return styles.Debit(cell)
		case 6:
			return styles.Credit(cell)
		case 7:
			return styles.Balance(cell, v.Rows[r].Negative)
		}
		return cell
	}
	t.render(w)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "%s  Debit %s  Credit %s  Change %s\n",
		styles.Dim(v.PageInfo), v.PageDebit, v.PageCredit, v.PageChange)
	_, _ = fmt.Fprintln(w)

	totals := newTable("Total", "Amount").alignRight(1)
	totals.add("Receipts", v.TotalReceipts)
	totals.add("Expense Paid", v.TotalExpensePaid)
	totals.add("Contra In", v.TotalContraIn)
	totals.add("Contra Out", v.TotalContraOut)
	totals.add("Debit", v.TotalDebit)
	totals.add("Credit", v.TotalCredit)
	totals.add("Balance", v.Balance)
	totals.render(w)
}
