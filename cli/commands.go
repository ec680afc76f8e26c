package cli

var (
	Version   = ""
	CommitSHA = ""
)

type Commands struct {
	Globals

	Serve     ServeCmd     `cmd:"" help:"Serve the dashboard over HTTP."`
	Summary   SummaryCmd   `cmd:"" help:"Print the dashboard summary for a project and period."`
	Ledger    LedgerCmd    `cmd:"" help:"Print the ledger of an account."`
	Reconcile ReconcileCmd `cmd:"" help:"Cross-check account balances against project totals."`
	Inspect   InspectCmd   `cmd:"" help:"Dump the cleaned rows of a feed."`
}
