package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/insight/dataset"
	"github.com/robinvdvleuten/insight/loader"
	"github.com/robinvdvleuten/insight/output"
)

type InspectCmd struct {
	Feed  string `help:"Feed to dump." arg:"" enum:"expenses,receipts,contras"`
	Limit int    `help:"Only dump the first N rows (0 dumps all)." short:"n" default:"0"`
}

// Run fetches a single feed and dumps its cleaned, non-empty rows.
func (cmd *InspectCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := globals.runContext(ctx)
	defer report()

	feed := loader.Feed(cmd.Feed)
	ldr := globals.Loader()

	raw, err := ldr.Fetch(runCtx, feed)
	if err != nil {
		printError(ctx.Stderr, renderError(err))
		return NewCommandError(1)
	}

	rows := dataset.RemoveEmptyRows(raw)
	if cmd.Limit > 0 && len(rows) > cmd.Limit {
		rows = rows[:cmd.Limit]
	}

	styles := output.NewStyles(ctx.Stderr)
	_, _ = fmt.Fprintf(ctx.Stderr, "%s %s: %d of %d rows\n",
		styles.Keyword(cmd.Feed), styles.Location(ldr.Source(feed).Location()), len(rows), len(raw))

	repr.New(ctx.Stdout, repr.Indent("  ")).Println(rows)
	return nil
}
