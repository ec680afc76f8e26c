package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/glamour"

	"github.com/robinvdvleuten/insight/dashboard"
	"github.com/robinvdvleuten/insight/filter"
	"github.com/robinvdvleuten/insight/normalize"
)

type SummaryCmd struct {
	Project    string `help:"Project to summarize." default:"ALL"`
	Year       string `help:"Year to summarize." default:"ALL"`
	Month      string `help:"Month to summarize." default:"ALL"`
	Supplier   string `help:"Only count expenses for this supplier." default:"ALL"`
	PaidBy     string `help:"Only count expenses paid by this account." default:"ALL"`
	ReceivedBy string `help:"Only count receipts received by this account." default:"ALL"`
	Search     string `help:"Only count rows containing this text." short:"s"`

	Markdown bool `help:"Print the raw markdown instead of rendering it."`
	Width    int  `help:"Word wrap width of the rendered report." default:"100"`
}

func (cmd *SummaryCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := globals.runContext(ctx)
	defer report()

	d, err := globals.load(runCtx, ctx)
	if err != nil {
		return err
	}

	view := d.OnFilterChanged(filter.Criteria{
		Project:    cmd.Project,
		Year:       cmd.Year,
		Month:      cmd.Month,
		Supplier:   cmd.Supplier,
		PaidBy:     cmd.PaidBy,
		ReceivedBy: cmd.ReceivedBy,
		Search:     cmd.Search,
	})

	money := normalize.NewFormatter(d.Config().CurrencySymbol)
	md := summaryMarkdown(view, money)
	if cmd.Markdown {
		_, _ = io.WriteString(ctx.Stdout, md)
		return nil
	}

	style := glamour.WithStandardStyle("notty")
	if isTerminal() {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(cmd.Width))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	_, _ = io.WriteString(ctx.Stdout, out)
	return nil
}

// summaryMarkdown renders the headline figures and the chart series of a
// dashboard view as a markdown report.
func summaryMarkdown(v *dashboard.View, money normalize.Formatter) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Summary\n\n%s\n\n", v.Subtitle)

	s := v.Summary
	b.WriteString("| Figure | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Total Expense | %s |\n", s.TotalExpense)
	fmt.Fprintf(&b, "| Total Paid | %s |\n", s.TotalPaid)
	fmt.Fprintf(&b, "| Total Payables | %s |\n", s.TotalPayables)
	fmt.Fprintf(&b, "| Total Receipts | %s |\n", s.TotalReceipts)
	netProfit := s.NetProfit
	if s.ProfitNegative {
		netProfit = "**" + netProfit + "**"
	}
	fmt.Fprintf(&b, "| Net Profit | %s |\n\n", netProfit)
	fmt.Fprintf(&b, "_%s_\n", s.ProfitNote)

	trend := v.Charts.Trend
	if len(trend.Labels) > 0 {
		b.WriteString("\n## Monthly Trend\n\n| Month | Expense | Receipts |\n|---|---:|---:|\n")
		for i, label := range trend.Labels {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(label),
				money.Money(trend.Datasets[0].Amounts[i]),
				money.Money(trend.Datasets[1].Amounts[i]))
		}
	}

	writeSeries(&b, "Supplier Payables", "Supplier", v.Charts.SupplierPayables, money)
	writeSeries(&b, "Expense by Work Type", "Work Type", v.Charts.WorkTypes, money)
	writeSeries(&b, "Paid by Account", "Account", v.Charts.PaidBy, money)

	return b.String()
}

func writeSeries(b *strings.Builder, title, column string, c dashboard.ChartView, money normalize.Formatter) {
	if len(c.Labels) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n| %s | %s |\n|---|---:|\n", title, column, c.Datasets[0].Label)
	for i, label := range c.Labels {
		fmt.Fprintf(b, "| %s | %s |\n", cell(label), money.Money(c.Datasets[0].Amounts[i]))
	}
}

// cell escapes text for a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
