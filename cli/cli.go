// Package cli implements the insight command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/robinvdvleuten/insight/dashboard"
	"github.com/robinvdvleuten/insight/loader"
	"github.com/robinvdvleuten/insight/normalize"
	"github.com/robinvdvleuten/insight/output"
	"github.com/robinvdvleuten/insight/telemetry"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"})
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`

	Expenses string        `help:"Expense feed URL or CSV file." env:"INSIGHT_EXPENSES" placeholder:"URL|PATH"`
	Receipts string        `help:"Receipt feed URL or CSV file." env:"INSIGHT_RECEIPTS" placeholder:"URL|PATH"`
	Contras  string        `help:"Contra feed URL or CSV file." env:"INSIGHT_CONTRAS" placeholder:"URL|PATH"`
	Timeout  time.Duration `help:"Timeout for a single feed download." default:"30s" env:"INSIGHT_TIMEOUT"`

	Currency       string `help:"Currency code or symbol amounts are shown in." default:"INR" env:"INSIGHT_CURRENCY"`
	PageSize       int    `help:"Rows per page of the expense and receipt tables." default:"20" env:"INSIGHT_PAGE_SIZE"`
	LedgerPageSize int    `help:"Rows per page of the account ledger." default:"50" env:"INSIGHT_LEDGER_PAGE_SIZE"`

	LogLevel  string `help:"Log level." enum:"debug,info,warn,error" default:"info" env:"INSIGHT_LOG_LEVEL"`
	LogFormat string `help:"Log format." enum:"text,json" default:"text" env:"INSIGHT_LOG_FORMAT"`
}

// Logger returns a logger writing to w in the configured level and format.
func (g *Globals) Logger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	if g.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

// Loader returns a loader for the configured feed locations.
func (g *Globals) Loader() *loader.Loader {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = loader.DefaultTimeout
	}
	return loader.New(
		loader.WithHTTPClient(&http.Client{Timeout: timeout}),
		loader.WithLocations(g.Expenses, g.Receipts, g.Contras),
	)
}

// Dashboard returns a dashboard over ldr with the configured settings.
func (g *Globals) Dashboard(ldr dashboard.Loader, logger logrus.FieldLogger) *dashboard.Dashboard {
	return dashboard.New(ldr,
		dashboard.WithLogger(logger),
		dashboard.WithConfig(dashboard.Config{
			CurrencySymbol: normalize.CurrencySymbol(g.Currency),
			PageSize:       g.PageSize,
			LedgerPageSize: g.LedgerPageSize,
		}),
	)
}

// runContext returns the context for a command and a function that prints
// the telemetry report once the command is done.
func (g *Globals) runContext(ctx *kong.Context) (context.Context, func()) {
	runCtx := context.Background()
	if !g.Telemetry {
		return runCtx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	runCtx = telemetry.WithCollector(runCtx, collector)

	return runCtx, func() {
		_, _ = fmt.Fprintln(ctx.Stderr)
		collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
	}
}

// load refreshes a dashboard from the configured feeds. Load errors are
// printed and turned into a CommandError.
func (g *Globals) load(runCtx context.Context, ctx *kong.Context) (*dashboard.Dashboard, error) {
	logger, err := g.Logger(ctx.Stderr)
	if err != nil {
		return nil, err
	}

	d := g.Dashboard(g.Loader(), logger)
	if _, err := d.Refresh(runCtx); err != nil {
		printError(ctx.Stderr, renderError(err))
		return nil, NewCommandError(1)
	}
	return d, nil
}

// promptAccount lets the user pick one of accounts.
// Returns "" without prompting if stdin is not a terminal.
func promptAccount(accounts []string) (string, error) {
	if !isTerminal() || len(accounts) == 0 {
		return "", nil
	}

	var account string

	form := huh.NewSelect[string]().
		Title("Account").
		Options(huh.NewOptions(accounts...)...).
		Value(&account)

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("failed to read account: %w", err)
	}
	return account, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
