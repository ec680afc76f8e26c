package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/insight/output"
	"github.com/robinvdvleuten/insight/web"
)

type ServeCmd struct {
	Host     string `help:"Host to listen on." default:"127.0.0.1" env:"INSIGHT_HOST"`
	Port     int    `help:"Port to listen on." default:"8080" env:"INSIGHT_PORT"`
	Static   string `help:"Serve the frontend from this directory instead of the built-in page." type:"existingdir" env:"INSIGHT_STATIC"`
	Schedule string `help:"Cron schedule for refreshing the feeds, e.g. '*/15 * * * *'." env:"INSIGHT_SCHEDULE"`
	Watch    bool   `help:"Refresh when a local CSV feed changes." short:"w" env:"INSIGHT_WATCH"`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, report := globals.runContext(ctx)
	defer report()

	runCtx, stop := signal.NotifyContext(runCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := globals.Logger(ctx.Stderr)
	if err != nil {
		return err
	}

	ldr := globals.Loader()
	d := globals.Dashboard(ldr, logger)

	version := Version
	if version == "" {
		version = "dev"
	}

	opts := []web.Option{
		web.WithAddress(cmd.Host, cmd.Port),
		web.WithLogger(logger),
		web.WithVersion(version),
		web.WithStaticDir(cmd.Static),
		web.WithSchedule(cmd.Schedule),
	}
	if cmd.Watch {
		files := ldr.Files()
		if len(files) == 0 {
			styles := output.NewStyles(ctx.Stderr)
			_, _ = fmt.Fprintln(ctx.Stderr, styles.Warning("No local feed files to watch, --watch has no effect"))
		}
		opts = append(opts, web.WithWatch(files...))
	}

	server := web.New(d, opts...)

	printInfof(ctx.Stdout, "Starting server on %s:%d", cmd.Host, cmd.Port)
	for _, file := range server.WatchFiles {
		printInfof(ctx.Stdout, "Watching feed: %s", pathStyle.Render(file))
	}

	return server.Start(runCtx)
}
