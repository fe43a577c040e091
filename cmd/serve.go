package cmd

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/fintrack/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	listen string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the store as a JSON API" }
func (*serveCmd) Usage() string {
	return `fin serve [-listen <addr>]

  Serves the API described in 'fin topic server' until interrupted.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.listen, "listen", "", "Address to listen on. Overrides the listen setting.")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		addr := a.cfg.Listen
		if c.listen != "" {
			addr = c.listen
		}
		srv := server.New(a.store, a.logger)
		if err := srv.ScheduleRefresh(a.cfg.RefreshSchedule); err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Start(ctx, addr)
	})
}
