package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type statementCmd struct {
	kind   string
	to     string
	period string
	from   date.Date
	until  date.Date
	output string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "write a PDF statement of an account or a card" }
func (*statementCmd) Usage() string {
	return `fin statement [-kind account|credit-card|debit-card] -to <id> [-p <period> | -from <date> -until <date>] [-o <file.pdf>]

  Writes the transactions of the account or card in a PDF file. -p selects the
  day, week, month, quarter or year containing today.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", string(fintrack.TargetAccount), "Kind: account, credit-card or debit-card.")
	f.StringVar(&c.to, "to", "", "Id of the account or card.")
	f.StringVar(&c.period, "p", "", "Predefined period (day, week, month, quarter, year).")
	dateVar(f, &c.from, "from", "First day of the statement.")
	dateVar(f, &c.until, "until", "Last day of the statement.")
	f.StringVar(&c.output, "o", "statement.pdf", "Output file.")
}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := fintrack.ParseTargetKind(c.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return run(func(a *app) error {
		today := a.store.Today()
		st, err := renderer.NewStatement(a.store.State(), c.to, kind)
		if err != nil {
			return err
		}
		st.Generated = today
		st.Range = date.Range{From: c.from, To: c.until}
		if c.period != "" {
			p, err := date.ParsePeriod(c.period)
			if err != nil {
				return err
			}
			st.Range = date.NewRange(today, p)
		}

		out, err := os.Create(c.output)
		if err != nil {
			return err
		}
		if err := renderer.WriteStatementPDF(out, st, a.renderOptions()); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Printf("Statement of %s written to %s\n", st.Name, c.output)
		return nil
	})
}
