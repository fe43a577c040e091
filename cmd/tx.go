package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

type txCmd struct {
	kind   string
	to     string
	amount string
	draft  fintrack.TransactionDraft
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "apply a transaction to an account or a card" }
func (*txCmd) Usage() string {
	return `fin tx [-kind account|credit-card|debit-card] -to <id> -amount <amount> -description <text> -category <category> [-date <date>]

  Income is positive and spending negative. On a credit card a positive amount is
  a charge and a negative one a payment. A debit card transaction also moves the
  balance of its linked account.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", string(fintrack.TargetAccount), "Target kind: account, credit-card or debit-card.")
	f.StringVar(&c.to, "to", "", "Id of the target account or card.")
	f.StringVar(&c.amount, "amount", "", "Signed amount.")
	f.StringVar(&c.draft.Description, "description", "", "Description.")
	f.StringVar(&c.draft.Category, "category", "", "Category, e.g. Income, Housing or Groceries.")
	dateVar(f, &c.draft.Date, "date", "Date of the transaction, today by default.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := fintrack.ParseTargetKind(c.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	if c.draft.Amount, err = fintrack.ParseAmountInput(c.amount); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return run(func(a *app) error {
		if c.draft.Date.IsZero() {
			c.draft.Date = a.store.Today()
		}
		tx, err := c.draft.Commit()
		if err != nil {
			return err
		}
		tx, err = a.store.ApplyTransaction(c.to, tx, kind)
		if err != nil {
			return err
		}
		fmt.Printf("Applied %s %s on %s (%s)\n", tx.Description, tx.Amount.Format(a.cfg.Currency), tx.Date, tx.ID)
		return nil
	})
}
