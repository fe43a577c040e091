package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

type autopayCmd struct{}

func (*autopayCmd) Name() string     { return "autopay" }
func (*autopayCmd) Synopsis() string { return "switch automatic payment of an EMI on or off" }
func (*autopayCmd) Usage() string {
	return `fin autopay <emi-id>
`
}

func (*autopayCmd) SetFlags(f *flag.FlagSet) {}

func (*autopayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: autopay takes exactly one EMI id")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)
	return run(func(a *app) error {
		if !a.store.ToggleEMIAutopay(id) {
			return fmt.Errorf("EMI %q not found", id)
		}
		emi, _ := a.store.State().EMI(id)
		state := "off"
		if emi.AutopayEnabled {
			state = "on"
		}
		fmt.Printf("Autopay of %s is %s\n", emi.Name, state)
		return nil
	})
}

type setCategoryCmd struct {
	budget, category string
	name             *string
	allocated, spent *fintrack.Money
}

func (*setCategoryCmd) Name() string     { return "set-category" }
func (*setCategoryCmd) Synopsis() string { return "update a budget category" }
func (*setCategoryCmd) Usage() string {
	return `fin set-category -budget <id> -category <id> [-name <name>] [-allocated <amount>] [-spent <amount>]

  Only the given values change. Spending above the allocation is allowed.
`
}

func (c *setCategoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.budget, "budget", "", "Budget id.")
	f.StringVar(&c.category, "category", "", "Category id.")
	f.Func("name", "New category name.", func(s string) error {
		c.name = &s
		return nil
	})
	f.Func("allocated", "New allocated amount.", func(s string) (err error) {
		c.allocated, err = parseMoneyPtr(s)
		return err
	})
	f.Func("spent", "New spent amount.", func(s string) (err error) {
		c.spent, err = parseMoneyPtr(s)
		return err
	})
}

func parseMoneyPtr(s string) (*fintrack.Money, error) {
	m, err := fintrack.ParseMoney(s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *setCategoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		b, ok := a.store.State().Budget(c.budget)
		if !ok {
			return fmt.Errorf("budget %q not found", c.budget)
		}
		cat, ok := b.Category(c.category)
		if !ok {
			return fmt.Errorf("category %q not found in budget %s", c.category, b.Period())
		}
		if c.name != nil {
			cat.Name = *c.name
		}
		if c.allocated != nil {
			cat.Allocated = *c.allocated
		}
		if c.spent != nil {
			cat.Spent = *c.spent
		}
		found, err := a.store.UpdateBudgetCategory(c.budget, cat)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("category %q not found in budget %s", c.category, b.Period())
		}
		u := cat.Utilization()
		fmt.Printf("%s: %s of %s spent (%d%%)\n", cat.Name, cat.Spent.Format(a.cfg.Currency), cat.Allocated.Format(a.cfg.Currency), u.Percent)
		return nil
	})
}

type refreshCmd struct{}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "recompute remaining payments and next payment dates" }
func (*refreshCmd) Usage() string {
	return `fin refresh

  Recomputes the derived fields of every EMI for today and shows them.
  Opening the store already does it, so this mostly matters with a pinned today.
`
}

func (*refreshCmd) SetFlags(f *flag.FlagSet) {}

func (*refreshCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		a.logger.Info("installments refreshed", "changed", a.store.Refresh(), "today", a.store.Today())
		printMarkdown(renderer.RenderEMIs(a.store.State().EMIs, a.renderOptions()))
		return nil
	})
}
