package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/renderer"
	"github.com/google/subcommands"
)

// reportCmd prints a markdown report of the state.
type reportCmd struct {
	name, synopsis string
	render         func(st fintrack.State, a *app, opts renderer.Options) string
}

func (c *reportCmd) Name() string     { return c.name }
func (c *reportCmd) Synopsis() string { return c.synopsis }
func (c *reportCmd) Usage() string {
	return "fin " + c.name + "\n\n  Shows the " + c.synopsis + ".\n"
}

func (*reportCmd) SetFlags(f *flag.FlagSet) {}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		printMarkdown(c.render(a.store.State(), a, a.renderOptions()))
		return nil
	})
}

var (
	dashboardCmd = reportCmd{
		name:     "dashboard",
		synopsis: "totals, current budget and recent transactions",
		render: func(st fintrack.State, _ *app, opts renderer.Options) string {
			return renderer.RenderDashboard(fintrack.NewDashboard(st), opts)
		},
	}
	accountsCmd = reportCmd{
		name:     "accounts",
		synopsis: "accounts and cards with their transactions",
		render: func(st fintrack.State, _ *app, opts renderer.Options) string {
			return renderer.RenderAccounts(st, opts)
		},
	}
	budgetsCmd = reportCmd{
		name:     "budgets",
		synopsis: "monthly budgets and their utilization",
		render: func(st fintrack.State, _ *app, opts renderer.Options) string {
			return renderer.RenderBudgets(st.Budgets, opts)
		},
	}
	emisCmd = reportCmd{
		name:     "emis",
		synopsis: "installment plans and their progress",
		render: func(st fintrack.State, _ *app, opts renderer.Options) string {
			return renderer.RenderEMIs(st.EMIs, opts)
		},
	}
	expensesCmd = reportCmd{
		name:     "expenses",
		synopsis: "expenses by category and the most recent ones",
		render: func(st fintrack.State, _ *app, opts renderer.Options) string {
			return renderer.RenderExpenses(st.Expenses, opts)
		},
	}
	investmentsCmd = reportCmd{
		name:     "investments",
		synopsis: "investments by type and projected returns",
		render: func(st fintrack.State, a *app, opts renderer.Options) string {
			return renderer.RenderInvestments(st.Investments, a.store.Today(), opts)
		},
	}
)
