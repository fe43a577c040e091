package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
)

type addAccountCmd struct {
	account fintrack.Account
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "add a bank account" }
func (*addAccountCmd) Usage() string {
	return `fin add-account -name <name> [-balance <amount>]
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account.Name, "name", "", "Account name.")
	moneyVar(f, &c.account.Balance, "balance", "Opening balance.")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		added, err := a.store.AddAccount(c.account)
		if err != nil {
			return err
		}
		fmt.Printf("Added account %s (%s)\n", added.Name, added.ID)
		return nil
	})
}

type addCreditCardCmd struct {
	card fintrack.CreditCard
}

func (*addCreditCardCmd) Name() string     { return "add-credit-card" }
func (*addCreditCardCmd) Synopsis() string { return "add a credit card" }
func (*addCreditCardCmd) Usage() string {
	return `fin add-credit-card -name <name> -number <number> -expiry MM/YY -limit <amount> [-cvv <cvv>] [-balance <amount>]

  Only the last four digits of the number are stored. The limit cannot exceed 200000.
`
}

func (c *addCreditCardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card.Name, "name", "", "Card name.")
	f.StringVar(&c.card.Number, "number", "", "Card number.")
	f.StringVar(&c.card.Expiry, "expiry", "", "Expiry date as MM/YY.")
	f.StringVar(&c.card.CVV, "cvv", "", "Card verification value.")
	moneyVar(f, &c.card.Limit, "limit", "Credit limit.")
	moneyVar(f, &c.card.Balance, "balance", "Amount currently owed.")
}

func (c *addCreditCardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		added, err := a.store.AddCreditCard(c.card)
		if err != nil {
			return err
		}
		fmt.Printf("Added credit card %s %s (%s)\n", added.Name, added.Number, added.ID)
		return nil
	})
}

type addDebitCardCmd struct {
	card fintrack.DebitCard
}

func (*addDebitCardCmd) Name() string     { return "add-debit-card" }
func (*addDebitCardCmd) Synopsis() string { return "add a debit card linked to an account" }
func (*addDebitCardCmd) Usage() string {
	return `fin add-debit-card -name <name> -number <number> -account <account-id> [-expiry MM/YY] [-cvv <cvv>]
`
}

func (c *addDebitCardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.card.Name, "name", "", "Card name.")
	f.StringVar(&c.card.Number, "number", "", "Card number.")
	f.StringVar(&c.card.Expiry, "expiry", "", "Expiry date as MM/YY.")
	f.StringVar(&c.card.CVV, "cvv", "", "Card verification value.")
	f.StringVar(&c.card.LinkedAccountID, "account", "", "Id of the account the card draws from.")
}

func (c *addDebitCardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		added, err := a.store.AddDebitCard(c.card)
		if err != nil {
			return err
		}
		fmt.Printf("Added debit card %s %s (%s)\n", added.Name, added.Number, added.ID)
		return nil
	})
}

type addInvestmentCmd struct {
	investment fintrack.Investment
}

func (*addInvestmentCmd) Name() string     { return "add-investment" }
func (*addInvestmentCmd) Synopsis() string { return "add an investment" }
func (*addInvestmentCmd) Usage() string {
	return `fin add-investment -name <name> -type <type> -amount <amount> [-rate <percent>] [-start <date>]
`
}

func (c *addInvestmentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.investment.Name, "name", "", "Investment name.")
	f.StringVar(&c.investment.Type, "type", "", "Investment type: "+strings.Join(fintrack.InvestmentTypes, ", ")+".")
	moneyVar(f, &c.investment.Amount, "amount", "Amount invested.")
	f.Float64Var((*float64)(&c.investment.AnnualReturnRate), "rate", 0, "Expected annual return in percent.")
	dateVar(f, &c.investment.StartDate, "start", "Start date, today by default.")
}

func (c *addInvestmentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		if c.investment.StartDate.IsZero() {
			c.investment.StartDate = a.store.Today()
		}
		added, err := a.store.AddInvestment(c.investment)
		if err != nil {
			return err
		}
		fmt.Printf("Added investment %s (%s)\n", added.Name, added.ID)
		return nil
	})
}

type addBudgetCmd struct {
	month      string
	year       int
	categories []string
}

func (*addBudgetCmd) Name() string     { return "add-budget" }
func (*addBudgetCmd) Synopsis() string { return "add a monthly budget" }
func (*addBudgetCmd) Usage() string {
	return `fin add-budget [-month <month>] [-year <year>] -category <name>=<allocated>[:<spent>] ...

  The first three categories are required. Up to two more can be given.
  Month and year default to the current ones.
`
}

func (c *addBudgetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "Month name, e.g. June.")
	f.IntVar(&c.year, "year", 0, "Year.")
	f.Func("category", "Category as name=allocated[:spent], repeat for each category.", func(s string) error {
		c.categories = append(c.categories, s)
		return nil
	})
}

func (c *addBudgetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		today := a.store.Today()
		if c.month == "" {
			c.month = fintrack.Months[today.Month()-1]
		}
		if c.year == 0 {
			c.year = today.Year()
		}
		draft, err := budgetDraft(c.month, c.year, c.categories)
		if err != nil {
			return err
		}
		b, err := draft.Commit()
		if err != nil {
			return err
		}
		added, err := a.store.AddBudget(b)
		if err != nil {
			return err
		}
		fmt.Printf("Added budget %s (%s)\n", added.Period(), added.ID)
		return nil
	})
}

// budgetDraft fills the rows of a new budget form with name=allocated[:spent] values.
func budgetDraft(month string, year int, categories []string) (fintrack.BudgetDraft, error) {
	draft := fintrack.NewBudgetDraft(month, year)
	if len(categories) > len(draft.Categories) {
		return draft, fmt.Errorf("at most %d categories, got %d", len(draft.Categories), len(categories))
	}
	for i, s := range categories {
		name, amounts, ok := strings.Cut(s, "=")
		if !ok {
			return draft, fmt.Errorf("invalid category %q want name=allocated[:spent]", s)
		}
		allocated, spent, _ := strings.Cut(amounts, ":")
		row := &draft.Categories[i]
		row.Name = name
		var err error
		if row.Allocated, err = fintrack.ParseAmountInput(allocated); err != nil {
			return draft, err
		}
		if row.Spent, err = fintrack.ParseAmountInput(spent); err != nil {
			return draft, err
		}
	}
	return draft, nil
}

type addExpenseCmd struct {
	expense fintrack.Expense
}

func (*addExpenseCmd) Name() string     { return "add-expense" }
func (*addExpenseCmd) Synopsis() string { return "record an expense" }
func (*addExpenseCmd) Usage() string {
	return `fin add-expense -category <category> -amount <amount> [-date <date>]
`
}

func (c *addExpenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.expense.Category, "category", "", "Category: "+strings.Join(fintrack.ExpenseCategories, ", ")+".")
	moneyVar(f, &c.expense.Amount, "amount", "Amount spent.")
	dateVar(f, &c.expense.Date, "date", "Date of the expense, today by default.")
}

func (c *addExpenseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		if c.expense.Date.IsZero() {
			c.expense.Date = a.store.Today()
		}
		added, err := a.store.AddExpense(c.expense)
		if err != nil {
			return err
		}
		fmt.Printf("Added expense %s %s (%s)\n", added.Category, added.Amount.Format(a.cfg.Currency), added.ID)
		return nil
	})
}

type addEMICmd struct {
	emi fintrack.Installment
}

func (*addEMICmd) Name() string     { return "add-emi" }
func (*addEMICmd) Synopsis() string { return "add an installment plan" }
func (*addEMICmd) Usage() string {
	return `fin add-emi -name <name> -amount <amount> -start <date> -end <date> -payments <n> [-autopay]

  Remaining payments and the next payment date are computed from the dates.
`
}

func (c *addEMICmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.emi.Name, "name", "", "Loan name.")
	moneyVar(f, &c.emi.Amount, "amount", "Monthly installment.")
	dateVar(f, &c.emi.StartDate, "start", "First payment date.")
	dateVar(f, &c.emi.EndDate, "end", "Last payment date.")
	f.IntVar(&c.emi.TotalPayments, "payments", 0, "Total number of payments.")
	f.BoolVar(&c.emi.AutopayEnabled, "autopay", false, "Pay automatically.")
}

func (c *addEMICmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(func(a *app) error {
		added, err := a.store.AddEMI(c.emi)
		if err != nil {
			return err
		}
		fmt.Printf("Added EMI %s (%s), %d payments remaining, next on %s\n",
			added.Name, added.ID, added.RemainingPayments, added.NextPaymentDate)
		return nil
	})
}
