// Package renderer turns the financial state into markdown pages and PDF statements.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"text/template"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
)

//go:embed templates/*.md
var templates embed.FS

// Options holds configuration for rendering.
type Options struct {
	Currency string // Currency is the ISO code amounts are formatted in, fintrack.DefaultCurrency if empty.
}

func (o Options) currency() string {
	if o.Currency == "" {
		return fintrack.DefaultCurrency
	}
	return o.Currency
}

// RenderDashboard renders the dashboard summary.
func RenderDashboard(d fintrack.Dashboard, opts Options) string {
	partials := map[string]string{
		"dashboard_totals": "dashboard_totals.md",
		"dashboard_budget": "dashboard_budget.md",
		"dashboard_recent": "dashboard_recent.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, funcs(opts), d)
}

// RenderAccounts renders every account and card with its transactions.
func RenderAccounts(s fintrack.State, opts Options) string {
	partials := map[string]string{
		"transactions": "transactions.md",
	}
	f := funcs(opts)
	f["accountName"] = func(id string) string {
		if a, ok := s.Account(id); ok {
			return a.Name
		}
		return "unknown account " + id
	}
	return renderTemplate("accounts", "accounts.md", partials, f, s)
}

// RenderBudgets renders every budget, most recent first.
func RenderBudgets(budgets []fintrack.Budget, opts Options) string {
	sorted := slices.Clone(budgets)
	slices.SortStableFunc(sorted, func(a, b fintrack.Budget) int {
		switch {
		case a.After(b):
			return -1
		case b.After(a):
			return 1
		}
		return 0
	})
	return renderTemplate("budgets", "budgets.md", nil, funcs(opts), sorted)
}

// emisPage is the data of the installments page.
type emisPage struct {
	EMIs    []fintrack.Installment
	Monthly fintrack.Money
	Autopay int
}

// RenderEMIs renders the installment plans.
func RenderEMIs(emis []fintrack.Installment, opts Options) string {
	page := emisPage{
		EMIs:    emis,
		Monthly: fintrack.TotalMonthlyEMI(emis),
		Autopay: fintrack.AutopayCount(emis),
	}
	return renderTemplate("emis", "emis.md", nil, funcs(opts), page)
}

// expensesPage is the data of the expenses page.
type expensesPage struct {
	Total      fintrack.Money
	ByCategory []fintrack.CategoryTotal
	Recent     []fintrack.Expense
}

// RenderExpenses renders the expenses grouped by category then the most recent first.
func RenderExpenses(expenses []fintrack.Expense, opts Options) string {
	page := expensesPage{
		Total:      fintrack.TotalExpenses(expenses),
		ByCategory: fintrack.ExpensesByCategory(expenses),
		Recent:     fintrack.RecentExpenses(expenses),
	}
	return renderTemplate("expenses", "expenses.md", nil, funcs(opts), page)
}

// investmentsPage is the data of the investments page.
type investmentsPage struct {
	Today       date.Date
	Total       fintrack.Money
	Projected   fintrack.Money
	ByType      []fintrack.TypeTotal
	Investments []fintrack.Investment
}

// RenderInvestments renders the investments grouped by type, and each holding.
func RenderInvestments(investments []fintrack.Investment, today date.Date, opts Options) string {
	page := investmentsPage{
		Today:       today,
		Total:       fintrack.TotalInvested(investments),
		Projected:   fintrack.ProjectedAnnualReturn(investments),
		ByType:      fintrack.InvestmentsByType(investments),
		Investments: investments,
	}
	return renderTemplate("investments", "investments.md", nil, funcs(opts), page)
}

// funcs returns the template functions shared by every page.
func funcs(opts Options) template.FuncMap {
	cur := opts.currency()
	money := func(m fintrack.Money) string { return m.Format(cur) }
	return template.FuncMap{
		"money": money,
		"signed": func(m fintrack.Money) string {
			if m.IsPositive() {
				return "+" + money(m)
			}
			return money(m)
		},
		"over": func(u fintrack.Utilization) string {
			if !u.Over {
				return ""
			}
			return "+" + money(u.Delta)
		},
		"bar":      func(u fintrack.Utilization) string { return bar(u.Percent) },
		"progress": func(p fintrack.Percent) string { return bar(p.Int()) },
		"share": func(part, total fintrack.Money) fintrack.Percent {
			return fintrack.Percent(100 * part.Ratio(total))
		},
	}
}

// bar draws a ten cells progress bar followed by the percentage.
func bar(percent int) string {
	filled := min(max(percent, 0), 100) / 10
	return fmt.Sprintf("`%s%s` %d%%", strings.Repeat("█", filled), strings.Repeat("░", 10-filled), percent)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, funcs template.FuncMap, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
