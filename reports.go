package fintrack

import (
	"cmp"
	"slices"
)

// CategoryTotal is the amount spent in one expense category.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    Money  `json:"total"`
}

// ExpensesByCategory sums expenses per category, in ExpenseCategories order,
// leaving out categories with nothing spent.
func ExpensesByCategory(expenses []Expense) []CategoryTotal {
	totals := make(map[string]Money)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	var out []CategoryTotal
	for _, c := range ExpenseCategories {
		if t := totals[c]; t.IsPositive() {
			out = append(out, CategoryTotal{Category: c, Total: t})
		}
	}
	return out
}

// TotalExpenses sums every expense.
func TotalExpenses(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// RecentExpenses returns a copy of expenses sorted by date, most recent first.
func RecentExpenses(expenses []Expense) []Expense {
	out := slices.Clone(expenses)
	slices.SortStableFunc(out, func(a, b Expense) int { return b.Date.Compare(a.Date) })
	return out
}

// TypeTotal is the amount invested in one investment type.
type TypeTotal struct {
	Type  string `json:"type"`
	Total Money  `json:"total"`
}

// InvestmentsByType sums investments per type, InvestmentTypes first in their
// order, then any other type in order of appearance.
func InvestmentsByType(investments []Investment) []TypeTotal {
	var out []TypeTotal
	for _, i := range investments {
		k := slices.IndexFunc(out, func(t TypeTotal) bool { return t.Type == i.Type })
		if k < 0 {
			out = append(out, TypeTotal{Type: i.Type})
			k = len(out) - 1
		}
		out[k].Total = out[k].Total.Add(i.Amount)
	}
	rank := func(t string) int {
		if r := slices.Index(InvestmentTypes, t); r >= 0 {
			return r
		}
		return len(InvestmentTypes)
	}
	slices.SortStableFunc(out, func(a, b TypeTotal) int { return cmp.Compare(rank(a.Type), rank(b.Type)) })
	return out
}

// TotalInvested sums every investment amount.
func TotalInvested(investments []Investment) Money {
	var total Money
	for _, i := range investments {
		total = total.Add(i.Amount)
	}
	return total
}

// ProjectedAnnualReturn sums the expected one year gain of every investment.
func ProjectedAnnualReturn(investments []Investment) Money {
	var total Money
	for _, i := range investments {
		total = total.Add(i.ProjectedReturn())
	}
	return total
}

// TotalMonthlyEMI sums the monthly amount of every installment.
func TotalMonthlyEMI(emis []Installment) Money {
	var total Money
	for _, e := range emis {
		total = total.Add(e.Amount)
	}
	return total
}

// AutopayCount counts installments with autopay enabled.
func AutopayCount(emis []Installment) int {
	var n int
	for _, e := range emis {
		if e.AutopayEnabled {
			n++
		}
	}
	return n
}

// TotalBalance sums every account balance.
func TotalBalance(accounts []Account) Money {
	var total Money
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// TotalDebt sums every credit card balance.
func TotalDebt(cards []CreditCard) Money {
	var total Money
	for _, c := range cards {
		total = total.Add(c.Balance)
	}
	return total
}
