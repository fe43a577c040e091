package fintrack

import (
	"encoding/json"
	"slices"
)

// RecentWindow is the number of transactions shown on the dashboard.
const RecentWindow = 5

// RecentTransaction is a transaction tagged with the name of the account or card it belongs to.
type RecentTransaction struct {
	Transaction
	Source string `json:"source"`
}

// Dashboard is the summary of the whole state.
type Dashboard struct {
	TotalBalance  Money
	TotalDebt     Money
	TotalInvested Money
	// Budget is the most recent budget, nil if there is none.
	Budget *Budget
	Recent []RecentTransaction
}

// NewDashboard computes the dashboard of s.
func NewDashboard(s State) Dashboard {
	d := Dashboard{
		TotalBalance:  TotalBalance(s.Accounts),
		TotalDebt:     TotalDebt(s.CreditCards),
		TotalInvested: TotalInvested(s.Investments),
		Recent:        RecentTransactions(s, RecentWindow),
	}
	if b, ok := MostRecentBudget(s.Budgets); ok {
		d.Budget = &b
	}
	return d
}

// BudgetAllocated is the total allocated in the dashboard budget.
func (d Dashboard) BudgetAllocated() Money {
	if d.Budget == nil {
		return Money{}
	}
	return d.Budget.Allocated()
}

// BudgetSpent is the total spent in the dashboard budget.
func (d Dashboard) BudgetSpent() Money {
	if d.Budget == nil {
		return Money{}
	}
	return d.Budget.Spent()
}

// dashboardBudget is the budget summary of the dashboard JSON.
type dashboardBudget struct {
	ID          string      `json:"id"`
	Period      string      `json:"period"`
	Allocated   Money       `json:"allocated"`
	Spent       Money       `json:"spent"`
	Utilization Utilization `json:"utilization"`
}

func (d Dashboard) MarshalJSON() ([]byte, error) {
	v := struct {
		TotalBalance  Money               `json:"totalBalance"`
		TotalDebt     Money               `json:"totalDebt"`
		TotalInvested Money               `json:"totalInvested"`
		Budget        *dashboardBudget    `json:"budget,omitempty"`
		Recent        []RecentTransaction `json:"recentTransactions"`
	}{
		TotalBalance:  d.TotalBalance,
		TotalDebt:     d.TotalDebt,
		TotalInvested: d.TotalInvested,
		Recent:        d.Recent,
	}
	if v.Recent == nil {
		v.Recent = []RecentTransaction{}
	}
	if b := d.Budget; b != nil {
		v.Budget = &dashboardBudget{
			ID:          b.ID,
			Period:      b.Period(),
			Allocated:   b.Allocated(),
			Spent:       b.Spent(),
			Utilization: b.Utilization(),
		}
	}
	return json.Marshal(v)
}

// MostRecentBudget returns the budget covering the latest (year, month).
func MostRecentBudget(budgets []Budget) (Budget, bool) {
	if len(budgets) == 0 {
		return Budget{}, false
	}
	latest := budgets[0]
	for _, b := range budgets[1:] {
		if b.After(latest) {
			latest = b
		}
	}
	return latest, true
}

// RecentTransactions merges the logs of every account and card, most recent
// first, and keeps at most n of them. Transactions on the same day keep the
// order accounts, credit cards, debit cards and then their log order.
func RecentTransactions(s State, n int) []RecentTransaction {
	all := []RecentTransaction{}
	for _, a := range s.Accounts {
		for _, tx := range a.Transactions {
			all = append(all, RecentTransaction{Transaction: tx, Source: a.Name})
		}
	}
	for _, c := range s.CreditCards {
		for _, tx := range c.Transactions {
			all = append(all, RecentTransaction{Transaction: tx, Source: c.Name})
		}
	}
	for _, c := range s.DebitCards {
		for _, tx := range c.Transactions {
			all = append(all, RecentTransaction{Transaction: tx, Source: c.Name})
		}
	}
	slices.SortStableFunc(all, func(a, b RecentTransaction) int { return b.Date.Compare(a.Date) })
	if len(all) > n {
		all = all[:n]
	}
	return all
}
