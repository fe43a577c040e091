package fintrack

import "slices"

// State is a snapshot of every collection.
//
// A State handed out by the Store is a deep copy: modifying it never affects the Store.
type State struct {
	Accounts    []Account     `json:"accounts"`
	CreditCards []CreditCard  `json:"creditCards"`
	DebitCards  []DebitCard   `json:"debitCards"`
	Investments []Investment  `json:"investments"`
	Budgets     []Budget      `json:"budgets"`
	Expenses    []Expense     `json:"expenses"`
	EMIs        []Installment `json:"emis"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := State{
		Accounts:    slices.Clone(s.Accounts),
		CreditCards: slices.Clone(s.CreditCards),
		DebitCards:  slices.Clone(s.DebitCards),
		Investments: slices.Clone(s.Investments),
		Budgets:     slices.Clone(s.Budgets),
		Expenses:    slices.Clone(s.Expenses),
		EMIs:        slices.Clone(s.EMIs),
	}
	for i := range c.Accounts {
		c.Accounts[i].Transactions = slices.Clone(c.Accounts[i].Transactions)
	}
	for i := range c.CreditCards {
		c.CreditCards[i].Transactions = slices.Clone(c.CreditCards[i].Transactions)
	}
	for i := range c.DebitCards {
		c.DebitCards[i].Transactions = slices.Clone(c.DebitCards[i].Transactions)
	}
	for i := range c.Budgets {
		c.Budgets[i].Categories = slices.Clone(c.Budgets[i].Categories)
	}
	return c
}

// Account returns the account with the given id.
func (s State) Account(id string) (Account, bool) { return find(s.Accounts, id) }

// CreditCard returns the credit card with the given id.
func (s State) CreditCard(id string) (CreditCard, bool) { return find(s.CreditCards, id) }

// DebitCard returns the debit card with the given id.
func (s State) DebitCard(id string) (DebitCard, bool) { return find(s.DebitCards, id) }

// Investment returns the investment with the given id.
func (s State) Investment(id string) (Investment, bool) { return find(s.Investments, id) }

// Budget returns the budget with the given id.
func (s State) Budget(id string) (Budget, bool) { return find(s.Budgets, id) }

// Expense returns the expense with the given id.
func (s State) Expense(id string) (Expense, bool) { return find(s.Expenses, id) }

// EMI returns the installment with the given id.
func (s State) EMI(id string) (Installment, bool) { return find(s.EMIs, id) }

// identified is implemented by every entity.
type identified interface{ ident() string }

func indexOf[T identified](items []T, id string) int {
	return slices.IndexFunc(items, func(v T) bool { return v.ident() == id })
}

func find[T identified](items []T, id string) (T, bool) {
	i := indexOf(items, id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}

// replace swaps the item with the same id as v, it reports false if there was none.
func replace[T identified](items []T, v T) bool {
	i := indexOf(items, v.ident())
	if i < 0 {
		return false
	}
	items[i] = v
	return true
}
