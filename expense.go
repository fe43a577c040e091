package fintrack

import (
	"errors"
	"slices"

	"github.com/etnz/fintrack/date"
)

// ExpenseCategories is the fixed set of expense categories, in display order.
var ExpenseCategories = []string{
	"Housing",
	"Food",
	"Transportation",
	"Entertainment",
	"Utilities",
	"Shopping",
	"Healthcare",
	"Education",
	"Personal",
	"Debt",
	"Savings",
	"Other",
}

// Expense is a spending recorded against a category, amounts are positive.
type Expense struct {
	ID       string    `json:"id"`
	Category string    `json:"category"`
	Amount   Money     `json:"amount"`
	Date     date.Date `json:"date"`
}

func (e Expense) ident() string { return e.ID }

// Validate checks the expense fields.
func (e Expense) Validate() error {
	var errs []error
	if !slices.Contains(ExpenseCategories, e.Category) {
		errs = append(errs, invalid("expense", "category", "%q is not one of %v", e.Category, ExpenseCategories))
	}
	if e.Amount.IsNegative() {
		errs = append(errs, invalid("expense", "amount", "cannot be negative"))
	}
	if e.Date.IsZero() {
		errs = append(errs, invalid("expense", "date", "is required"))
	}
	return errors.Join(errs...)
}
