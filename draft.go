package fintrack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/fintrack/date"
	"github.com/shopspring/decimal"
)

// Drafts hold form values while they are being edited. Numeric fields are
// decimal.NullDecimal so that an empty input means "no value yet" instead of 0.
// They only become entities, and zeros, on Commit.

// ParseAmountInput parses a numeric form input. An empty (or blank) input is a
// valid "no value yet" and returns an invalid NullDecimal.
func ParseAmountInput(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return decimal.NewNullDecimal(d), nil
}

func orZero(n decimal.NullDecimal) Money {
	if !n.Valid {
		return Money{}
	}
	return Money{value: n.Decimal}
}

// TransactionDraft is the transaction form, as posted to the server or given
// to fin tx. A zero Date is filled in by the caller.
type TransactionDraft struct {
	Date        date.Date           `json:"date"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Amount      decimal.NullDecimal `json:"amount"`
}

// Commit turns the draft into a validated Transaction. A missing amount commits
// as 0 and is therefore rejected.
func (d TransactionDraft) Commit() (Transaction, error) {
	tx := Transaction{
		Date:        d.Date,
		Description: strings.TrimSpace(d.Description),
		Category:    d.Category,
		Amount:      orZero(d.Amount),
	}
	return tx, tx.Validate()
}

// CategoryDraft is one category row of a budget form.
type CategoryDraft struct {
	ID        string
	Name      string
	Allocated decimal.NullDecimal
	Spent     decimal.NullDecimal
	Required  bool
}

// Commit turns the row into a BudgetCategory, empty numerics become 0.
func (d CategoryDraft) Commit() (BudgetCategory, error) {
	c := BudgetCategory{
		ID:        d.ID,
		Name:      strings.TrimSpace(d.Name),
		Allocated: orZero(d.Allocated),
		Spent:     orZero(d.Spent),
		Required:  d.Required,
	}
	return c, c.Validate()
}

// empty reports whether an optional row was left unfilled.
func (d CategoryDraft) empty() bool {
	if strings.TrimSpace(d.Name) == "" {
		return true
	}
	return !orZero(d.Allocated).IsPositive() && !orZero(d.Spent).IsPositive()
}

// BudgetDraft is the "new budget" form.
type BudgetDraft struct {
	Month      string
	Year       int
	Categories []CategoryDraft
}

// NewBudgetDraft returns a form with the mandatory rows followed by two optional ones.
func NewBudgetDraft(month string, year int) BudgetDraft {
	d := BudgetDraft{Month: month, Year: year}
	for i := range RequiredCategories + 2 {
		d.Categories = append(d.Categories, CategoryDraft{
			ID:       fmt.Sprint(i + 1),
			Required: i < RequiredCategories,
		})
	}
	return d
}

// Commit validates the mandatory rows, drops the unfilled optional ones and
// returns the Budget to add.
func (d BudgetDraft) Commit() (Budget, error) {
	b := Budget{Month: d.Month, Year: d.Year}
	var errs []error
	for _, row := range d.Categories {
		if !row.Required && row.empty() {
			continue
		}
		c, err := row.Commit()
		errs = append(errs, err)
		b.Categories = append(b.Categories, c)
	}
	errs = append(errs, b.Validate(), b.validateRequired())
	return b, errors.Join(errs...)
}
