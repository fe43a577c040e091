package fintrack

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Months are the month names a Budget is keyed by.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// RequiredCategories is the number of leading categories a new Budget must fill in.
const RequiredCategories = 3

// Budget is a spending plan for one (month, year).
type Budget struct {
	ID         string           `json:"id"`
	Month      string           `json:"month"`
	Year       int              `json:"year"`
	Categories []BudgetCategory `json:"categories"`
}

// BudgetCategory is a named allocation inside a Budget.
// Spent above Allocated is a valid over-budget state.
type BudgetCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Allocated Money  `json:"allocated"`
	Spent     Money  `json:"spent"`
	Required  bool   `json:"required,omitempty"`
}

func (b Budget) ident() string         { return b.ID }
func (c BudgetCategory) ident() string { return c.ID }

// MonthIndex returns the budget month, 0 if the name is unknown.
func (b Budget) MonthIndex() time.Month {
	return time.Month(slices.Index(Months, b.Month) + 1)
}

// Period returns the budget month as "May 2023".
func (b Budget) Period() string { return fmt.Sprintf("%s %d", b.Month, b.Year) }

// Same reports whether both budgets cover the same (month, year).
func (b Budget) Same(o Budget) bool { return b.Month == o.Month && b.Year == o.Year }

// After reports whether b covers a later month than o.
func (b Budget) After(o Budget) bool {
	if b.Year != o.Year {
		return b.Year > o.Year
	}
	return b.MonthIndex() > o.MonthIndex()
}

// Validate checks the budget fields and every category.
func (b Budget) Validate() error {
	var errs []error
	if b.MonthIndex() == 0 {
		errs = append(errs, invalid("budget", "month", "%q is not a month name", b.Month))
	}
	if b.Year <= 0 {
		errs = append(errs, invalid("budget", "year", "is required"))
	}
	if len(b.Categories) == 0 {
		errs = append(errs, invalid("budget", "categories", "cannot be empty"))
	}
	for _, c := range b.Categories {
		errs = append(errs, c.Validate())
	}
	return errors.Join(errs...)
}

// validateRequired checks the leading categories a new budget must fill in.
func (b Budget) validateRequired() error {
	if len(b.Categories) < RequiredCategories {
		return invalid("budget", "categories", "the first %d categories are mandatory", RequiredCategories)
	}
	var errs []error
	for i, c := range b.Categories[:RequiredCategories] {
		if strings.TrimSpace(c.Name) == "" || !c.Allocated.IsPositive() {
			errs = append(errs, invalid("budget", fmt.Sprintf("categories[%d]", i), "a mandatory category needs a name and a positive allocation"))
		}
	}
	return errors.Join(errs...)
}

// Category returns the category with the given id.
func (b Budget) Category(id string) (BudgetCategory, bool) {
	i := slices.IndexFunc(b.Categories, func(c BudgetCategory) bool { return c.ID == id })
	if i < 0 {
		return BudgetCategory{}, false
	}
	return b.Categories[i], true
}

// Allocated sums the allocations of every category.
func (b Budget) Allocated() Money {
	var total Money
	for _, c := range b.Categories {
		total = total.Add(c.Allocated)
	}
	return total
}

// Spent sums the spending of every category.
func (b Budget) Spent() Money {
	var total Money
	for _, c := range b.Categories {
		total = total.Add(c.Spent)
	}
	return total
}

// Utilization of the whole budget.
func (b Budget) Utilization() Utilization { return utilization(b.Allocated(), b.Spent()) }

// Validate checks the category fields.
func (c BudgetCategory) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, invalid("budget category", "name", "is required"))
	}
	if c.Allocated.IsNegative() {
		errs = append(errs, invalid("budget category", "allocated", "cannot be negative"))
	}
	if c.Spent.IsNegative() {
		errs = append(errs, invalid("budget category", "spent", "cannot be negative"))
	}
	return errors.Join(errs...)
}

// Utilization of the category.
func (c BudgetCategory) Utilization() Utilization { return utilization(c.Allocated, c.Spent) }

// Utilization describes how much of an allocation has been spent.
type Utilization struct {
	Percent int   `json:"percent"` // Percent is spent/allocated rounded, capped at 100.
	Over    bool  `json:"over"`    // Over is true when spent exceeds allocated.
	Delta   Money `json:"delta"`   // Delta is spent minus allocated, never clamped.
}

func utilization(allocated, spent Money) Utilization {
	u := Utilization{
		Over:  spent.GreaterThan(allocated),
		Delta: spent.Sub(allocated),
	}
	switch {
	case allocated.IsPositive():
		u.Percent = int(math.Round(spent.Ratio(allocated) * 100))
	case spent.IsPositive():
		u.Percent = 100
	}
	u.Percent = min(max(u.Percent, 0), 100)
	return u
}
