package fintrack

import (
	"errors"
	"strings"

	"github.com/etnz/fintrack/date"
)

// InvestmentTypes lists the usual investment types, in display order.
var InvestmentTypes = []string{
	"Stocks",
	"Bonds",
	"Mutual Funds",
	"ETFs",
	"Real Estate",
	"Cryptocurrency",
	"401k",
	"IRA",
	"CD",
	"Other",
}

// Investment is an amount placed at an expected annual return.
type Investment struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Amount           Money     `json:"amount"`
	AnnualReturnRate Percent   `json:"annualReturnRate"`
	StartDate        date.Date `json:"startDate"`
}

func (i Investment) ident() string { return i.ID }

// Validate checks the investment fields.
func (i Investment) Validate() error {
	var errs []error
	if strings.TrimSpace(i.Name) == "" {
		errs = append(errs, invalid("investment", "name", "is required"))
	}
	if strings.TrimSpace(i.Type) == "" {
		errs = append(errs, invalid("investment", "type", "is required"))
	}
	if i.Amount.IsNegative() {
		errs = append(errs, invalid("investment", "amount", "cannot be negative"))
	}
	return errors.Join(errs...)
}

// ProjectedReturn is the expected gain over one year.
func (i Investment) ProjectedReturn() Money { return i.Amount.MulPercent(i.AnnualReturnRate) }

// MonthsHeld counts the months elapsed since the start date, 0 before it.
func (i Investment) MonthsHeld(today date.Date) int {
	return max(cyclesElapsed(i.StartDate, today), 0)
}
