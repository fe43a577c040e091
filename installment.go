package fintrack

import (
	"errors"
	"strings"

	"github.com/etnz/fintrack/date"
)

// Installment is a recurring fixed-amount obligation (EMI).
//
// RemainingPayments and NextPaymentDate are derived from the dates and the
// current day, see Derive.
type Installment struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Amount            Money     `json:"amount"`
	StartDate         date.Date `json:"startDate"`
	EndDate           date.Date `json:"endDate"`
	TotalPayments     int       `json:"totalPayments"`
	RemainingPayments int       `json:"remainingPayments"`
	NextPaymentDate   date.Date `json:"nextPaymentDate"`
	AutopayEnabled    bool      `json:"autopayEnabled"`
}

func (e Installment) ident() string { return e.ID }

// Validate checks the installment fields.
func (e Installment) Validate() error {
	var errs []error
	if strings.TrimSpace(e.Name) == "" {
		errs = append(errs, invalid("emi", "name", "is required"))
	}
	if !e.Amount.IsPositive() {
		errs = append(errs, invalid("emi", "amount", "must be positive"))
	}
	if e.StartDate.IsZero() {
		errs = append(errs, invalid("emi", "startDate", "is required"))
	}
	if e.EndDate.IsZero() {
		errs = append(errs, invalid("emi", "endDate", "is required"))
	} else if e.EndDate.Before(e.StartDate) {
		errs = append(errs, invalid("emi", "endDate", "%s is before start date %s", e.EndDate, e.StartDate))
	}
	if e.TotalPayments <= 0 {
		errs = append(errs, invalid("emi", "totalPayments", "must be positive"))
	}
	return errors.Join(errs...)
}

// Derive returns a copy with RemainingPayments and NextPaymentDate computed for today.
func (e Installment) Derive(today date.Date) Installment {
	e.RemainingPayments = RemainingPayments(e.StartDate, e.EndDate, e.TotalPayments, today)
	e.NextPaymentDate = NextPaymentDate(e.StartDate, today)
	return e
}

// PaidPayments is the number of payments already made.
func (e Installment) PaidPayments() int { return e.TotalPayments - e.RemainingPayments }

// Progress is the share of payments already made.
func (e Installment) Progress() Percent {
	if e.TotalPayments <= 0 {
		return 0
	}
	return Percent(100 * float64(e.PaidPayments()) / float64(e.TotalPayments))
}

// RemainingAmount is what is still owed.
func (e Installment) RemainingAmount() Money {
	return Money{value: e.Amount.value.Mul(newDecimal(e.RemainingPayments))}
}
