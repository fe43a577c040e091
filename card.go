package fintrack

import (
	"errors"
	"regexp"
	"strings"
)

// MaxLimit is the ceiling for any credit card limit or balance.
var MaxLimit = M(200000)

var expiryFormat = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

// CreditCard carries its own balance, the debt owed, bounded by its limit.
type CreditCard struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Number       string        `json:"number"` // Number is stored masked, only the last four digits are kept.
	Expiry       string        `json:"expiry"` // Expiry is "MM/YY".
	CVV          string        `json:"cvv"`
	Limit        Money         `json:"limit"`
	Balance      Money         `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

func (c CreditCard) ident() string { return c.ID }

// Validate checks the card fields, its limit and balance bounds.
func (c CreditCard) Validate() error {
	errs := validateCardFields("credit card", c.Name, c.Number, c.Expiry)
	switch {
	case c.Limit.IsNegative():
		errs = append(errs, invalid("credit card", "limit", "cannot be negative"))
	case c.Limit.GreaterThan(MaxLimit):
		errs = append(errs, invalid("credit card", "limit", "cannot exceed %s", MaxLimit))
	}
	switch {
	case c.Balance.IsNegative():
		errs = append(errs, invalid("credit card", "balance", "cannot be negative"))
	case c.Balance.GreaterThan(MaxLimit):
		errs = append(errs, invalid("credit card", "balance", "cannot exceed %s", MaxLimit))
	case c.Balance.GreaterThan(c.Limit):
		errs = append(errs, invalid("credit card", "balance", "cannot exceed credit limit %s", c.Limit))
	}
	errs = append(errs, validateLog(c.Transactions))
	return errors.Join(errs...)
}

// Available returns the credit left before reaching the limit.
func (c CreditCard) Available() Money { return c.Limit.Sub(c.Balance) }

// checkCharge reports whether applying amount keeps the balance within its bounds.
func (c CreditCard) checkCharge(amount Money) error {
	balance := c.Balance.Add(amount)
	switch {
	case balance.GreaterThan(MaxLimit):
		return invalid("transaction", "amount", "would exceed maximum limit of %s", MaxLimit)
	case balance.GreaterThan(c.Limit):
		return invalid("transaction", "amount", "would exceed credit limit %s", c.Limit)
	case balance.IsNegative():
		return invalid("transaction", "amount", "would make the balance negative")
	}
	return nil
}

// apply appends tx and grows the debt by its amount.
func (c *CreditCard) apply(tx Transaction) {
	c.Transactions = append(c.Transactions, tx)
	c.Balance = c.Balance.Add(tx.Amount)
}

// DebitCard spends from its linked Account, it holds no balance of its own.
type DebitCard struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Number          string        `json:"number"`
	Expiry          string        `json:"expiry"`
	CVV             string        `json:"cvv"`
	LinkedAccountID string        `json:"linkedAccountId"`
	Transactions    []Transaction `json:"transactions"`
}

func (c DebitCard) ident() string { return c.ID }

// Validate checks the card fields. The linked account is checked by the Store.
func (c DebitCard) Validate() error {
	errs := validateCardFields("debit card", c.Name, c.Number, c.Expiry)
	if c.LinkedAccountID == "" {
		errs = append(errs, invalid("debit card", "linkedAccountId", "is required"))
	}
	errs = append(errs, validateLog(c.Transactions))
	return errors.Join(errs...)
}

func (c *DebitCard) apply(tx Transaction) {
	c.Transactions = append(c.Transactions, tx)
}

// validateCardFields accepts a raw or an already masked number, both carry the
// last four digits.
func validateCardFields(entity, name, number, expiry string) []error {
	var errs []error
	if strings.TrimSpace(name) == "" {
		errs = append(errs, invalid(entity, "name", "is required"))
	}
	if len(cardDigits(number)) < 4 {
		errs = append(errs, invalid(entity, "number", "%q needs at least four digits", number))
	}
	if expiry != "" && !expiryFormat.MatchString(expiry) {
		errs = append(errs, invalid(entity, "expiry", "%q want format MM/YY", expiry))
	}
	return errs
}

// MaskCardNumber keeps the last four digits of a card number: "**** **** **** 4321".
// Numbers with fewer than four digits are returned empty.
func MaskCardNumber(number string) string {
	digits := cardDigits(number)
	if len(digits) < 4 {
		return ""
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

func cardDigits(number string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
}

// MaskCVV hides a security code.
func MaskCVV(cvv string) string {
	if cvv == "" {
		return ""
	}
	return "***"
}
