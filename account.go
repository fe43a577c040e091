package fintrack

import (
	"errors"
	"strings"
)

// Account is a bank-style balance-bearing entity with its own transaction log.
//
// The balance is the initial balance plus every transaction applied through the Store.
type Account struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Balance      Money         `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

func (a Account) ident() string { return a.ID }

// Validate checks the account fields and its transaction log.
func (a Account) Validate() error {
	var errs []error
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, invalid("account", "name", "is required"))
	}
	errs = append(errs, validateLog(a.Transactions))
	return errors.Join(errs...)
}

// apply appends tx to the log and moves the balance by its amount.
func (a *Account) apply(tx Transaction) {
	a.Transactions = append(a.Transactions, tx)
	a.Balance = a.Balance.Add(tx.Amount)
}
