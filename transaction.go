package fintrack

import (
	"errors"
	"strings"

	"github.com/etnz/fintrack/date"
)

// Transaction is a single movement recorded in an Account or Card log.
type Transaction struct {
	ID          string    `json:"id"`
	Date        date.Date `json:"date"`
	Description string    `json:"description"`
	Amount      Money     `json:"amount"`   // Amount is signed, income positive and spending negative.
	Category    string    `json:"category"` // Category is free text, TransactionCategories lists the usual ones.
}

// TransactionCategories lists the categories offered when recording a transaction.
var TransactionCategories = append([]string{"Income"}, ExpenseCategories...)

func (t Transaction) ident() string { return t.ID }

// Validate checks the transaction fields and returns all failures joined.
func (t Transaction) Validate() error {
	var errs []error
	if t.Date.IsZero() {
		errs = append(errs, invalid("transaction", "date", "is required"))
	}
	if strings.TrimSpace(t.Description) == "" {
		errs = append(errs, invalid("transaction", "description", "is required"))
	}
	if t.Amount.IsZero() {
		errs = append(errs, invalid("transaction", "amount", "cannot be zero"))
	}
	if strings.TrimSpace(t.Category) == "" {
		errs = append(errs, invalid("transaction", "category", "is required"))
	}
	return errors.Join(errs...)
}

// withIDs returns a copy of the log where every transaction lacking an id gets a fresh one.
func withIDs(log []Transaction) []Transaction {
	out := make([]Transaction, len(log))
	for i, tx := range log {
		if tx.ID == "" {
			tx.ID = newID()
		}
		out[i] = tx
	}
	return out
}

func validateLog(log []Transaction) error {
	var errs []error
	for _, tx := range log {
		errs = append(errs, tx.Validate())
	}
	return errors.Join(errs...)
}
