package fintrack

import (
	"fmt"
)

// TargetKind tells ApplyTransaction which collection the target id belongs to.
type TargetKind string

const (
	TargetAccount    TargetKind = "account"
	TargetCreditCard TargetKind = "creditCard"
	TargetDebitCard  TargetKind = "debitCard"
)

// ParseTargetKind parses "account", "creditCard" or "debitCard". The dashed
// forms "credit-card" and "debit-card" are accepted too.
func ParseTargetKind(s string) (TargetKind, error) {
	switch s {
	case "account":
		return TargetAccount, nil
	case "creditCard", "credit-card":
		return TargetCreditCard, nil
	case "debitCard", "debit-card":
		return TargetDebitCard, nil
	}
	return "", fmt.Errorf("unknown target kind %q, want account, creditCard or debitCard", s)
}

// ApplyTransaction records tx on the account or card targetID and moves the
// balances accordingly:
//
//   - account: the account balance moves by tx.Amount.
//   - creditCard: the card balance (its debt) moves by tx.Amount. The new balance
//     must stay within [0, limit] and below MaxLimit.
//   - debitCard: the transaction is recorded on the card, and the linked account
//     balance moves by tx.Amount.
//
// The transaction gets a fresh id if it has none. An invalid transaction or an
// unknown target is rejected and nothing changes.
func (s *Store) ApplyTransaction(targetID string, tx Transaction, kind TargetKind) (Transaction, error) {
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	if tx.ID == "" {
		tx.ID = newID()
	}
	err := s.mutate(func(st *State) ([]string, error) {
		if err := checkTarget(st, targetID, tx, kind); err != nil {
			return nil, err
		}
		return s.apply(st, targetID, tx, kind), nil
	})
	if err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// checkTarget validates tx against its target, apply trusts it afterwards.
func checkTarget(st *State, targetID string, tx Transaction, kind TargetKind) error {
	switch kind {
	case TargetAccount:
		if indexOf(st.Accounts, targetID) < 0 {
			return invalid("transaction", "target", "account %q does not exist", targetID)
		}
	case TargetCreditCard:
		card, ok := find(st.CreditCards, targetID)
		if !ok {
			return invalid("transaction", "target", "credit card %q does not exist", targetID)
		}
		return card.checkCharge(tx.Amount)
	case TargetDebitCard:
		if indexOf(st.DebitCards, targetID) < 0 {
			return invalid("transaction", "target", "debit card %q does not exist", targetID)
		}
	default:
		return invalid("transaction", "target", "unknown target kind %q", kind)
	}
	return nil
}

// apply records a validated transaction and returns the collections it changed.
func (s *Store) apply(st *State, targetID string, tx Transaction, kind TargetKind) []string {
	switch kind {
	case TargetAccount:
		i := indexOf(st.Accounts, targetID)
		st.Accounts[i].apply(tx)
		return []string{KeyAccounts}

	case TargetCreditCard:
		i := indexOf(st.CreditCards, targetID)
		st.CreditCards[i].apply(tx)
		return []string{KeyCreditCards}

	case TargetDebitCard:
		i := indexOf(st.DebitCards, targetID)
		card := &st.DebitCards[i]
		card.apply(tx)
		j := indexOf(st.Accounts, card.LinkedAccountID)
		if j < 0 {
			// the card log records money the account never lost.
			s.logger.Warn("debit card linked account not found, account balance not updated",
				"card", card.ID, "account", card.LinkedAccountID, "amount", tx.Amount)
			return []string{KeyDebitCards}
		}
		a := &st.Accounts[j]
		a.Balance = a.Balance.Add(tx.Amount)
		return []string{KeyDebitCards, KeyAccounts}
	}
	return nil
}
