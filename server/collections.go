package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/fintrack"
)

var errBadBody = errors.New("bad request body")

// collection binds a path segment to the Store intents of one entity type.
type collection struct {
	name   string
	target fintrack.TargetKind // target of transactions, for accounts and cards only
	list   func(st fintrack.State) any
	get    func(st fintrack.State, id string) (any, bool)
	add    func(s *fintrack.Store, body *json.Decoder) (any, error)
	update func(s *fintrack.Store, id string, body *json.Decoder) (bool, error)
}

var collections = map[string]collection{
	"accounts": entity("account",
		func(st fintrack.State) []fintrack.Account { return st.Accounts },
		fintrack.State.Account,
		(*fintrack.Store).AddAccount,
		(*fintrack.Store).UpdateAccount,
		func(a *fintrack.Account, id string) { a.ID = id },
	).withTarget(fintrack.TargetAccount),
	"credit-cards": entity("credit card",
		func(st fintrack.State) []fintrack.CreditCard { return st.CreditCards },
		fintrack.State.CreditCard,
		(*fintrack.Store).AddCreditCard,
		(*fintrack.Store).UpdateCreditCard,
		func(c *fintrack.CreditCard, id string) { c.ID = id },
	).withTarget(fintrack.TargetCreditCard),
	"debit-cards": entity("debit card",
		func(st fintrack.State) []fintrack.DebitCard { return st.DebitCards },
		fintrack.State.DebitCard,
		(*fintrack.Store).AddDebitCard,
		(*fintrack.Store).UpdateDebitCard,
		func(c *fintrack.DebitCard, id string) { c.ID = id },
	).withTarget(fintrack.TargetDebitCard),
	"investments": entity("investment",
		func(st fintrack.State) []fintrack.Investment { return st.Investments },
		fintrack.State.Investment,
		(*fintrack.Store).AddInvestment,
		(*fintrack.Store).UpdateInvestment,
		func(i *fintrack.Investment, id string) { i.ID = id },
	),
	"budgets": entity("budget",
		func(st fintrack.State) []fintrack.Budget { return st.Budgets },
		fintrack.State.Budget,
		(*fintrack.Store).AddBudget,
		(*fintrack.Store).UpdateBudget,
		func(b *fintrack.Budget, id string) { b.ID = id },
	),
	"expenses": entity("expense",
		func(st fintrack.State) []fintrack.Expense { return st.Expenses },
		fintrack.State.Expense,
		(*fintrack.Store).AddExpense,
		(*fintrack.Store).UpdateExpense,
		func(e *fintrack.Expense, id string) { e.ID = id },
	),
	"emis": entity("emi",
		func(st fintrack.State) []fintrack.Installment { return st.EMIs },
		fintrack.State.EMI,
		(*fintrack.Store).AddEMI,
		(*fintrack.Store).UpdateEMI,
		func(e *fintrack.Installment, id string) { e.ID = id },
	),
}

func entity[T any](
	name string,
	list func(fintrack.State) []T,
	get func(fintrack.State, string) (T, bool),
	add func(*fintrack.Store, T) (T, error),
	update func(*fintrack.Store, T) (bool, error),
	setID func(*T, string),
) collection {
	decode := func(body *json.Decoder) (T, error) {
		var v T
		if err := body.Decode(&v); err != nil {
			return v, fmt.Errorf("%w: %w", errBadBody, err)
		}
		return v, nil
	}
	return collection{
		name: name,
		list: func(st fintrack.State) any { return list(st) },
		get: func(st fintrack.State, id string) (any, bool) {
			return get(st, id)
		},
		add: func(s *fintrack.Store, body *json.Decoder) (any, error) {
			v, err := decode(body)
			if err != nil {
				return nil, err
			}
			return add(s, v)
		},
		update: func(s *fintrack.Store, id string, body *json.Decoder) (bool, error) {
			v, err := decode(body)
			if err != nil {
				return false, err
			}
			// the path wins over the body
			setID(&v, id)
			return update(s, v)
		},
	}
}

func (c collection) withTarget(kind fintrack.TargetKind) collection {
	c.target = kind
	return c
}
