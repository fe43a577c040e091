package fintrack

import (
	"errors"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/kv"
	"github.com/google/uuid"
)

// Store owns the financial state. Every change goes through one of its intent
// methods, which validate, apply, persist the touched collections and notify
// subscribers, in that order. A rejected intent changes nothing.
//
// Store is safe for concurrent use, intents are serialized.
type Store struct {
	mu        sync.Mutex
	state     State
	backend   kv.Backend
	logger    *log.Logger
	today     func() date.Date
	observers map[int]func(State, uint64)
	nextObs   int
	version   uint64 // incremented by every committed change
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report persistence problems.
func WithLogger(l *log.Logger) Option { return func(s *Store) { s.logger = l } }

// WithClock sets the function returning the current day, date.Today by default.
func WithClock(today func() date.Date) Option { return func(s *Store) { s.today = today } }

// Open loads every collection from backend, falling back to the seed data for the
// ones absent or unreadable, and refreshes the derived fields.
func Open(backend kv.Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		logger:    log.NewWithOptions(os.Stderr, log.Options{Prefix: "fintrack"}),
		today:     date.Today,
		observers: make(map[int]func(State, uint64)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = loadState(backend, s.logger)
	s.Refresh()
	return s
}

// Today returns the Store's current day.
func (s *Store) Today() date.Date { return s.today() }

// State returns a snapshot of the latest committed state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Snapshot returns the latest committed state and its version.
func (s *Store) Snapshot() (State, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone(), s.version
}

// Subscribe registers fn to be called with a fresh snapshot and its version after
// every committed change. Calls for concurrent changes may arrive out of order, a
// greater version is always a later state. Calling cancel unregisters fn.
func (s *Store) Subscribe(fn func(st State, version uint64)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// mutate runs fn under the lock. fn returns the collections it changed, they are
// persisted before the lock is released and observers are notified afterwards.
func (s *Store) mutate(fn func(st *State) ([]string, error)) error {
	s.mu.Lock()
	keys, err := fn(&s.state)
	if err != nil || len(keys) == 0 {
		s.mu.Unlock()
		return err
	}
	for _, key := range keys {
		if err := saveCollection(s.backend, &s.state, key); err != nil {
			s.logger.Error("could not persist collection", "key", key, "err", err)
		}
	}
	s.version++
	version, snapshot := s.version, s.state
	observers := make([]func(State, uint64), 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	// each observer gets its own copy, taken while the state cannot change.
	copies := make([]State, len(observers))
	for i := range observers {
		copies[i] = snapshot.Clone()
	}
	s.mu.Unlock()

	for i, o := range observers {
		o(copies[i], version)
	}
	return nil
}

func newID() string { return uuid.NewString() }

// AddAccount validates and stores a new account under a fresh id.
func (s *Store) AddAccount(a Account) (Account, error) {
	if err := a.Validate(); err != nil {
		return Account{}, err
	}
	a.ID = newID()
	a.Transactions = withIDs(a.Transactions)
	err := s.mutate(func(st *State) ([]string, error) {
		st.Accounts = append(st.Accounts, a)
		return []string{KeyAccounts}, nil
	})
	a.Transactions = slices.Clone(a.Transactions)
	return a, err
}

// UpdateAccount replaces the account with the same id. It reports false, and does
// nothing, when there is no such account.
func (s *Store) UpdateAccount(a Account) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	a.Transactions = withIDs(a.Transactions)
	return s.update(KeyAccounts, func(st *State) bool { return replace(st.Accounts, a) })
}

// AddCreditCard validates and stores a new credit card. The number and cvv are masked.
func (s *Store) AddCreditCard(c CreditCard) (CreditCard, error) {
	if err := c.Validate(); err != nil {
		return CreditCard{}, err
	}
	c.Number, c.CVV = MaskCardNumber(c.Number), MaskCVV(c.CVV)
	c.ID = newID()
	c.Transactions = withIDs(c.Transactions)
	err := s.mutate(func(st *State) ([]string, error) {
		st.CreditCards = append(st.CreditCards, c)
		return []string{KeyCreditCards}, nil
	})
	c.Transactions = slices.Clone(c.Transactions)
	return c, err
}

// UpdateCreditCard replaces the credit card with the same id.
func (s *Store) UpdateCreditCard(c CreditCard) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	c.Number, c.CVV = MaskCardNumber(c.Number), MaskCVV(c.CVV)
	c.Transactions = withIDs(c.Transactions)
	return s.update(KeyCreditCards, func(st *State) bool { return replace(st.CreditCards, c) })
}

// AddDebitCard validates and stores a new debit card. Its linked account must exist.
func (s *Store) AddDebitCard(c DebitCard) (DebitCard, error) {
	if err := c.Validate(); err != nil {
		return DebitCard{}, err
	}
	c.Number, c.CVV = MaskCardNumber(c.Number), MaskCVV(c.CVV)
	c.ID = newID()
	c.Transactions = withIDs(c.Transactions)
	err := s.mutate(func(st *State) ([]string, error) {
		if err := checkLinkedAccount(st, c); err != nil {
			return nil, err
		}
		st.DebitCards = append(st.DebitCards, c)
		return []string{KeyDebitCards}, nil
	})
	if err != nil {
		return DebitCard{}, err
	}
	c.Transactions = slices.Clone(c.Transactions)
	return c, nil
}

// UpdateDebitCard replaces the debit card with the same id. Its linked account must exist.
func (s *Store) UpdateDebitCard(c DebitCard) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	c.Number, c.CVV = MaskCardNumber(c.Number), MaskCVV(c.CVV)
	c.Transactions = withIDs(c.Transactions)
	var found bool
	err := s.mutate(func(st *State) ([]string, error) {
		if indexOf(st.DebitCards, c.ID) < 0 {
			return nil, nil
		}
		if err := checkLinkedAccount(st, c); err != nil {
			return nil, err
		}
		found = replace(st.DebitCards, c)
		return []string{KeyDebitCards}, nil
	})
	return found, err
}

func checkLinkedAccount(st *State, c DebitCard) error {
	if indexOf(st.Accounts, c.LinkedAccountID) < 0 {
		return invalid("debit card", "linkedAccountId", "account %q does not exist", c.LinkedAccountID)
	}
	return nil
}

// AddInvestment validates and stores a new investment.
func (s *Store) AddInvestment(i Investment) (Investment, error) {
	if err := i.Validate(); err != nil {
		return Investment{}, err
	}
	i.ID = newID()
	err := s.mutate(func(st *State) ([]string, error) {
		st.Investments = append(st.Investments, i)
		return []string{KeyInvestments}, nil
	})
	return i, err
}

// UpdateInvestment replaces the investment with the same id.
func (s *Store) UpdateInvestment(i Investment) (bool, error) {
	if err := i.Validate(); err != nil {
		return false, err
	}
	return s.update(KeyInvestments, func(st *State) bool { return replace(st.Investments, i) })
}

// AddBudget validates and stores a new budget. Its first categories are mandatory
// and there can be only one budget per (month, year).
func (s *Store) AddBudget(b Budget) (Budget, error) {
	b.Categories = withCategoryIDs(b.Categories)
	for i := range b.Categories {
		b.Categories[i].Required = i < RequiredCategories
	}
	if err := errors.Join(b.Validate(), b.validateRequired()); err != nil {
		return Budget{}, err
	}
	b.ID = newID()
	err := s.mutate(func(st *State) ([]string, error) {
		if err := checkUniqueBudget(st, b); err != nil {
			return nil, err
		}
		st.Budgets = append(st.Budgets, b)
		return []string{KeyBudgets}, nil
	})
	if err != nil {
		return Budget{}, err
	}
	b.Categories = slices.Clone(b.Categories)
	return b, nil
}

// UpdateBudget replaces the budget with the same id. It cannot move onto the
// (month, year) of another budget.
func (s *Store) UpdateBudget(b Budget) (bool, error) {
	if err := b.Validate(); err != nil {
		return false, err
	}
	b.Categories = withCategoryIDs(b.Categories)
	var found bool
	err := s.mutate(func(st *State) ([]string, error) {
		if indexOf(st.Budgets, b.ID) < 0 {
			return nil, nil
		}
		if err := checkUniqueBudget(st, b); err != nil {
			return nil, err
		}
		found = replace(st.Budgets, b)
		return []string{KeyBudgets}, nil
	})
	return found, err
}

// withCategoryIDs copies the categories, giving a fresh id to those without.
func withCategoryIDs(categories []BudgetCategory) []BudgetCategory {
	out := make([]BudgetCategory, len(categories))
	for i, c := range categories {
		if c.ID == "" {
			c.ID = newID()
		}
		out[i] = c
	}
	return out
}

func checkUniqueBudget(st *State, b Budget) error {
	for _, o := range st.Budgets {
		if o.ID != b.ID && o.Same(b) {
			return invalid("budget", "", "a budget for %s already exists", b.Period())
		}
	}
	return nil
}

// UpdateBudgetCategory replaces the category with the same id in the budget budgetID.
// Spending above the allocation is allowed. It reports false when either the
// budget or the category does not exist.
func (s *Store) UpdateBudgetCategory(budgetID string, c BudgetCategory) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}
	var found bool
	err := s.mutate(func(st *State) ([]string, error) {
		i := indexOf(st.Budgets, budgetID)
		if i < 0 {
			return nil, nil
		}
		old, ok := st.Budgets[i].Category(c.ID)
		if !ok {
			return nil, nil
		}
		c.Required = old.Required
		replace(st.Budgets[i].Categories, c)
		found = true
		return []string{KeyBudgets}, nil
	})
	return found, err
}

// AddExpense validates and stores a new expense.
func (s *Store) AddExpense(e Expense) (Expense, error) {
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	e.ID = newID()
	err := s.mutate(func(st *State) ([]string, error) {
		st.Expenses = append(st.Expenses, e)
		return []string{KeyExpenses}, nil
	})
	return e, err
}

// UpdateExpense replaces the expense with the same id.
func (s *Store) UpdateExpense(e Expense) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	return s.update(KeyExpenses, func(st *State) bool { return replace(st.Expenses, e) })
}

// AddEMI validates and stores a new installment, with its derived fields computed for today.
func (s *Store) AddEMI(e Installment) (Installment, error) {
	if err := e.Validate(); err != nil {
		return Installment{}, err
	}
	e.ID = newID()
	e = e.Derive(s.today())
	err := s.mutate(func(st *State) ([]string, error) {
		st.EMIs = append(st.EMIs, e)
		return []string{KeyEMIs}, nil
	})
	return e, err
}

// UpdateEMI replaces the installment with the same id, recomputing its derived fields.
func (s *Store) UpdateEMI(e Installment) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	e = e.Derive(s.today())
	return s.update(KeyEMIs, func(st *State) bool { return replace(st.EMIs, e) })
}

// ToggleEMIAutopay flips the autopay flag of the installment id and nothing else.
// It reports false when there is no such installment.
func (s *Store) ToggleEMIAutopay(id string) bool {
	found, _ := s.update(KeyEMIs, func(st *State) bool {
		i := indexOf(st.EMIs, id)
		if i < 0 {
			return false
		}
		st.EMIs[i].AutopayEnabled = !st.EMIs[i].AutopayEnabled
		return true
	})
	return found
}

// Refresh recomputes the derived fields of every installment for today and
// persists them if any changed. It returns the number of installments updated.
func (s *Store) Refresh() int {
	today := s.today()
	var changed int
	s.mutate(func(st *State) ([]string, error) {
		for i, e := range st.EMIs {
			if d := e.Derive(today); d.RemainingPayments != e.RemainingPayments || d.NextPaymentDate != e.NextPaymentDate {
				st.EMIs[i] = d
				changed++
			}
		}
		if changed == 0 {
			return nil, nil
		}
		s.logger.Debug("refreshed installments", "today", today, "changed", changed)
		return []string{KeyEMIs}, nil
	})
	return changed
}

// update runs a replace-by-id: fn reports whether the entity was found, and only
// then is the collection key persisted.
func (s *Store) update(key string, fn func(st *State) bool) (bool, error) {
	var found bool
	err := s.mutate(func(st *State) ([]string, error) {
		if found = fn(st); !found {
			return nil, nil
		}
		return []string{key}, nil
	})
	return found, err
}
