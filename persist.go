package fintrack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/etnz/fintrack/kv"
)

// Collection names, used as keys in the durable store.
const (
	KeyAccounts    = "accounts"
	KeyCreditCards = "creditCards"
	KeyDebitCards  = "debitCards"
	KeyInvestments = "investments"
	KeyBudgets     = "budgets"
	KeyExpenses    = "expenses"
	KeyEMIs        = "emis"
)

// Keys lists every collection name.
var Keys = []string{KeyAccounts, KeyCreditCards, KeyDebitCards, KeyInvestments, KeyBudgets, KeyExpenses, KeyEMIs}

// load reads the collection stored under key. When the key is absent or cannot be
// decoded, the seed collection is returned instead.
func load[T any](backend kv.Backend, key string, seed func() []T, logger *log.Logger) []T {
	data, err := backend.Get(key)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("collection not found, using seed data", "key", key)
		return seed()
	}
	if err != nil {
		logger.Warn("collection unreadable, using seed data", "key", key, "err", err)
		return seed()
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("collection corrupt, using seed data", "key", key, "err", err)
		return seed()
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// save writes the whole collection under key as a JSON array.
func save[T any](backend kv.Backend, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("could not encode %q: %w", key, err)
	}
	if err := backend.Put(key, data); err != nil {
		return fmt.Errorf("could not save %q: %w", key, err)
	}
	return nil
}

// loadState loads every collection.
func loadState(backend kv.Backend, logger *log.Logger) State {
	return State{
		Accounts:    load(backend, KeyAccounts, seedAccounts, logger),
		CreditCards: load(backend, KeyCreditCards, seedCreditCards, logger),
		DebitCards:  load(backend, KeyDebitCards, seedDebitCards, logger),
		Investments: load(backend, KeyInvestments, seedInvestments, logger),
		Budgets:     load(backend, KeyBudgets, seedBudgets, logger),
		Expenses:    load(backend, KeyExpenses, seedExpenses, logger),
		EMIs:        load(backend, KeyEMIs, seedEMIs, logger),
	}
}

// saveCollection writes the collection named key from s.
func saveCollection(backend kv.Backend, s *State, key string) error {
	switch key {
	case KeyAccounts:
		return save(backend, key, s.Accounts)
	case KeyCreditCards:
		return save(backend, key, s.CreditCards)
	case KeyDebitCards:
		return save(backend, key, s.DebitCards)
	case KeyInvestments:
		return save(backend, key, s.Investments)
	case KeyBudgets:
		return save(backend, key, s.Budgets)
	case KeyExpenses:
		return save(backend, key, s.Expenses)
	case KeyEMIs:
		return save(backend, key, s.EMIs)
	}
	return fmt.Errorf("unknown collection %q", key)
}
