package fintrack

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/kv"
	"github.com/google/go-cmp/cmp"
)

// cmpOpts compares values holding Money and Dates.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
}

// day is the fixed "today" of test stores.
var day = date.New(2023, 6, 1)

// newTestStore opens a Store on backend with a fixed clock and a silent logger.
func newTestStore(t *testing.T, backend kv.Backend) *Store {
	t.Helper()
	if backend == nil {
		backend = kv.NewMemory()
	}
	return Open(backend,
		WithLogger(log.New(io.Discard)),
		WithClock(func() date.Date { return day }),
	)
}

// tx is a helper for tests to create a valid transaction.
func tx(amount float64, category string) Transaction {
	return Transaction{Date: day, Description: "test " + category, Amount: M(amount), Category: category}
}
