package cmd

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/kv"
	"github.com/google/go-cmp/cmp"
)

func newTestStore(t *testing.T) *fintrack.Store {
	t.Helper()
	return fintrack.Open(kv.NewMemory(),
		fintrack.WithLogger(log.New(io.Discard)),
		fintrack.WithClock(func() date.Date { return date.New(2023, 6, 1) }),
	)
}

func TestQuery(t *testing.T) {
	st := newTestStore(t).State()
	tests := []struct {
		expr string
		want any
	}{
		{"$.accounts[0].balance", 5000.0},
		{"$.emis[0].remainingPayments", 44.0},
		{"$.investments[*].name", []any{"Stock Portfolio", "Retirement Fund"}},
		{"$.debitCards[0].linkedAccountId", "1"},
	}
	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			got, err := query(st, test.expr)
			if err != nil {
				t.Fatalf("query() error = %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("query() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := query(st, "$.nope["); err == nil {
		t.Error("query(invalid) error = nil")
	}
}

func TestBudgetDraft(t *testing.T) {
	draft, err := budgetDraft("June", 2023, []string{"Housing=1500", "Food=600:120", "Transportation=300", "Gifts="})
	if err != nil {
		t.Fatalf("budgetDraft() error = %v", err)
	}
	b, err := draft.Commit()
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	var names []string
	for _, c := range b.Categories {
		names = append(names, c.Name)
	}
	// the unfilled optional row is dropped
	if diff := cmp.Diff([]string{"Housing", "Food", "Transportation"}, names); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
	if food := b.Categories[1]; !food.Spent.Equal(fintrack.M(120)) {
		t.Errorf("food spent = %v, want 120", food.Spent)
	}

	for _, categories := range [][]string{
		{"Housing"},
		{"Housing=abc"},
		{"a=1", "b=1", "c=1", "d=1", "e=1", "f=1"},
	} {
		if _, err := budgetDraft("June", 2023, categories); err == nil {
			t.Errorf("budgetDraft(%q) error = nil", categories)
		}
	}
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)

	found, err := update(s, "account", strings.NewReader(`{"id":"1","name":"Main","balance":4000}`))
	if err != nil || !found {
		t.Fatalf("update(account) = %v, %v", found, err)
	}
	if a, _ := s.State().Account("1"); a.Name != "Main" || !a.Balance.Equal(fintrack.M(4000)) {
		t.Errorf("account after update = %+v", a)
	}

	found, err = update(s, "emi", strings.NewReader(`{"id":"9","name":"Bike","amount":10,"startDate":"2023-01-01","endDate":"2024-01-01","totalPayments":12}`))
	if err != nil || found {
		t.Errorf("update(unknown emi) = %v, %v, want false, nil", found, err)
	}

	if _, err := update(s, "expense", strings.NewReader(`{"id":"1",`)); err == nil {
		t.Error("update(malformed) error = nil")
	}
	if _, err := update(s, "expense", strings.NewReader(`{"id":"1","category":"Food","amount":-5,"date":"2023-05-01"}`)); !fintrack.IsValidation(err) {
		t.Errorf("update(invalid expense) error = %v, want a validation error", err)
	}
	if _, err := update(s, "loan", strings.NewReader(`{}`)); err == nil {
		t.Error("update(loan) error = nil")
	}
}

func TestCommandsHaveUsage(t *testing.T) {
	seen := map[string]bool{}
	for group, cmds := range Commands {
		for _, c := range cmds {
			if seen[c.Name()] {
				t.Errorf("command %q registered twice", c.Name())
			}
			seen[c.Name()] = true
			if c.Synopsis() == "" || !strings.HasPrefix(c.Usage(), "fin "+c.Name()) {
				t.Errorf("%s/%s: missing synopsis or usage", group, c.Name())
			}
		}
	}
}
