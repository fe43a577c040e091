package server

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/kv"
)

func newTestServer(t *testing.T) (*Server, *fintrack.Store) {
	t.Helper()
	logger := log.New(io.Discard)
	store := fintrack.Open(kv.NewMemory(),
		fintrack.WithLogger(logger),
		fintrack.WithClock(func() date.Date { return date.New(2023, 6, 1) }),
	)
	return New(store, logger), store
}

// do runs a request against the server and returns the recorded response.
func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	return v
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"state", "GET", "/state", "", http.StatusOK},
		{"dashboard", "GET", "/dashboard", "", http.StatusOK},
		{"list", "GET", "/credit-cards", "", http.StatusOK},
		{"get", "GET", "/emis/2", "", http.StatusOK},
		{"get unknown", "GET", "/emis/9", "", http.StatusNotFound},
		{"unknown collection", "GET", "/loans", "", http.StatusNotFound},
		{"add account", "POST", "/accounts", `{"name":"Savings","balance":100}`, http.StatusCreated},
		{"add invalid account", "POST", "/accounts", `{"balance":100}`, http.StatusUnprocessableEntity},
		{"add malformed", "POST", "/accounts", `{"name":`, http.StatusBadRequest},
		{"add empty", "POST", "/expenses", ``, http.StatusBadRequest},
		{"add to unknown collection", "POST", "/loans", `{}`, http.StatusNotFound},
		{"add duplicate budget", "POST", "/budgets", `{"month":"May","year":2023,"categories":[
			{"name":"Housing","allocated":1},{"name":"Food","allocated":1},{"name":"Travel","allocated":1}]}`, http.StatusUnprocessableEntity},
		{"add credit card without number", "POST", "/credit-cards", `{"name":"Gold","number":"12","limit":100}`, http.StatusUnprocessableEntity},
		{"add debit card with unknown account", "POST", "/debit-cards", `{"name":"Spare","number":"1111222233334444","linkedAccountId":"9"}`, http.StatusUnprocessableEntity},
		{"update", "PUT", "/accounts/1", `{"name":"Main","balance":5000}`, http.StatusOK},
		{"update unknown", "PUT", "/accounts/9", `{"name":"Main","balance":5000}`, http.StatusNotFound},
		{"update invalid", "PUT", "/expenses/1", `{"category":"Other","amount":-1,"date":"2023-05-01"}`, http.StatusUnprocessableEntity},
		{"transaction", "POST", "/accounts/1/transactions", `{"description":"Rent","amount":-1200,"category":"Housing"}`, http.StatusCreated},
		{"zero transaction", "POST", "/accounts/1/transactions", `{"description":"Rent","amount":0,"category":"Housing"}`, http.StatusUnprocessableEntity},
		{"transaction on unknown account", "POST", "/accounts/9/transactions", `{"description":"Rent","amount":-1,"category":"Housing"}`, http.StatusNotFound},
		{"malformed transaction", "POST", "/accounts/1/transactions", `[]`, http.StatusBadRequest},
		{"transaction without amount", "POST", "/accounts/1/transactions", `{"description":"Rent","category":"Housing"}`, http.StatusUnprocessableEntity},
		{"transaction with text amount", "POST", "/accounts/1/transactions", `{"description":"Rent","amount":"-12.5","category":"Housing"}`, http.StatusCreated},
		{"transaction with bad amount", "POST", "/accounts/1/transactions", `{"description":"Rent","amount":"abc","category":"Housing"}`, http.StatusBadRequest},
		{"credit over limit", "POST", "/credit-cards/1/transactions", `{"description":"Car","amount":300000,"category":"Shopping"}`, http.StatusUnprocessableEntity},
		{"autopay unknown", "POST", "/emis/9/autopay", "", http.StatusNotFound},
		{"category unknown", "PUT", "/budgets/1/categories/9", `{"name":"Food","allocated":600,"spent":10}`, http.StatusNotFound},
		{"method not allowed", "DELETE", "/state", "", http.StatusMethodNotAllowed},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _ := newTestServer(t)
			rec := do(t, s, test.method, test.path, test.body)
			if rec.Code != test.want {
				t.Errorf("%s %s = %d, want %d: %s", test.method, test.path, rec.Code, test.want, rec.Body)
			}
		})
	}
}

func TestErrorBody(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, "POST", "/accounts/1/transactions", `{"description":"Rent","amount":0,"category":"Housing"}`)
	got := decode[map[string]string](t, rec)
	if got["status"] != "error" || !strings.Contains(got["error"], "amount") {
		t.Errorf("error body = %v, want an error about the amount", got)
	}
}

func TestAddAccount(t *testing.T) {
	s, store := newTestServer(t)
	rec := do(t, s, "POST", "/accounts", `{"name":"Savings","balance":"250.50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /accounts = %d: %s", rec.Code, rec.Body)
	}
	a := decode[fintrack.Account](t, rec)
	if a.ID == "" {
		t.Error("added account has no id")
	}
	got, ok := store.State().Account(a.ID)
	if !ok || !got.Balance.Equal(fintrack.MustParseMoney("250.50")) {
		t.Errorf("stored account = %+v, %v", got, ok)
	}
}

func TestTransactions(t *testing.T) {
	s, store := newTestServer(t)

	rec := do(t, s, "POST", "/accounts/1/transactions", `{"description":"Rent","amount":-1200,"category":"Housing"}`)
	tx := decode[fintrack.Transaction](t, rec)
	if tx.ID == "" || tx.Date != date.New(2023, 6, 1) {
		t.Errorf("applied transaction = %+v, want an id and today's date", tx)
	}

	do(t, s, "POST", "/debit-cards/1/transactions", `{"date":"2023-06-02","description":"Groceries","amount":-75,"category":"Groceries"}`)

	st := store.State()
	if got := st.Accounts[0].Balance; !got.Equal(fintrack.M(3725)) {
		t.Errorf("account balance = %v, want 3725", got)
	}
	if got := len(st.DebitCards[0].Transactions); got != 3 {
		t.Errorf("debit card has %d transactions, want 3", got)
	}
}

func TestAutopay(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, "POST", "/emis/1/autopay", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /emis/1/autopay = %d: %s", rec.Code, rec.Body)
	}
	if emi := decode[fintrack.Installment](t, rec); emi.AutopayEnabled {
		t.Error("autopay still enabled after toggle")
	}
}

func TestBudgetCategory(t *testing.T) {
	s, _ := newTestServer(t)
	for range 2 {
		rec := do(t, s, "PUT", "/budgets/1/categories/2", `{"name":"Food","allocated":600,"spent":700}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("PUT category = %d: %s", rec.Code, rec.Body)
		}
		b := decode[fintrack.Budget](t, rec)
		c, _ := b.Category("2")
		if !c.Spent.Equal(fintrack.M(700)) || !c.Utilization().Over {
			t.Errorf("category = %+v, want 700 spent and over budget", c)
		}
	}
}

func TestDashboard(t *testing.T) {
	s, _ := newTestServer(t)
	got := decode[map[string]any](t, do(t, s, "GET", "/dashboard", ""))
	if got["totalBalance"] != 5000.0 || got["totalDebt"] != 2500.0 || got["totalInvested"] != 35000.0 {
		t.Errorf("dashboard totals = %v", got)
	}
	if recent, _ := got["recentTransactions"].([]any); len(recent) != fintrack.RecentWindow {
		t.Errorf("dashboard has %d recent transactions, want %d", len(recent), fintrack.RecentWindow)
	}
}

func TestEvents(t *testing.T) {
	s, store := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, "GET", ts.URL+"/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q", ct)
	}

	events := bufio.NewScanner(resp.Body)
	events.Buffer(nil, 1<<20)
	next := func() fintrack.State {
		t.Helper()
		for events.Scan() {
			if data, ok := strings.CutPrefix(events.Text(), "data: "); ok {
				var st fintrack.State
				if err := json.Unmarshal([]byte(data), &st); err != nil {
					t.Fatal(err)
				}
				return st
			}
		}
		t.Fatalf("event stream ended: %v", events.Err())
		return fintrack.State{}
	}

	if st := next(); len(st.Accounts) != 1 {
		t.Fatalf("initial event has %d accounts, want 1", len(st.Accounts))
	}
	if _, err := store.AddAccount(fintrack.Account{Name: "Savings"}); err != nil {
		t.Fatal(err)
	}
	if st := next(); len(st.Accounts) != 2 {
		t.Errorf("event after change has %d accounts, want 2", len(st.Accounts))
	}
}

func TestLatest(t *testing.T) {
	l := newLatest()
	older := fintrack.State{Accounts: []fintrack.Account{{ID: "1"}}}
	newer := fintrack.State{Accounts: []fintrack.Account{{ID: "1"}, {ID: "2"}}}

	// snapshots of concurrent changes may be delivered in any order
	l.push(newer, 3)
	l.push(older, 2)
	select {
	case <-l.ready:
	default:
		t.Fatal("no state ready after push")
	}
	if st, v := l.get(); v != 3 || len(st.Accounts) != 2 {
		t.Errorf("get() = %d accounts at version %d, want 2 at version 3", len(st.Accounts), v)
	}
	select {
	case <-l.ready:
		t.Error("an older version signaled a new state")
	default:
	}

	l.push(older, 4)
	if _, v := l.get(); v != 4 {
		t.Errorf("get() version = %d, want 4", v)
	}
}

func TestScheduleRefresh(t *testing.T) {
	s, _ := newTestServer(t)
	if err := s.ScheduleRefresh("@daily"); err != nil {
		t.Errorf("ScheduleRefresh(@daily) error = %v", err)
	}
	if err := s.ScheduleRefresh("every now and then"); err == nil {
		t.Error("ScheduleRefresh(invalid) error = nil")
	}
}

func TestStart(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Start(ctx, "127.0.0.1:0") }()
	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}
}
