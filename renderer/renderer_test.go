package renderer

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/etnz/fintrack/kv"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var today = date.New(2023, 6, 1)

// seedState returns the state of a fresh store.
func seedState(t *testing.T) fintrack.State {
	t.Helper()
	s := fintrack.Open(kv.NewMemory(), fintrack.WithClock(func() date.Date { return today }))
	return s.State()
}

// page is a parsed markdown document.
type page struct {
	headings []string
	rows     [][]string // rows of every table, header rows included
	text     string     // text of every paragraph
}

func parse(t *testing.T, md string) page {
	t.Helper()
	if strings.HasPrefix(md, "error ") {
		t.Fatalf("rendering failed: %s", md)
	}
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var p page
	var paragraphs []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			p.headings = append(p.headings, nodeText(n, src))
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			paragraphs = append(paragraphs, nodeText(n, src))
			return ast.WalkSkipChildren, nil
		case *east.TableHeader, *east.TableRow:
			var row []string
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				row = append(row, strings.TrimSpace(nodeText(c, src)))
			}
			p.rows = append(p.rows, row)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	p.text = strings.Join(paragraphs, "\n")
	return p
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
			if c.SoftLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// hasRow reports whether a table row starts with the given cells.
func (p page) hasRow(cells ...string) bool {
	return slices.ContainsFunc(p.rows, func(row []string) bool {
		return len(row) >= len(cells) && slices.Equal(row[:len(cells)], cells)
	})
}

func TestRenderDashboard(t *testing.T) {
	p := parse(t, RenderDashboard(fintrack.NewDashboard(seedState(t)), Options{}))

	want := []string{"Dashboard", "Budget May 2023", "Recent Transactions"}
	if diff := cmp.Diff(want, p.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if !p.hasRow("₹5,000.00", "₹2,500.00", "₹35,000.00") {
		t.Errorf("totals row not found in %v", p.rows)
	}
	if !strings.Contains(p.text, "₹3,000.00 allocated, ₹2,430.00 spent") {
		t.Errorf("budget summary not found in %q", p.text)
	}
	if !p.hasRow("2023-05-18", "Gas Station", "Main Debit Card", "Transportation", "-₹45.00") {
		t.Errorf("most recent transaction row not found in %v", p.rows)
	}
	if got := len(p.rows); got != 2+1+fintrack.RecentWindow {
		t.Errorf("got %d table rows, want totals (2) and recent (%d)", got, 1+fintrack.RecentWindow)
	}
}

func TestRenderDashboard_Empty(t *testing.T) {
	p := parse(t, RenderDashboard(fintrack.NewDashboard(fintrack.State{}), Options{Currency: "USD"}))
	if !p.hasRow("$0.00", "$0.00", "$0.00") {
		t.Errorf("totals row not found in %v", p.rows)
	}
	if !strings.Contains(p.text, "No budget yet.") || !strings.Contains(p.text, "No transactions yet.") {
		t.Errorf("empty notices not found in %q", p.text)
	}
}

func TestRenderAccounts(t *testing.T) {
	p := parse(t, RenderAccounts(seedState(t), Options{}))
	want := []string{"Accounts", "Checking Account", "Credit Cards", "Rewards Card", "Debit Cards", "Main Debit Card"}
	if len(p.headings) != len(want) {
		t.Fatalf("got headings %q, want %q", p.headings, want)
	}
	for i, h := range p.headings {
		// card headings are followed by the masked number
		if !strings.HasPrefix(h, want[i]) {
			t.Errorf("heading #%d = %q, want prefix %q", i, h, want[i])
		}
	}
	if !p.hasRow("2023-05-01", "Salary", "Income", "+₹3,000.00") {
		t.Errorf("salary row not found in %v", p.rows)
	}
	if !strings.Contains(p.text, "Linked to Checking Account") {
		t.Errorf("linked account not found in %q", p.text)
	}
}

func TestRenderBudgets(t *testing.T) {
	budgets := append(seedState(t).Budgets, fintrack.Budget{
		Month: "June", Year: 2023,
		Categories: []fintrack.BudgetCategory{{Name: "Food", Allocated: fintrack.M(100), Spent: fintrack.M(150)}},
	})
	p := parse(t, RenderBudgets(budgets, Options{}))
	want := []string{"Budgets", "June 2023", "May 2023"}
	if diff := cmp.Diff(want, p.headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
	if !p.hasRow("Food", "₹100.00", "₹150.00", "██████████ 100%", "+₹50.00") {
		t.Errorf("over budget row not found in %v", p.rows)
	}
	if !p.hasRow("Housing", "₹1,500.00", "₹1,200.00", "████████░░ 80%", "") {
		t.Errorf("housing row not found in %v", p.rows)
	}
	if !p.hasRow("Total", "₹3,000.00", "₹2,430.00") {
		t.Errorf("total row not found in %v", p.rows)
	}
}

func TestRenderEMIs(t *testing.T) {
	p := parse(t, RenderEMIs(seedState(t).EMIs, Options{}))
	if !strings.Contains(p.text, "2 installments, ₹1,550.00 per month, 2 on autopay.") {
		t.Errorf("summary not found in %q", p.text)
	}
	if !p.hasRow("Car Loan", "₹350.00", "2023-06-15", "16/60", "██░░░░░░░░ 27%", "on") {
		t.Errorf("car loan row not found in %v", p.rows)
	}
}

func TestRenderExpenses(t *testing.T) {
	p := parse(t, RenderExpenses(seedState(t).Expenses, Options{}))
	if !strings.Contains(p.text, "Total: ₹2,430.00") {
		t.Errorf("total not found in %q", p.text)
	}
	if !p.hasRow("Housing", "₹1,200.00") {
		t.Errorf("housing total not found in %v", p.rows)
	}
	if !p.hasRow("2023-05-20", "Entertainment", "₹180.00") {
		t.Errorf("recent expense not found in %v", p.rows)
	}
}

func TestRenderInvestments(t *testing.T) {
	p := parse(t, RenderInvestments(seedState(t).Investments, today, Options{}))
	if !strings.Contains(p.text, "Total invested: ₹35,000.00, projected annual return: ₹2,400.00") {
		t.Errorf("summary not found in %q", p.text)
	}
	if !p.hasRow("Stock Portfolio", "Stocks", "₹10,000.00", "8.50%", "2022-01-15", "16") {
		t.Errorf("stock portfolio row not found in %v", p.rows)
	}
	if !p.hasRow("401k", "₹25,000.00", "71.43%") {
		t.Errorf("401k share not found in %v", p.rows)
	}
}

func TestWriteStatementPDF(t *testing.T) {
	st, err := NewStatement(seedState(t), "1", fintrack.TargetAccount)
	if err != nil {
		t.Fatal(err)
	}
	st.Range = date.NewRange(date.New(2023, 5, 3), date.Month)
	st.Generated = today
	if got := len(st.rows()); got != 2 {
		t.Errorf("statement has %d rows, want 2", got)
	}

	var buf bytes.Buffer
	if err := WriteStatementPDF(&buf, st, Options{}); err != nil {
		t.Fatalf("WriteStatementPDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(buf.Len(), 8)])
	}

	if _, err := NewStatement(seedState(t), "nope", fintrack.TargetCreditCard); err == nil {
		t.Error("NewStatement(unknown card) error = nil")
	}
}
