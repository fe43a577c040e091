package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/fintrack"
	"github.com/etnz/fintrack/date"
	"github.com/phpdave11/gofpdf"
)

// Statement selects the transactions printed in a PDF statement.
type Statement struct {
	Name         string // Name of the account or card.
	Kind         fintrack.TargetKind
	Balance      *fintrack.Money // Balance is nil for debit cards, they hold none.
	Transactions []fintrack.Transaction
	Range        date.Range // Range filters the transactions, a zero bound is open.
	Generated    date.Date
}

// NewStatement returns the statement of the account or card id.
func NewStatement(s fintrack.State, id string, kind fintrack.TargetKind) (Statement, error) {
	st := Statement{Kind: kind}
	switch kind {
	case fintrack.TargetAccount:
		a, ok := s.Account(id)
		if !ok {
			return st, fmt.Errorf("account %q not found", id)
		}
		st.Name, st.Balance, st.Transactions = a.Name, &a.Balance, a.Transactions
	case fintrack.TargetCreditCard:
		c, ok := s.CreditCard(id)
		if !ok {
			return st, fmt.Errorf("credit card %q not found", id)
		}
		st.Name, st.Balance, st.Transactions = c.Name+" "+c.Number, &c.Balance, c.Transactions
	case fintrack.TargetDebitCard:
		c, ok := s.DebitCard(id)
		if !ok {
			return st, fmt.Errorf("debit card %q not found", id)
		}
		st.Name, st.Transactions = c.Name+" "+c.Number, c.Transactions
	default:
		return st, fmt.Errorf("unknown kind %q", kind)
	}
	return st, nil
}

// rows returns the transactions within the statement range.
func (st Statement) rows() []fintrack.Transaction {
	var out []fintrack.Transaction
	for _, tx := range st.Transactions {
		if st.Range.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// WriteStatementPDF writes the statement as a PDF document.
func WriteStatementPDF(w io.Writer, st Statement, opts Options) error {
	cur := opts.currency()
	amount := func(m fintrack.Money) string {
		return cur + " " + m.Decimal().StringFixed(2)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(st.Name+" Statement"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	if !st.Range.IsZero() {
		pdf.Cell(0, 6, "Period: "+st.Range.String())
		pdf.Ln(5)
	}
	if st.Balance != nil {
		pdf.Cell(0, 6, "Balance: "+amount(*st.Balance))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	colW := []float64{26, 80, 42, 34}
	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(colW[0], 8, "DATE", "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 8, "DESCRIPTION", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[2], 8, "CATEGORY", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[3], 8, "AMOUNT", "1", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(30, 30, 30)
	}
	header()

	var in, out fintrack.Money
	for _, tx := range st.rows() {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
		}
		if tx.Amount.IsPositive() {
			in = in.Add(tx.Amount)
		} else {
			out = out.Add(tx.Amount)
		}
		pdf.CellFormat(colW[0], 8, tx.Date.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colW[1], 8, tr(trimTo(tx.Description, 45)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[2], 8, tr(trimTo(tx.Category, 22)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[3], 8, amount(tx.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colW[0]+colW[1]+colW[2], 8, "Total in", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[3], 8, amount(in), "1", 1, "R", false, 0, "")
	pdf.CellFormat(colW[0]+colW[1]+colW[2], 8, "Total out", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colW[3], 8, amount(out), "1", 1, "R", false, 0, "")

	if !st.Generated.IsZero() {
		pdf.SetY(-18)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, "Generated on "+st.Generated.String(), "", 0, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf build failed: %w", err)
	}
	return nil
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max-1]) + "..."
}
