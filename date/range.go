package date

import "fmt"

// Range is an inclusive span of days. A zero bound leaves that side open.
type Range struct{ From, To Date }

// NewRange returns the period p containing d.
func NewRange(d Date, p Period) Range {
	return Range{From: d.StartOf(p), To: d.EndOf(p)}
}

// IsZero reports whether both bounds are open.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains reports whether d is within the bounds.
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	return r.To.IsZero() || !d.After(r.To)
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
