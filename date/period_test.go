package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	wed := New(2025, time.September, 10)
	tests := []struct {
		in   Date
		p    Period
		want Range
	}{
		{wed, Day, Range{wed, wed}},
		{wed, Week, Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		// a Sunday closes its week
		{New(2025, time.September, 14), Week, Range{New(2025, time.September, 8), New(2025, time.September, 14)}},
		{wed, Month, Range{New(2025, time.September, 1), New(2025, time.September, 30)}},
		{New(2024, time.February, 15), Month, Range{New(2024, time.February, 1), New(2024, time.February, 29)}},
		{New(2025, time.May, 20), Quarter, Range{New(2025, time.April, 1), New(2025, time.June, 30)}},
		{New(2025, time.December, 31), Quarter, Range{New(2025, time.October, 1), New(2025, time.December, 31)}},
		{wed, Year, Range{New(2025, time.January, 1), New(2025, time.December, 31)}},
	}
	for _, tt := range tests {
		t.Run(string(tt.p)+" "+tt.in.String(), func(t *testing.T) {
			if got := NewRange(tt.in, tt.p); got != tt.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tt.in, tt.p, got, tt.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"day", Day, false},
		{"daily", Day, false},
		{"Week", Week, false},
		{"weekly", Week, false},
		{"month", Month, false},
		{"MONTHLY", Month, false},
		{" quarter ", Quarter, false},
		{"quarterly", Quarter, false},
		{"yearly", Year, false},
		{"fortnight", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePeriod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRange_Contains(t *testing.T) {
	may := NewRange(New(2023, time.May, 17), Month)
	since := Range{From: New(2023, time.May, 1)}
	until := Range{To: New(2023, time.May, 31)}
	tests := []struct {
		r    Range
		in   Date
		want bool
	}{
		{may, New(2023, time.April, 30), false},
		{may, New(2023, time.May, 1), true},
		{may, New(2023, time.May, 31), true},
		{may, New(2023, time.June, 1), false},
		{since, New(2030, time.January, 1), true},
		{since, New(2023, time.April, 30), false},
		{until, New(1999, time.January, 1), true},
		{until, New(2023, time.June, 1), false},
		{Range{}, New(2023, time.June, 1), true},
	}
	for _, tt := range tests {
		if got := tt.r.Contains(tt.in); got != tt.want {
			t.Errorf("%v.Contains(%v) = %v, want %v", tt.r, tt.in, got, tt.want)
		}
	}
}
