package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNew_Normalizes(t *testing.T) {
	got := New(2023, time.February, 30)
	want := New(2023, time.March, 2)
	if got != want {
		t.Errorf("New(2023, February, 30) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2023-06-01", New(2023, time.June, 1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"01/06/2023", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMonthDistance(t *testing.T) {
	testCases := []struct {
		name     string
		from, to string
		want     int
	}{
		{"same day", "2022-01-15", "2022-01-15", 0},
		{"five years", "2022-01-15", "2027-01-15", 60},
		{"day of month ignored", "2022-01-31", "2022-02-01", 1},
		{"across a year", "2022-01-15", "2023-06-01", 17},
		{"backwards", "2023-06-01", "2022-01-15", -17},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MonthDistance(MustParse(tc.from), MustParse(tc.to)); got != tc.want {
				t.Errorf("MonthDistance(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		in   string
		n    int
		want string
	}{
		{"2023-01-15", 1, "2023-02-15"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-12-10", 1, "2024-01-10"},
		{"2023-03-31", -1, "2023-02-28"},
	}
	for _, tc := range testCases {
		got := MustParse(tc.in).AddMonths(tc.n)
		if got != MustParse(tc.want) {
			t.Errorf("%s.AddMonths(%d) = %v, want %s", tc.in, tc.n, got, tc.want)
		}
	}
}

func TestDaysIn(t *testing.T) {
	if got := DaysIn(2024, time.February); got != 29 {
		t.Errorf("DaysIn(2024, February) = %d, want 29", got)
	}
	if got := DaysIn(2023, time.February); got != 28 {
		t.Errorf("DaysIn(2023, February) = %d, want 28", got)
	}
	if got := DaysIn(2023, time.December); got != 31 {
		t.Errorf("DaysIn(2023, December) = %d, want 31", got)
	}
}

func TestDate_JSON(t *testing.T) {
	type holder struct {
		On Date `json:"on"`
	}
	data, err := json.Marshal(holder{On: New(2023, time.May, 5)})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"on":"2023-05-05"}` {
		t.Errorf("Marshal = %s", data)
	}

	var h holder
	if err := json.Unmarshal([]byte(`{"on":""}`), &h); err != nil {
		t.Fatalf("empty date should decode to zero: %v", err)
	}
	if !h.On.IsZero() {
		t.Errorf("got %v, want zero date", h.On)
	}
	if err := json.Unmarshal([]byte(`{"on":"not a date"}`), &h); err == nil {
		t.Errorf("expected an error for an invalid date")
	}
}
