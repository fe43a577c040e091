package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar span: a day, a week starting on Monday, a month, a quarter or a year.
type Period string

const (
	Day     Period = "day"
	Week    Period = "week"
	Month   Period = "month"
	Quarter Period = "quarter"
	Year    Period = "year"
)

// Periods lists every Period, shortest first.
var Periods = []Period{Day, Week, Month, Quarter, Year}

// adverb is the "how often" form, "monthly" for Month.
func (p Period) adverb() string {
	if p == Day {
		return "daily"
	}
	return string(p) + "ly"
}

// ParsePeriod accepts a period name ("month") or its adverb ("monthly"), in any case.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Periods {
		if s == string(p) || s == p.adverb() {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q, want day, week, month, quarter or year", s)
}

// StartOf returns the first day of the period p containing d.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Week:
		return d.Add(-((int(d.Weekday()) + 6) % 7))
	case Month:
		return New(d.y, d.m, 1)
	case Quarter:
		return New(d.y, d.m-(d.m-1)%3, 1)
	case Year:
		return New(d.y, time.January, 1)
	}
	return d
}

// EndOf returns the last day of the period p containing d.
func (d Date) EndOf(p Period) Date {
	start := d.StartOf(p)
	switch p {
	case Week:
		return start.Add(6)
	case Month:
		return start.AddMonths(1).Add(-1)
	case Quarter:
		return start.AddMonths(3).Add(-1)
	case Year:
		return start.AddMonths(12).Add(-1)
	}
	return d
}
