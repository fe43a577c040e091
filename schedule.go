package fintrack

import "github.com/etnz/fintrack/date"

// RemainingPayments computes the payments left on an installment plan at 'today'.
//
// The plan spans date.MonthDistance(start, end) months. A monthly cycle counts as
// elapsed once its due day (start's day of month) has been reached, and the
// payments made are spread proportionally over the span. The result is always
// within [0, total], and 0 once today is past end.
func RemainingPayments(start, end date.Date, total int, today date.Date) int {
	if total <= 0 || today.After(end) {
		return 0
	}
	months := date.MonthDistance(start, end)
	if months <= 0 {
		return total
	}
	// a cycle counts once its due day is reached: 2022-01-15 to 2027-01-15 with
	// 60 payments leaves 44 on 2023-06-01.
	elapsed := cyclesElapsed(start, today)
	if elapsed <= 0 {
		return total
	}
	paid := elapsed * total / months // integer division floors for positive operands
	return min(max(total-paid, 0), total)
}

// cyclesElapsed counts the monthly due days reached from start to today. The
// due day is clamped to the month length, so a plan started on the 31st is due on
// February 28th.
func cyclesElapsed(start, today date.Date) int {
	n := date.MonthDistance(start, today)
	if today.Day() < today.WithDay(start.Day()).Day() {
		n--
	}
	return n
}

// NextPaymentDate returns the next due date of a plan starting at 'start'.
//
// The due day is start's day of month, clamped to the length of the month. It is
// today's month when that day has not passed yet, the following month otherwise,
// and never earlier than start.
func NextPaymentDate(start, today date.Date) date.Date {
	if start.IsZero() {
		return date.Date{}
	}
	next := today.WithDay(start.Day())
	if today.Day() > start.Day() {
		next = date.New(today.Year(), today.Month()+1, 1).WithDay(start.Day())
	}
	if next.Before(start) {
		return start
	}
	return next
}
