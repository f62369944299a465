package dateutil

import (
	"time"
)

// MonthStart truncates t to midnight on the first day of its month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// AddMonths adds n calendar months to the month containing t and returns the
// first day of the resulting month. Working on month starts avoids the
// day-overflow of time.AddDate (Jan 31 + 1 month = Mar 3).
func AddMonths(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, n, 0)
}

// ContributionDate returns the first day of the month in which the given
// 1-based contribution month falls for a plan starting at start.
func ContributionDate(start time.Time, monthNumber int) time.Time {
	return AddMonths(start, monthNumber-1)
}

// PeriodEnd returns the last day of the given 1-based plan year.
func PeriodEnd(start time.Time, year int) time.Time {
	return AddMonths(start, year*12).AddDate(0, 0, -1)
}

// FinancialYearLabel renders a plan year that starts mid-calendar-year as
// "2025-26"; a January start renders as the calendar year alone.
func FinancialYearLabel(start time.Time, year int) string {
	first := ContributionDate(start, (year-1)*12+1)
	last := PeriodEnd(start, year)
	if first.Year() == last.Year() {
		return first.Format("2006")
	}
	return first.Format("2006") + "-" + last.Format("06")
}
