package domain

import (
	"fmt"
	"time"
)

// AgeParts is the elapsed time since birth split into calendar units.
type AgeParts struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Weeks  int `json:"weeks"`
	Days   int `json:"days"`
}

// ComputeAge decomposes the time between birth and now. Years and months come
// from calendar-field subtraction; a day shortfall borrows the length of the
// month before now's month. Leftover days are split into whole weeks and days.
// When now precedes birth, fallback is used as now.
func ComputeAge(birth, now, fallback time.Time) AgeParts {
	if now.Before(birth) {
		now = fallback
	}
	now = now.In(birth.Location())
	by, bm, bd := birth.Date()
	ny, nm, nd := now.Date()

	years := ny - by
	months := int(nm) - int(bm)
	days := nd - bd

	if days < 0 {
		months--
		// Day 0 of now's month is the last day of the month before it. A
		// birth day past that month's end counts from its last day.
		prevLen := time.Date(ny, nm, 0, 0, 0, 0, 0, now.Location()).Day()
		days = nd + prevLen - min(bd, prevLen)
	}
	if months < 0 {
		years--
		months += 12
	}

	return AgeParts{Years: years, Months: months, Weeks: days / 7, Days: days % 7}
}

// TotalMonths returns the whole months elapsed.
func (a AgeParts) TotalMonths() int {
	return a.Years*12 + a.Months
}

// String renders years and months from one year on, otherwise months and,
// when non-zero, weeks.
func (a AgeParts) String() string {
	if a.Years >= 1 {
		return fmt.Sprintf("%s %s", plural(a.Years, "year"), plural(a.Months, "month"))
	}
	if a.Weeks > 0 {
		return fmt.Sprintf("%s %s", plural(a.Months, "month"), plural(a.Weeks, "week"))
	}
	return plural(a.Months, "month")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
