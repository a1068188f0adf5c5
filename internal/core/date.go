package core

import (
	"regexp"
	"time"
)

const dateLayout = "2006-01-02"

// datePattern pins field widths. time.Parse alone accepts unpadded fields
// ("2024-2-3"), which would reintroduce non-canonical stored dates and the
// lexical-sort ambiguity that comes with them.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is a calendar day pinned to midnight UTC. All ordering and
// day-difference arithmetic goes through this type; renewal dates are never
// compared as raw strings.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// ParseDate parses an ISO "YYYY-MM-DD" string into a Date. It rejects
// malformed shapes and impossible dates (Feb 30, month 13).
func ParseDate(s string) (Date, error) {
	if !datePattern.MatchString(s) {
		return Date{}, ErrInvalidDate
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DaysUntil returns the whole-day difference from d to other. Negative when
// other is in the past. Exact because both ends sit at midnight UTC.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

// ISO renders the date back in canonical YYYY-MM-DD form.
func (d Date) ISO() string {
	return d.Format(dateLayout)
}
