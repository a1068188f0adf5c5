package core

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SearchField selects which record field Search matches against.
type SearchField string

const (
	SearchByName     SearchField = "name"
	SearchByCategory SearchField = "category"
)

// Renewal pairs a subscription with the whole days remaining until its
// renewal date.
type Renewal struct {
	Subscription
	DaysUntil int
}

// Overdue pairs a subscription with the whole days its renewal date has
// already been passed by.
type Overdue struct {
	Subscription
	DaysOverdue int
}

// MonthCost is the portfolio cost at the end of one calendar month.
type MonthCost struct {
	Year  int
	Month time.Month
	Total Money
}

// TotalMonthlyCost sums the cost of all records. Zero for an empty input.
func TotalMonthlyCost(subs []Subscription) Money {
	var cents int64
	for _, s := range subs {
		cents += s.Cost.Cents
	}
	return Money{Cents: cents}
}

// TotalAnnualCost is exactly twelve monthly totals.
func TotalAnnualCost(subs []Subscription) Money {
	return Money{Cents: TotalMonthlyCost(subs).Cents * 12}
}

// CostByCategory sums cost per distinct category. Categories with no records
// are absent from the result, never zero-valued.
func CostByCategory(subs []Subscription) map[string]Money {
	out := make(map[string]Money, len(subs))
	for _, s := range subs {
		m := out[s.Category]
		m.Cents += s.Cost.Cents
		out[s.Category] = m
	}
	return out
}

// UpcomingRenewals returns records whose renewal falls within
// [today, today+windowDays], sorted by days-until ascending with ties broken
// by id ascending. A stored date that no longer parses is an invalid-input
// failure: it means a write bypassed validation.
func UpcomingRenewals(subs []Subscription, today Date, windowDays int) ([]Renewal, error) {
	var out []Renewal
	for _, s := range subs {
		due, err := ParseDate(s.RenewalDate)
		if err != nil {
			return nil, fmt.Errorf("subscription %d has unparseable renewal date %q: %w", s.ID, s.RenewalDate, err)
		}
		d := today.DaysUntil(due)
		if d >= 0 && d <= windowDays {
			out = append(out, Renewal{Subscription: s, DaysUntil: d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysUntil != out[j].DaysUntil {
			return out[i].DaysUntil < out[j].DaysUntil
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// OverdueSubscriptions returns records whose renewal date is before today,
// most overdue first, ties broken by id ascending.
func OverdueSubscriptions(subs []Subscription, today Date) ([]Overdue, error) {
	var out []Overdue
	for _, s := range subs {
		due, err := ParseDate(s.RenewalDate)
		if err != nil {
			return nil, fmt.Errorf("subscription %d has unparseable renewal date %q: %w", s.ID, s.RenewalDate, err)
		}
		if d := today.DaysUntil(due); d < 0 {
			out = append(out, Overdue{Subscription: s, DaysOverdue: -d})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysOverdue != out[j].DaysOverdue {
			return out[i].DaysOverdue > out[j].DaysOverdue
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Search returns records whose selected field contains query,
// case-insensitively, preserving input order. An empty query matches nothing.
func Search(subs []Subscription, query string, field SearchField) ([]Subscription, error) {
	if field != SearchByName && field != SearchByCategory {
		return nil, ErrInvalidSearchField
	}
	if query == "" {
		return nil, nil
	}
	q := strings.ToLower(query)
	var out []Subscription
	for _, s := range subs {
		v := s.Name
		if field == SearchByCategory {
			v = s.Category
		}
		if strings.Contains(strings.ToLower(v), q) {
			out = append(out, s)
		}
	}
	return out, nil
}

// MonthlyTrend reports the portfolio cost at each of the last months
// month-ends, counting a record from the month it was created in. The last
// point is the current month and equals TotalMonthlyCost.
func MonthlyTrend(subs []Subscription, now time.Time, months int) []MonthCost {
	if months < 1 {
		return nil
	}
	out := make([]MonthCost, 0, months)
	for i := months - 1; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		end := first.AddDate(0, 1, 0)
		var cents int64
		for _, s := range subs {
			if s.CreatedAt.Before(end) {
				cents += s.Cost.Cents
			}
		}
		out = append(out, MonthCost{Year: first.Year(), Month: first.Month(), Total: Money{Cents: cents}})
	}
	return out
}
