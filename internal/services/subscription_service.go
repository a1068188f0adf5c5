// Package services orchestrates validation, storage, and aggregation. It is
// the single construction boundary for subscription records: raw user input
// is parsed and validated here, never re-validated ad hoc at call sites.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"subtrack/internal/core"
	applog "subtrack/internal/log"
)

// Store is the persistence surface the service needs. *storage.SQLiteRepository
// satisfies it; tests inject an in-memory fake.
type Store interface {
	Insert(ctx context.Context, s core.Subscription) (core.Subscription, error)
	GetAll(ctx context.Context) ([]core.Subscription, error)
	GetByID(ctx context.Context, id int64) (core.Subscription, error)
	Update(ctx context.Context, s core.Subscription) error
	Delete(ctx context.Context, id int64) error
	Close() error
}

// Input carries raw user-entered field values for create and update. Cost may
// be a plain decimal or a currency-formatted string.
type Input struct {
	Name          string
	Category      string
	Cost          string
	RenewalDate   string
	PaymentMethod string
}

// CategoryCost is one category's share of the monthly total.
type CategoryCost struct {
	Category string
	Total    core.Money
	Percent  float64
}

// CostSummary aggregates portfolio-wide costs for presentation.
type CostSummary struct {
	Count      int
	Monthly    core.Money
	Annual     core.Money
	ByCategory []CategoryCost
}

type SubscriptionService struct {
	store Store
	log   *applog.Logger
}

func NewSubscriptionService(store Store) *SubscriptionService {
	return &SubscriptionService{
		store: store,
		log:   applog.New(slog.LevelInfo, applog.ComponentService),
	}
}

// build parses and validates raw input into a typed record.
func build(in Input) (core.Subscription, error) {
	cost, err := core.ParseCost(in.Cost)
	if err != nil {
		return core.Subscription{}, err
	}
	s := core.Subscription{
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		Cost:          cost,
		RenewalDate:   strings.TrimSpace(in.RenewalDate),
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
	}
	if err := s.Validate(); err != nil {
		return core.Subscription{}, err
	}
	return s, nil
}

// Create validates input and inserts a new record.
func (s *SubscriptionService) Create(ctx context.Context, in Input) (core.Subscription, error) {
	sub, err := build(in)
	if err != nil {
		return core.Subscription{}, err
	}
	created, err := s.store.Insert(ctx, sub)
	if err != nil {
		return core.Subscription{}, fmt.Errorf("create subscription: %w", err)
	}
	return created, nil
}

// Get fetches one record by id.
func (s *SubscriptionService) Get(ctx context.Context, id int64) (core.Subscription, error) {
	return s.store.GetByID(ctx, id)
}

// List returns all records ordered by name.
func (s *SubscriptionService) List(ctx context.Context) ([]core.Subscription, error) {
	return s.store.GetAll(ctx)
}

// Update validates input and replaces all mutable fields of the record
// atomically. The id must reference an existing record.
func (s *SubscriptionService) Update(ctx context.Context, id int64, in Input) (core.Subscription, error) {
	sub, err := build(in)
	if err != nil {
		return core.Subscription{}, err
	}
	sub.ID = id
	if err := s.store.Update(ctx, sub); err != nil {
		return core.Subscription{}, fmt.Errorf("update subscription: %w", err)
	}
	return s.store.GetByID(ctx, id)
}

// Delete removes a record by id.
func (s *SubscriptionService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// Search matches query against the selected field of all records.
func (s *SubscriptionService) Search(ctx context.Context, query string, field core.SearchField) ([]core.Subscription, error) {
	subs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return core.Search(subs, query, field)
}

// CostSummary computes totals and the per-category breakdown.
func (s *SubscriptionService) CostSummary(ctx context.Context) (CostSummary, error) {
	subs, err := s.store.GetAll(ctx)
	if err != nil {
		return CostSummary{}, err
	}
	return SummarizeCosts(subs), nil
}

// UpcomingRenewals returns records renewing within the window, soonest first.
func (s *SubscriptionService) UpcomingRenewals(ctx context.Context, today core.Date, windowDays int) ([]core.Renewal, error) {
	subs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	renewals, err := core.UpcomingRenewals(subs, today, windowDays)
	if err != nil {
		s.log.WarnContext(ctx, "Stored renewal date failed to parse", "error", err)
		return nil, err
	}
	return renewals, nil
}

// Overdue returns records whose renewal date has passed, most overdue first.
func (s *SubscriptionService) Overdue(ctx context.Context, today core.Date) ([]core.Overdue, error) {
	subs, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return core.OverdueSubscriptions(subs, today)
}

// Close releases the underlying store.
func (s *SubscriptionService) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// SummarizeCosts is the pure aggregation behind CostSummary. The breakdown is
// sorted by total descending, ties by category name, so output order is
// deterministic.
func SummarizeCosts(subs []core.Subscription) CostSummary {
	monthly := core.TotalMonthlyCost(subs)
	byCat := core.CostByCategory(subs)

	breakdown := make([]CategoryCost, 0, len(byCat))
	for cat, total := range byCat {
		pct := 0.0
		if monthly.Cents > 0 {
			pct = float64(total.Cents) / float64(monthly.Cents) * 100
		}
		breakdown = append(breakdown, CategoryCost{Category: cat, Total: total, Percent: pct})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Total.Cents != breakdown[j].Total.Cents {
			return breakdown[i].Total.Cents > breakdown[j].Total.Cents
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return CostSummary{
		Count:      len(subs),
		Monthly:    monthly,
		Annual:     core.TotalAnnualCost(subs),
		ByCategory: breakdown,
	}
}
