// Package storage persists subscription rows in a local SQLite database.
// Field validation happens at the service boundary; the schema only keeps the
// cost-positivity check.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"subtrack/internal/core"
	applog "subtrack/internal/log"
)

const createdAtLayout = "2006-01-02 15:04:05"

type SQLiteRepository struct {
	db  *sqlx.DB
	log *applog.Logger
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:  db,
		log: applog.New(slog.LevelInfo, applog.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

type subscriptionRow struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	Category      string `db:"category"`
	CostCents     int64  `db:"cost_cents"`
	RenewalDate   string `db:"renewal_date"`
	PaymentMethod string `db:"payment_method"`
	CreatedAt     string `db:"created_at"`
}

func (row subscriptionRow) toCore() core.Subscription {
	createdAt, err := time.Parse(createdAtLayout, row.CreatedAt)
	if err != nil {
		// Rows written by the schema default carry the same layout; anything
		// else is left as the zero time rather than failing a read.
		createdAt = time.Time{}
	}
	return core.Subscription{
		ID:            row.ID,
		Name:          row.Name,
		Category:      row.Category,
		Cost:          core.Money{Cents: row.CostCents},
		RenewalDate:   row.RenewalDate,
		PaymentMethod: row.PaymentMethod,
		CreatedAt:     createdAt,
	}
}

// Insert stores a new subscription and returns it with the assigned id and
// creation timestamp filled in.
func (r *SQLiteRepository) Insert(ctx context.Context, s core.Subscription) (core.Subscription, error) {
	createdAt := time.Now().UTC().Format(createdAtLayout)

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (name, category, cost_cents, renewal_date, payment_method, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.Name, s.Category, s.Cost.Cents, s.RenewalDate, s.PaymentMethod, createdAt)
	if err != nil {
		return core.Subscription{}, storeErr("insert subscription", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Subscription{}, storeErr("read inserted id", err)
	}

	s.ID = id
	s.CreatedAt, _ = time.Parse(createdAtLayout, createdAt)

	r.log.InfoContext(ctx, "Subscription saved",
		"id", s.ID,
		"name", s.Name,
		"category", s.Category,
		"cost_cents", s.Cost.Cents)

	return s, nil
}

// GetAll returns every subscription ordered by name then id.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]core.Subscription, error) {
	var rows []subscriptionRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, category, cost_cents, renewal_date, payment_method, created_at
		FROM subscriptions
		ORDER BY name, id`)
	if err != nil {
		return nil, storeErr("select subscriptions", err)
	}

	subs := make([]core.Subscription, len(rows))
	for i, row := range rows {
		subs[i] = row.toCore()
	}
	return subs, nil
}

// GetByID fetches one subscription. A missing id is core.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (core.Subscription, error) {
	var row subscriptionRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, name, category, cost_cents, renewal_date, payment_method, created_at
		FROM subscriptions
		WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Subscription{}, fmt.Errorf("subscription %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Subscription{}, storeErr("select subscription by id", err)
	}
	return row.toCore(), nil
}

// Update replaces all mutable fields of the row in one statement. The id and
// creation timestamp never change.
func (r *SQLiteRepository) Update(ctx context.Context, s core.Subscription) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET name = ?, category = ?, cost_cents = ?, renewal_date = ?, payment_method = ?
		WHERE id = ?`,
		s.Name, s.Category, s.Cost.Cents, s.RenewalDate, s.PaymentMethod, s.ID)
	if err != nil {
		return storeErr("update subscription", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("read update result", err)
	}
	if affected == 0 {
		return fmt.Errorf("subscription %d: %w", s.ID, core.ErrNotFound)
	}

	r.log.InfoContext(ctx, "Subscription updated", "id", s.ID, "name", s.Name)
	return nil
}

// Delete removes a row by id. A missing id is core.ErrNotFound.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return storeErr("delete subscription", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr("read delete result", err)
	}
	if affected == 0 {
		return fmt.Errorf("subscription %d: %w", id, core.ErrNotFound)
	}

	r.log.InfoContext(ctx, "Subscription deleted", "id", id)
	return nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(core.ErrStoreFailure, err))
}
