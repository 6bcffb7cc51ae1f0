package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // CGO-less SQLite driver

	"meal-planning-assistant/internal/plan"
	"meal-planning-assistant/internal/plan/repository"
)

// Store is a SQLite-backed plan repository. Plan days and grocery
// categories are stored as JSON columns; the orchestrator only needs
// whole-record reads and writes keyed by id.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dsn and applies the schema.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000; PRAGMA foreign_keys=ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS meal_plans (
    id         TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL DEFAULT '',
    title      TEXT NOT NULL,
    dietary    TEXT NOT NULL DEFAULT '',
    days       TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS grocery_lists (
    id              TEXT PRIMARY KEY,
    meal_plan_id    TEXT NOT NULL REFERENCES meal_plans(id),
    user_id         TEXT NOT NULL DEFAULT '',
    currency        TEXT NOT NULL DEFAULT '',
    categories      TEXT NOT NULL,
    estimated_total REAL NOT NULL DEFAULT 0,
    created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meal_plans_user ON meal_plans(user_id);
CREATE INDEX IF NOT EXISTS idx_grocery_lists_plan ON grocery_lists(meal_plan_id);
`)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateMealPlan(ctx context.Context, p *plan.MealPlan) error {
	days, err := json.Marshal(p.Days)
	if err != nil {
		return fmt.Errorf("marshal days: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO meal_plans (id, user_id, title, dietary, days, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Title, p.Dietary, string(days),
		p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetMealPlan(ctx context.Context, id string) (*plan.MealPlan, error) {
	var p plan.MealPlan
	var days, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, dietary, days, created_at, updated_at FROM meal_plans WHERE id = ?`, id).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Dietary, &days, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(days), &p.Days); err != nil {
		return nil, fmt.Errorf("unmarshal days: %w", err)
	}
	if t, e := time.Parse(time.RFC3339, createdAt); e == nil {
		p.CreatedAt = t
	}
	if t, e := time.Parse(time.RFC3339, updatedAt); e == nil {
		p.UpdatedAt = t
	}
	return &p, nil
}

func (s *Store) UpdateMealPlan(ctx context.Context, p *plan.MealPlan) error {
	days, err := json.Marshal(p.Days)
	if err != nil {
		return fmt.Errorf("marshal days: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE meal_plans SET title = ?, dietary = ?, days = ?, updated_at = ? WHERE id = ?`,
		p.Title, p.Dietary, string(days), p.UpdatedAt.Format(time.RFC3339), p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) CreateGroceryList(ctx context.Context, g *plan.GroceryList) error {
	categories, err := json.Marshal(g.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO grocery_lists (id, meal_plan_id, user_id, currency, categories, estimated_total, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.MealPlanID, g.UserID, g.Currency, string(categories), g.EstimatedTotal,
		g.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetGroceryList(ctx context.Context, id string) (*plan.GroceryList, error) {
	var g plan.GroceryList
	var categories, createdAt string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, meal_plan_id, user_id, currency, categories, estimated_total, created_at FROM grocery_lists WHERE id = ?`, id).
		Scan(&g.ID, &g.MealPlanID, &g.UserID, &g.Currency, &categories, &g.EstimatedTotal, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(categories), &g.Categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	if t, e := time.Parse(time.RFC3339, createdAt); e == nil {
		g.CreatedAt = t
	}
	return &g, nil
}

var _ repository.Repository = (*Store)(nil)
