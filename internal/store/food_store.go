package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/kondate/internal/domain"
)

const foodColumns = `id, name, purchase_date, expiry_date, quantity`

type FoodStore struct {
	db *sql.DB
}

func NewFoodStore(db *sql.DB) *FoodStore {
	return &FoodStore{db: db}
}

func (s *FoodStore) Create(ctx context.Context, item domain.NewFoodItem) (*domain.FoodItem, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO food_items (name, purchase_date, expiry_date, quantity) VALUES (?, ?, ?, ?)
	`, item.Name, item.PurchaseDate.Format(domain.DateLayout), item.ExpiryDate.Format(domain.DateLayout), item.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to create food item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *FoodStore) GetByID(ctx context.Context, id int64) (*domain.FoodItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+foodColumns+` FROM food_items WHERE id = ?`, id)

	item, err := scanFoodItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get food item: %w", err)
	}

	return item, nil
}

// List returns every item, soonest expiry first.
func (s *FoodStore) List(ctx context.Context) ([]*domain.FoodItem, error) {
	return s.query(ctx, `
		SELECT `+foodColumns+` FROM food_items ORDER BY expiry_date ASC, id ASC
	`)
}

// ListByNameContains returns the items DeleteByNameContains would remove for
// the same substring.
func (s *FoodStore) ListByNameContains(ctx context.Context, substr string) ([]*domain.FoodItem, error) {
	if substr == "" {
		return nil, nil
	}
	return s.query(ctx, `
		SELECT `+foodColumns+` FROM food_items WHERE instr(name, ?) > 0 ORDER BY expiry_date ASC, id ASC
	`, substr)
}

// DeleteByNameContains removes every item whose name contains substr and
// reports how many rows went. Matching is case-sensitive; LIKE is avoided
// because SQLite folds ASCII case for it. An empty substr deletes nothing.
func (s *FoodStore) DeleteByNameContains(ctx context.Context, substr string) (int64, error) {
	if substr == "" {
		return 0, nil
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM food_items WHERE instr(name, ?) > 0
	`, substr)
	if err != nil {
		return 0, fmt.Errorf("failed to delete food items: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (s *FoodStore) DeleteAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM food_items`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset food items: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (s *FoodStore) query(ctx context.Context, query string, args ...any) ([]*domain.FoodItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var items []*domain.FoodItem
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating food items: %w", err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFoodItem(row rowScanner) (*domain.FoodItem, error) {
	var (
		item             domain.FoodItem
		purchase, expiry string
	)
	if err := row.Scan(&item.ID, &item.Name, &purchase, &expiry, &item.Quantity); err != nil {
		return nil, err
	}

	var err error
	if item.PurchaseDate, err = time.Parse(domain.DateLayout, purchase); err != nil {
		return nil, fmt.Errorf("invalid purchase_date %q for item %d: %w", purchase, item.ID, err)
	}
	if item.ExpiryDate, err = time.Parse(domain.DateLayout, expiry); err != nil {
		return nil, fmt.Errorf("invalid expiry_date %q for item %d: %w", expiry, item.ID, err)
	}

	return &item, nil
}
