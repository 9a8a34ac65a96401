package weekly_plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/klokku/mealplanner/internal/database"
	"github.com/klokku/mealplanner/pkg/meal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	// ClearPlan deletes every plan entry and returns how many there were.
	ClearPlan(ctx context.Context) (int, error)
	// InsertEntry stores the entry in the slot of its day and category.
	InsertEntry(ctx context.Context, entry PlanEntry) error
	// ListEntries returns the stored entries in planning order.
	ListEntries(ctx context.Context) ([]PlanEntry, error)
	CountEntries(ctx context.Context) (int, error)
}

type RepositoryImpl struct {
	db *database.DB
	tx *sql.Tx
}

func NewRepository(db *database.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db.SQL
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	txRepo := &RepositoryImpl{db: r.db, tx: tx}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *RepositoryImpl) ClearPlan(ctx context.Context) (int, error) {
	result, err := r.getQueryer().ExecContext(ctx, `DELETE FROM plan`)
	if err != nil {
		err := fmt.Errorf("could not clear plan: %w", err)
		log.Error(err)
		return 0, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not count cleared plan entries: %w", err)
	}
	return int(deleted), nil
}

func (r *RepositoryImpl) InsertEntry(ctx context.Context, entry PlanEntry) error {
	slot := Slot(entry.Day, entry.Category)
	if slot < 0 {
		return fmt.Errorf("%w: no cell for %s %s", ErrIncompletePlan, entry.Day, entry.Category)
	}
	query := `INSERT INTO plan (slot, day, meal_category, meal, meal_id) VALUES (?, ?, ?, ?, ?)`

	_, err := r.getQueryer().ExecContext(ctx, r.db.Rebind(query),
		slot, string(entry.Day), string(entry.Category), entry.MealName, entry.MealId)
	if err != nil {
		err := fmt.Errorf("could not insert plan entry for %s %s: %w", entry.Day, entry.Category, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) ListEntries(ctx context.Context) ([]PlanEntry, error) {
	query := `SELECT day, meal_category, meal, meal_id FROM plan ORDER BY slot`

	rows, err := r.getQueryer().QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query plan: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]PlanEntry, 0, CellCount)
	for rows.Next() {
		var day, category string
		var entry PlanEntry
		if err := rows.Scan(&day, &category, &entry.MealName, &entry.MealId); err != nil {
			err := fmt.Errorf("could not scan plan row: %w", err)
			log.Error(err)
			return nil, err
		}
		entry.Day = Day(day)
		entry.Category = meal.Category(category)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read plan: %w", err)
	}
	return entries, nil
}

func (r *RepositoryImpl) CountEntries(ctx context.Context) (int, error) {
	var count int
	if err := r.getQueryer().QueryRowContext(ctx, `SELECT COUNT(*) FROM plan`).Scan(&count); err != nil {
		err := fmt.Errorf("could not count plan entries: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}
