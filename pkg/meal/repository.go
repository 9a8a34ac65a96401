package meal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/klokku/mealplanner/internal/database"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	// ListMeals returns all meals ordered by id, without their ingredients.
	ListMeals(ctx context.Context) ([]Meal, error)
	// ListIngredients returns the ingredients of a meal in the order they were entered.
	ListIngredients(ctx context.Context, mealId int) ([]string, error)
	InsertMeal(ctx context.Context, category Category, name string, id int) error
	InsertIngredient(ctx context.Context, name string, ordinal int, mealId int) error
}

type RepositoryImpl struct {
	db *database.DB
	tx *sql.Tx
}

func NewRepository(db *database.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db, tx: nil}
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

func (r *RepositoryImpl) ListMeals(ctx context.Context) ([]Meal, error) {
	query := `SELECT meal_id, category, meal FROM meals ORDER BY meal_id`

	rows, err := r.getQueryer().QueryContext(ctx, r.db.Rebind(query))
	if err != nil {
		err := fmt.Errorf("could not query meals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	meals := make([]Meal, 0, 16)
	for rows.Next() {
		var m Meal
		var category string
		if err := rows.Scan(&m.Id, &category, &m.Name); err != nil {
			err := fmt.Errorf("could not scan meal row: %w", err)
			log.Error(err)
			return nil, err
		}
		m.Category = Category(category)
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read meals: %w", err)
	}
	return meals, nil
}

func (r *RepositoryImpl) ListIngredients(ctx context.Context, mealId int) ([]string, error) {
	query := `SELECT ingredient FROM ingredients WHERE meal_id = ? ORDER BY ingredient_id`

	rows, err := r.getQueryer().QueryContext(ctx, r.db.Rebind(query), mealId)
	if err != nil {
		err := fmt.Errorf("could not query ingredients of meal %d: %w", mealId, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	ingredients := make([]string, 0, 8)
	for rows.Next() {
		var ingredient string
		if err := rows.Scan(&ingredient); err != nil {
			err := fmt.Errorf("could not scan ingredient row: %w", err)
			log.Error(err)
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read ingredients of meal %d: %w", mealId, err)
	}
	return ingredients, nil
}

func (r *RepositoryImpl) InsertMeal(ctx context.Context, category Category, name string, id int) error {
	query := `INSERT INTO meals (meal_id, category, meal) VALUES (?, ?, ?)`

	if _, err := r.getQueryer().ExecContext(ctx, r.db.Rebind(query), id, string(category), name); err != nil {
		err := fmt.Errorf("could not insert meal %d: %w", id, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) InsertIngredient(ctx context.Context, name string, ordinal int, mealId int) error {
	query := `INSERT INTO ingredients (meal_id, ingredient_id, ingredient) VALUES (?, ?, ?)`

	if _, err := r.getQueryer().ExecContext(ctx, r.db.Rebind(query), mealId, ordinal, name); err != nil {
		err := fmt.Errorf("could not insert ingredient %d of meal %d: %w", ordinal, mealId, err)
		log.Error(err)
		return err
	}
	return nil
}
