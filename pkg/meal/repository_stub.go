package meal

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type ingredientRow struct {
	name    string
	ordinal int
}

type RepositoryStub struct {
	mu          sync.Mutex
	meals       map[int]Meal
	ingredients map[int][]ingredientRow
	// failInsert makes InsertIngredient fail once it has been called that many times.
	failInsert  error
	insertCalls int
	failAfter   int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		meals:       make(map[int]Meal),
		ingredients: make(map[int][]ingredientRow),
	}
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	originalMeals := make(map[int]Meal, len(r.meals))
	for k, v := range r.meals {
		originalMeals[k] = v
	}
	originalIngredients := make(map[int][]ingredientRow, len(r.ingredients))
	for k, v := range r.ingredients {
		originalIngredients[k] = append([]ingredientRow(nil), v...)
	}
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.meals = originalMeals
		r.ingredients = originalIngredients
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *RepositoryStub) ListMeals(ctx context.Context) ([]Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Meal, 0, len(r.meals))
	for _, m := range r.meals {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (r *RepositoryStub) ListIngredients(ctx context.Context, mealId int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := append([]ingredientRow(nil), r.ingredients[mealId]...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].ordinal < rows[j].ordinal })
	result := make([]string, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.name)
	}
	return result, nil
}

func (r *RepositoryStub) InsertMeal(ctx context.Context, category Category, name string, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meals[id]; exists {
		return fmt.Errorf("meal %d already exists", id)
	}
	r.meals[id] = Meal{Id: id, Category: category, Name: name}
	return nil
}

func (r *RepositoryStub) InsertIngredient(ctx context.Context, name string, ordinal int, mealId int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insertCalls++
	if r.failInsert != nil && r.insertCalls > r.failAfter {
		return r.failInsert
	}
	if _, exists := r.meals[mealId]; !exists {
		return fmt.Errorf("meal %d does not exist", mealId)
	}
	r.ingredients[mealId] = append(r.ingredients[mealId], ingredientRow{name: name, ordinal: ordinal})
	return nil
}

// FailIngredientInsertsAfter makes every InsertIngredient call after the first n return err.
func (r *RepositoryStub) FailIngredientInsertsAfter(n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failAfter = n
	r.failInsert = err
	r.insertCalls = 0
}

// MealCount returns the number of stored meals (useful for test assertions)
func (r *RepositoryStub) MealCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.meals)
}

// Reset clears the stub (useful between tests)
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meals = make(map[int]Meal)
	r.ingredients = make(map[int][]ingredientRow)
	r.failInsert = nil
	r.insertCalls = 0
	r.failAfter = 0
}
