package weekly_plan

import (
	"strings"

	"github.com/klokku/mealplanner/pkg/meal"
)

type CatalogReader interface {
	ListByCategory(category meal.Category) []meal.Meal
	FindByNameAndCategory(name string, category meal.Category) (meal.Meal, bool)
}

// Builder walks the week cell by cell, Monday to Sunday and breakfast to dinner,
// accepting one selection per cell. It only collects entries; Service.Rebuild stores them.
type Builder struct {
	catalog CatalogReader
	entries []PlanEntry
}

func NewBuilder(catalog CatalogReader) *Builder {
	return &Builder{
		catalog: catalog,
		entries: make([]PlanEntry, 0, CellCount),
	}
}

// Current returns the cell awaiting a selection, or false once the plan is complete.
func (b *Builder) Current() (Day, meal.Category, bool) {
	if b.Done() {
		return "", "", false
	}
	cell := len(b.entries)
	return Days[cell/len(meal.Categories)], meal.Categories[cell%len(meal.Categories)], true
}

// Candidates lists the meals that can be chosen for the current cell, sorted by name.
func (b *Builder) Candidates() []meal.Meal {
	_, category, ok := b.Current()
	if !ok {
		return nil
	}
	return b.catalog.ListByCategory(category)
}

// Select resolves selection against the catalog for the current cell. On a miss
// it returns a *NoSuchMealError and stays on the same cell.
func (b *Builder) Select(selection string) (PlanEntry, error) {
	day, category, ok := b.Current()
	if !ok {
		return PlanEntry{}, ErrIncompletePlan
	}
	selection = strings.TrimSpace(selection)
	m, found := b.catalog.FindByNameAndCategory(selection, category)
	if !found {
		return PlanEntry{}, &NoSuchMealError{Day: day, Category: category, Selection: selection}
	}
	entry := PlanEntry{
		Day:      day,
		Category: category,
		MealName: selection,
		MealId:   m.Id,
	}
	b.entries = append(b.entries, entry)
	return entry, nil
}

// DayCompleted reports whether the last accepted selection filled the last cell of a day.
func (b *Builder) DayCompleted() bool {
	n := len(b.entries)
	return n > 0 && n%len(meal.Categories) == 0
}

func (b *Builder) Done() bool {
	return len(b.entries) == CellCount
}

// Entries returns the accepted entries in planning order.
func (b *Builder) Entries() []PlanEntry {
	return append([]PlanEntry(nil), b.entries...)
}
