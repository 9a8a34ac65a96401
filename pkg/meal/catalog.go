package meal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/klokku/mealplanner/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Catalog is the in-memory mirror of all stored meals. It is loaded once and
// then kept in step with every meal it adds.
type Catalog struct {
	mu       sync.RWMutex
	repo     Repository
	eventBus *event_bus.EventBus
	meals    []Meal // ordered by id
}

func NewCatalog(repo Repository, eventBus *event_bus.EventBus) *Catalog {
	return &Catalog{repo: repo, eventBus: eventBus}
}

// Load replaces the mirror with the meals and ingredients currently stored.
func (c *Catalog) Load(ctx context.Context) error {
	meals, err := c.repo.ListMeals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load meals: %w", err)
	}
	for i := range meals {
		ingredients, err := c.repo.ListIngredients(ctx, meals[i].Id)
		if err != nil {
			return fmt.Errorf("failed to load ingredients of meal %d: %w", meals[i].Id, err)
		}
		meals[i].Ingredients = ingredients
	}

	c.mu.Lock()
	c.meals = meals
	c.mu.Unlock()

	log.Debugf("loaded %d meals into catalog", len(meals))
	return nil
}

// AddMeal validates and stores a new meal. The meal and its ingredients are
// written in one transaction; nothing is stored or mirrored when any part fails.
func (c *Catalog) AddMeal(ctx context.Context, category string, name string, ingredients []string) (Meal, error) {
	cat, err := ParseCategory(category)
	if err != nil {
		return Meal{}, err
	}
	validName, err := ValidateName(name)
	if err != nil {
		return Meal{}, err
	}
	validIngredients, err := validateIngredients(ingredients, strings.Join(ingredients, ","))
	if err != nil {
		return Meal{}, err
	}

	c.mu.Lock()
	meal := Meal{
		Id:          len(c.meals) + 1,
		Category:    cat,
		Name:        validName,
		Ingredients: validIngredients,
	}
	err = c.repo.WithTransaction(ctx, func(repo Repository) error {
		if err := repo.InsertMeal(ctx, meal.Category, meal.Name, meal.Id); err != nil {
			return err
		}
		for i, ingredient := range meal.Ingredients {
			if err := repo.InsertIngredient(ctx, ingredient, i+1, meal.Id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.mu.Unlock()
		return Meal{}, fmt.Errorf("failed to store meal: %w", err)
	}
	c.meals = append(c.meals, meal)
	c.mu.Unlock()

	log.Debugf("added meal %d (%s) %s", meal.Id, meal.Category, meal.Name)
	err = c.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.MealAdded, event_bus.MealAddedEvent{
		Id:          meal.Id,
		Category:    string(meal.Category),
		Name:        meal.Name,
		Ingredients: append([]string(nil), meal.Ingredients...),
	}))
	if err != nil {
		log.Warnf("meal %d added but event handling failed: %v", meal.Id, err)
	}

	return copyMeal(meal), nil
}

// ListByCategory returns the meals of a category sorted by name (case-sensitive),
// equal names in the order they were added.
func (c *Catalog) ListByCategory(category Category) []Meal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Meal, 0, len(c.meals))
	for _, m := range c.meals {
		if m.Category == category {
			result = append(result, copyMeal(m))
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// FindByNameAndCategory matches name and category ignoring case. With several
// matches the meal with the lowest id wins.
func (c *Catalog) FindByNameAndCategory(name string, category Category) (Meal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.meals {
		if strings.EqualFold(m.Name, name) && strings.EqualFold(string(m.Category), string(category)) {
			return copyMeal(m), true
		}
	}
	return Meal{}, false
}

// Get returns the meal with the given id.
func (c *Catalog) Get(id int) (Meal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.meals {
		if m.Id == id {
			return copyMeal(m), true
		}
	}
	return Meal{}, false
}

func (c *Catalog) All() []Meal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Meal, 0, len(c.meals))
	for _, m := range c.meals {
		result = append(result, copyMeal(m))
	}
	return result
}

func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.meals)
}

func copyMeal(m Meal) Meal {
	m.Ingredients = append([]string(nil), m.Ingredients...)
	return m
}
