package shopping_list

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/mealplanner/internal/event_bus"
	"github.com/klokku/mealplanner/pkg/weekly_plan"
	log "github.com/sirupsen/logrus"
)

var ErrPlanNotReady = errors.New("no plan stored")

type Service interface {
	// Build aggregates the ingredients of every planned meal.
	Build(ctx context.Context) (*ShoppingList, error)
	// Save builds the list and exports it to target. It returns where the list was written.
	Save(ctx context.Context, target string) (*ShoppingList, string, error)
}

type PlanReader interface {
	GetPlan(ctx context.Context) ([]weekly_plan.PlanEntry, error)
	CountEntries(ctx context.Context) (int, error)
}

type IngredientReader interface {
	ListIngredients(ctx context.Context, mealId int) ([]string, error)
}

type ServiceImpl struct {
	plan        PlanReader
	ingredients IngredientReader
	exporter    Exporter
	eventBus    *event_bus.EventBus
}

func NewService(plan PlanReader, ingredients IngredientReader, exporter Exporter, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		plan:        plan,
		ingredients: ingredients,
		exporter:    exporter,
		eventBus:    eventBus,
	}
}

func (s *ServiceImpl) Build(ctx context.Context) (*ShoppingList, error) {
	count, err := s.plan.CountEntries(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPlanNotReady
	}

	entries, err := s.plan.GetPlan(ctx)
	if err != nil {
		return nil, err
	}

	list := New()
	for _, entry := range entries {
		ingredients, err := s.ingredients.ListIngredients(ctx, entry.MealId)
		if err != nil {
			return nil, fmt.Errorf("failed to read ingredients of meal %d: %w", entry.MealId, err)
		}
		for _, ingredient := range ingredients {
			list.Add(ingredient)
		}
	}
	log.Debugf("shopping list built from %d plan entries: %d items", len(entries), list.Distinct())
	return list, nil
}

func (s *ServiceImpl) Save(ctx context.Context, target string) (*ShoppingList, string, error) {
	list, err := s.Build(ctx)
	if err != nil {
		return nil, "", err
	}

	location, err := s.exporter.Export(ctx, target, []byte(list.Render()))
	if err != nil {
		return nil, "", fmt.Errorf("failed to save shopping list: %w", err)
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ShoppingListSaved, event_bus.ShoppingListSavedEvent{
		Target:   location,
		Distinct: list.Distinct(),
		Total:    list.Total(),
	}))
	if err != nil {
		log.Warnf("shopping list saved to %s but event handling failed: %v", location, err)
	}

	return list, location, nil
}
