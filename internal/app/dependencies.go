package app

import (
	"context"
	"fmt"

	"github.com/klokku/mealplanner/internal/config"
	"github.com/klokku/mealplanner/internal/database"
	"github.com/klokku/mealplanner/internal/event_bus"
	"github.com/klokku/mealplanner/internal/metrics"
	"github.com/klokku/mealplanner/pkg/meal"
	"github.com/klokku/mealplanner/pkg/shopping_list"
	"github.com/klokku/mealplanner/pkg/weekly_plan"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus    *event_bus.EventBus
	Metrics     *metrics.Metrics
	Unsubscribe func()

	MealRepo    meal.Repository
	Catalog     *meal.Catalog
	MealHandler *meal.Handler

	PlanRepo    weekly_plan.Repository
	PlanService *weekly_plan.ServiceImpl
	PlanHandler *weekly_plan.Handler

	Exporter            shopping_list.Exporter
	ShoppingListService *shopping_list.ServiceImpl
	ShoppingListHandler *shopping_list.Handler
}

// BuildDependencies initializes and wires all application services and handlers,
// then loads the meal catalog from the database.
func BuildDependencies(ctx context.Context, db *database.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Metrics = metrics.New()
	deps.Unsubscribe = deps.Metrics.Subscribe(deps.EventBus)

	deps.MealRepo = meal.NewRepository(db)
	deps.Catalog = meal.NewCatalog(deps.MealRepo, deps.EventBus)
	deps.MealHandler = meal.NewHandler(deps.Catalog)

	deps.PlanRepo = weekly_plan.NewRepository(db)
	deps.PlanService = weekly_plan.NewService(deps.PlanRepo, deps.EventBus)
	deps.PlanHandler = weekly_plan.NewHandler(deps.PlanService, deps.Catalog)

	exporter, err := shopping_list.NewExporter(ctx, cfg.Export)
	if err != nil {
		deps.Unsubscribe()
		return nil, fmt.Errorf("failed to create shopping list exporter: %w", err)
	}
	deps.Exporter = exporter
	deps.ShoppingListService = shopping_list.NewService(deps.PlanService, deps.MealRepo, deps.Exporter, deps.EventBus)
	deps.ShoppingListHandler = shopping_list.NewHandler(deps.ShoppingListService)

	if err := deps.Catalog.Load(ctx); err != nil {
		deps.Unsubscribe()
		return nil, err
	}

	return deps, nil
}
