package weekly_plan

import (
	"errors"
	"testing"

	"github.com/klokku/mealplanner/internal/event_bus"
	"github.com/klokku/mealplanner/pkg/meal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*ServiceImpl, *RepositoryStub, *event_bus.EventBus, *meal.Catalog) {
	repo := NewRepositoryStub()
	bus := event_bus.NewEventBus()
	return NewService(repo, bus), repo, bus, setupCatalog(t)
}

func TestService_Rebuild(t *testing.T) {
	t.Run("should store all 21 entries and publish the plan", func(t *testing.T) {
		// given
		service, repo, bus, catalog := setupService(t)
		var published []event_bus.PlanRebuiltEvent
		event_bus.SubscribeTyped(bus, event_bus.PlanRebuilt, func(e event_bus.EventT[event_bus.PlanRebuiltEvent]) error {
			published = append(published, e.Data)
			return nil
		})
		entries := planWeek(t, NewBuilder(catalog), defaultSelections)

		// when
		stored, err := service.Rebuild(ctx, entries)

		// then
		require.NoError(t, err)
		assert.Equal(t, entries, stored)
		count, _ := repo.CountEntries(ctx)
		assert.Equal(t, 21, count)
		require.Len(t, published, 1)
		require.Len(t, published[0].Entries, 21)
		assert.Equal(t, event_bus.PlannedMeal{Day: "Monday", Category: "breakfast", MealName: "oatmeal", MealId: 1}, published[0].Entries[0])
	})

	t.Run("should replace a previous plan", func(t *testing.T) {
		// given
		service, _, _, catalog := setupService(t)
		_, err := service.Rebuild(ctx, planWeek(t, NewBuilder(catalog), defaultSelections))
		require.NoError(t, err)

		// when
		_, err = service.Rebuild(ctx, planWeek(t, NewBuilder(catalog), map[meal.Category]string{
			meal.Breakfast: "Eggs",
			meal.Lunch:     "soup",
			meal.Dinner:    "Steak",
		}))

		// then
		require.NoError(t, err)
		count, err := service.CountEntries(ctx)
		require.NoError(t, err)
		assert.Equal(t, 21, count)
		plan, err := service.GetPlan(ctx)
		require.NoError(t, err)
		for _, entry := range plan {
			if entry.Category == meal.Breakfast {
				assert.Equal(t, "Eggs", entry.MealName)
				assert.Equal(t, 4, entry.MealId)
			}
		}
	})

	t.Run("should keep the previous plan when storing fails midway", func(t *testing.T) {
		// given
		service, repo, _, catalog := setupService(t)
		first := planWeek(t, NewBuilder(catalog), defaultSelections)
		_, err := service.Rebuild(ctx, first)
		require.NoError(t, err)
		boom := errors.New("disk full")
		repo.FailInsertsAfter(5, boom)

		// when
		_, err = service.Rebuild(ctx, planWeek(t, NewBuilder(catalog), map[meal.Category]string{
			meal.Breakfast: "Eggs",
			meal.Lunch:     "Soup",
			meal.Dinner:    "Steak",
		}))

		// then
		require.ErrorIs(t, err, boom)
		plan, err := service.GetPlan(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, plan)
	})

	t.Run("should rebuild from scratch once the store is reset", func(t *testing.T) {
		// given
		service, repo, _, catalog := setupService(t)
		_, err := service.Rebuild(ctx, planWeek(t, NewBuilder(catalog), defaultSelections))
		require.NoError(t, err)
		repo.FailInsertsAfter(0, errors.New("disk full"))
		repo.Reset()

		// when
		count, err := service.CountEntries(ctx)
		require.NoError(t, err)
		stored, rebuildErr := service.Rebuild(ctx, planWeek(t, NewBuilder(catalog), defaultSelections))

		// then
		assert.Zero(t, count)
		require.NoError(t, rebuildErr)
		assert.Len(t, stored, 21)
	})

	t.Run("should reject a plan with missing cells", func(t *testing.T) {
		service, repo, _, catalog := setupService(t)
		entries := planWeek(t, NewBuilder(catalog), defaultSelections)

		_, err := service.Rebuild(ctx, entries[:20])

		require.ErrorIs(t, err, ErrIncompletePlan)
		count, _ := repo.CountEntries(ctx)
		assert.Zero(t, count)
	})

	t.Run("should reject a plan with a cell planned twice", func(t *testing.T) {
		service, _, _, catalog := setupService(t)
		entries := planWeek(t, NewBuilder(catalog), defaultSelections)
		entries[20] = entries[0]

		_, err := service.Rebuild(ctx, entries)

		require.ErrorIs(t, err, ErrIncompletePlan)
	})

	t.Run("should store entries in grid order whatever the input order", func(t *testing.T) {
		service, _, _, catalog := setupService(t)
		entries := planWeek(t, NewBuilder(catalog), defaultSelections)
		reversed := make([]PlanEntry, 0, len(entries))
		for i := len(entries) - 1; i >= 0; i-- {
			reversed = append(reversed, entries[i])
		}

		_, err := service.Rebuild(ctx, reversed)
		require.NoError(t, err)

		plan, err := service.GetPlan(ctx)
		require.NoError(t, err)
		assert.Equal(t, entries, plan)
	})
}

func TestService_GetPlan(t *testing.T) {
	t.Run("should return empty plan before planning", func(t *testing.T) {
		service, _, _, _ := setupService(t)

		plan, err := service.GetPlan(ctx)

		require.NoError(t, err)
		assert.Empty(t, plan)
	})
}
