package shopping_list

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klokku/mealplanner/pkg/meal"
	"github.com/klokku/mealplanner/pkg/weekly_plan"
	"github.com/stretchr/testify/assert"
)

func TestHandler_GetShoppingList(t *testing.T) {
	t.Run("should return the rendered list", func(t *testing.T) {
		plan := &planStub{entries: []weekly_plan.PlanEntry{
			{Day: weekly_plan.Monday, Category: meal.Breakfast, MealName: "Omelette", MealId: 1},
			{Day: weekly_plan.Monday, Category: meal.Lunch, MealName: "Salad", MealId: 2},
		}}
		handler := NewHandler(NewService(plan, setupMeals(t), &exporterStub{}, nil))
		w := httptest.NewRecorder()

		handler.GetShoppingList(w, httptest.NewRequest(http.MethodGet, "/api/shoppinglist", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "Egg x2\nMilk\nLettuce\n", w.Body.String())
	})

	t.Run("should return conflict without a plan", func(t *testing.T) {
		handler := NewHandler(NewService(&planStub{}, setupMeals(t), &exporterStub{}, nil))
		w := httptest.NewRecorder()

		handler.GetShoppingList(w, httptest.NewRequest(http.MethodGet, "/api/shoppinglist", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Plan your meals first")
	})
}
