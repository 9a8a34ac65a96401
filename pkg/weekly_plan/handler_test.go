package weekly_plan

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klokku/mealplanner/internal/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, *ServiceImpl) {
	service, _, _, catalog := setupService(t)
	return NewHandler(service, catalog), service
}

func weekRequest(breakfast, lunch, dinner string) map[string]any {
	selections := make(map[string]map[string]string, len(Days))
	for _, day := range Days {
		selections[string(day)] = map[string]string{
			"breakfast": breakfast,
			"lunch":     lunch,
			"dinner":    dinner,
		}
	}
	return map[string]any{"selections": selections}
}

func putPlan(t *testing.T, handler *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPut, "/api/weeklyplan", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ReplacePlan(w, req)
	return w
}

func TestHandler_ReplacePlan(t *testing.T) {
	t.Run("should store a complete plan", func(t *testing.T) {
		// given
		handler, service := setupHandlerTest(t)

		// when
		w := putPlan(t, handler, weekRequest("Oatmeal", "soup", "Steak"))

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		var entries []PlanEntryDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
		require.Len(t, entries, 21)
		assert.Equal(t, PlanEntryDTO{Day: "Monday", Category: "lunch", MealName: "soup", MealId: 2}, entries[1])
		count, _ := service.CountEntries(ctx)
		assert.Equal(t, 21, count)
	})

	t.Run("should reject an unknown meal and keep the stored plan", func(t *testing.T) {
		// given
		handler, service := setupHandlerTest(t)
		require.Equal(t, http.StatusOK, putPlan(t, handler, weekRequest("Oatmeal", "Soup", "Steak")).Code)

		// when
		w := putPlan(t, handler, weekRequest("Oatmeal", "Pizza", "Steak"))

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body rest.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Meal doesn't exist", body.Error)
		assert.Contains(t, body.Details, "Pizza")
		assert.Contains(t, body.Details, "Monday")
		plan, _ := service.GetPlan(ctx)
		assert.Equal(t, "Soup", plan[1].MealName)
	})

	t.Run("should reject a missing cell", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		body := weekRequest("Oatmeal", "Soup", "Steak")
		delete(body["selections"].(map[string]map[string]string)["Friday"], "dinner")

		w := putPlan(t, handler, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp rest.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Incomplete plan", resp.Error)
		assert.Equal(t, "no dinner selected for Friday", resp.Details)
	})

	t.Run("should reject unknown days", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		body := weekRequest("Oatmeal", "Soup", "Steak")
		body["selections"].(map[string]map[string]string)["Caturday"] = map[string]string{"lunch": "Soup"}

		w := putPlan(t, handler, body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject malformed body", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		req := httptest.NewRequest(http.MethodPut, "/api/weeklyplan", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()

		handler.ReplacePlan(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetPlan(t *testing.T) {
	t.Run("should return an empty list before planning", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		w := httptest.NewRecorder()

		handler.GetPlan(w, httptest.NewRequest(http.MethodGet, "/api/weeklyplan", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("should return stored entries", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		require.Equal(t, http.StatusOK, putPlan(t, handler, weekRequest("eggs", "Soup", "Steak")).Code)
		w := httptest.NewRecorder()

		handler.GetPlan(w, httptest.NewRequest(http.MethodGet, "/api/weeklyplan", nil))

		var entries []PlanEntryDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
		require.Len(t, entries, 21)
		assert.Equal(t, PlanEntryDTO{Day: "Sunday", Category: "dinner", MealName: "Steak", MealId: 3}, entries[20])
		assert.Equal(t, 4, entries[0].MealId)
	})
}
