package weekly_plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/klokku/mealplanner/internal/rest"
	"github.com/klokku/mealplanner/pkg/meal"
)

type PlanEntryDTO struct {
	Day      string `json:"day"`
	Category string `json:"category"`
	MealName string `json:"mealName"`
	MealId   int    `json:"mealId"`
}

type Handler struct {
	service Service
	catalog CatalogReader
}

func NewHandler(service Service, catalog CatalogReader) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
	}
}

// GetPlan godoc
// @Summary Get the weekly plan
// @Description Retrieve the stored plan entries, Monday breakfast first
// @Tags WeeklyPlan
// @Produce json
// @Success 200 {array} PlanEntryDTO
// @Router /api/weeklyplan [get]
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entries, err := h.service.GetPlan(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(PlanEntriesToDTO(entries)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ReplacePlan godoc
// @Summary Replace the weekly plan
// @Description Plan all 21 cells at once. Selections are matched against the catalog ignoring case.
// @Tags WeeklyPlan
// @Accept json
// @Produce json
// @Param plan body object{selections=map[string]map[string]string} true "Meal name per day and category"
// @Success 200 {array} PlanEntryDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/weeklyplan [put]
func (h *Handler) ReplacePlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request struct {
		Selections map[string]map[string]string `json:"selections"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		return
	}

	selections, err := normalizeSelections(request.Selections)
	if err != nil {
		writeError(w, http.StatusBadRequest, rest.ErrorResponse{
			Error:   "Invalid selections",
			Details: err.Error(),
		})
		return
	}

	builder := NewBuilder(h.catalog)
	for {
		day, category, ok := builder.Current()
		if !ok {
			break
		}
		selection, found := selections[day][category]
		if !found {
			writeError(w, http.StatusBadRequest, rest.ErrorResponse{
				Error:   "Incomplete plan",
				Details: fmt.Sprintf("no %s selected for %s", category, day),
			})
			return
		}
		if _, err := builder.Select(selection); err != nil {
			if errors.Is(err, ErrNoSuchMeal) {
				writeError(w, http.StatusBadRequest, rest.ErrorResponse{
					Error:   "Meal doesn't exist",
					Details: err.Error(),
				})
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	stored, err := h.service.Rebuild(r.Context(), builder.Entries())
	if err != nil {
		if errors.Is(err, ErrIncompletePlan) {
			writeError(w, http.StatusBadRequest, rest.ErrorResponse{
				Error:   "Incomplete plan",
				Details: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(PlanEntriesToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// normalizeSelections maps request keys onto known days and categories, ignoring case.
func normalizeSelections(raw map[string]map[string]string) (map[Day]map[meal.Category]string, error) {
	result := make(map[Day]map[meal.Category]string, len(raw))
	for dayName, cells := range raw {
		day, err := ParseDay(dayName)
		if err != nil {
			return nil, err
		}
		if result[day] == nil {
			result[day] = make(map[meal.Category]string, len(cells))
		}
		for categoryName, selection := range cells {
			category, err := meal.ParseCategory(categoryName)
			if err != nil {
				return nil, err
			}
			result[day][category] = selection
		}
	}
	return result, nil
}

func writeError(w http.ResponseWriter, status int, body rest.ErrorResponse) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func PlanEntriesToDTO(entries []PlanEntry) []PlanEntryDTO {
	result := make([]PlanEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, PlanEntryDTO{
			Day:      string(entry.Day),
			Category: string(entry.Category),
			MealName: entry.MealName,
			MealId:   entry.MealId,
		})
	}
	return result
}
