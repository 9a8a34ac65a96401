package meal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/mealplanner/internal/rest"
)

type MealDTO struct {
	Id          int      `json:"id"`
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListMeals godoc
// @Summary List meals
// @Description List meals of one category sorted by name, or all meals ordered by id
// @Tags Meal
// @Produce json
// @Param category query string false "breakfast, lunch or dinner"
// @Success 200 {array} MealDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid category"
// @Router /api/meal [get]
func (h *Handler) ListMeals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var meals []Meal
	if categoryParam := r.URL.Query().Get("category"); categoryParam != "" {
		category, err := ParseCategory(categoryParam)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Wrong meal category",
				Details: "Choose from: breakfast, lunch, dinner",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		meals = h.catalog.ListByCategory(category)
	} else {
		meals = h.catalog.All()
	}

	result := make([]MealDTO, 0, len(meals))
	for _, m := range meals {
		result = append(result, MealToDTO(m))
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateMeal godoc
// @Summary Add a meal
// @Tags Meal
// @Accept json
// @Produce json
// @Param meal body object{category=string,name=string,ingredients=[]string} true "Meal to add"
// @Success 201 {object} MealDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid meal"
// @Router /api/meal [post]
func (h *Handler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var request MealDTO
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.catalog.AddMeal(r.Context(), request.Category, request.Name, request.Ingredients)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid " + validationErr.Field,
				Details: validationErr.Reason,
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(MealToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func MealToDTO(m Meal) MealDTO {
	return MealDTO{
		Id:          m.Id,
		Category:    string(m.Category),
		Name:        m.Name,
		Ingredients: append([]string{}, m.Ingredients...),
	}
}
