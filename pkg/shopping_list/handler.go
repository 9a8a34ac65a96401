package shopping_list

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klokku/mealplanner/internal/rest"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetShoppingList godoc
// @Summary Get the shopping list
// @Description Ingredients of the stored plan, one line per ingredient in the saved file format
// @Tags ShoppingList
// @Produce plain
// @Success 200 {string} string "Shopping list"
// @Failure 409 {object} rest.ErrorResponse "No plan stored"
// @Router /api/shoppinglist [get]
func (h *Handler) GetShoppingList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.Build(r.Context())
	if err != nil {
		if errors.Is(err, ErrPlanNotReady) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Unable to build shopping list",
				Details: "Plan your meals first",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write([]byte(list.Render())); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
