package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Meals
	r.HandleFunc("/api/meal", deps.MealHandler.ListMeals).Methods("GET")
	r.HandleFunc("/api/meal", deps.MealHandler.CreateMeal).Methods("POST")

	// Weekly plan
	r.HandleFunc("/api/weeklyplan", deps.PlanHandler.GetPlan).Methods("GET")
	r.HandleFunc("/api/weeklyplan", deps.PlanHandler.ReplacePlan).Methods("PUT")

	// Shopping list
	r.HandleFunc("/api/shoppinglist", deps.ShoppingListHandler.GetShoppingList).Methods("GET")

	// Metrics
	r.Handle("/metrics", deps.Metrics.Handler()).Methods("GET")
}
