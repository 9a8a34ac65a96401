package event_bus

type MealAddedEvent struct {
	Id          int
	Category    string
	Name        string
	Ingredients []string
}

type PlannedMeal struct {
	Day      string
	Category string
	MealName string
	MealId   int
}

type PlanRebuiltEvent struct {
	Entries []PlannedMeal
}

type ShoppingListSavedEvent struct {
	Target string
	// Distinct is the number of lines written, Total the sum of all counts.
	Distinct int
	Total    int
}
