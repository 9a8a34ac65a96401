package cli

const (
	msgMenu          = "What would you like to do (add, show, plan, save, exit)?"
	msgAddCategory   = "Which meal do you want to add (breakfast, lunch, dinner)?"
	msgWrongCategory = "Wrong meal category! Choose from: breakfast, lunch, dinner."
	msgMealName      = "Input the meal's name:"
	msgWrongFormat   = "Wrong format. Use letters only!"
	msgIngredients   = "Input the ingredients:"
	msgMealAdded     = "The meal has been added!"
	msgShowCategory  = "Which category do you want to print (breakfast, lunch, dinner)?"
	msgNoMeals       = "No meals found."
	msgChooseMeal    = "Choose the %s for %s from the list above:"
	msgNoSuchMeal    = "This meal doesn’t exist. Choose a meal from the list above."
	msgDayPlanned    = "Yeah! We planned the meals for %s."
	msgPlanFirst     = "Unable to save. Plan your meals first."
	msgFilename      = "Input a filename:"
	msgSaved         = "Saved!"
	msgBye           = "Bye!"
	msgError         = "Error: %v"
)
