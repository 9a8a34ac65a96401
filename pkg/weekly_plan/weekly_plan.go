package weekly_plan

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/klokku/mealplanner/pkg/meal"
)

type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days is the order in which a week is planned and printed.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// CellCount is the number of day/category cells in a complete plan.
var CellCount = len(Days) * len(meal.Categories)

type PlanEntry struct {
	Day      Day
	Category meal.Category
	// MealName is the selection as the user typed it; MealId is the meal it resolved to.
	MealName string
	MealId   int
}

var ErrNoSuchMeal = errors.New("meal doesn't exist")
var ErrIncompletePlan = errors.New("plan must have exactly one meal per day and category")
var ErrUnknownDay = errors.New("unknown day")

// NoSuchMealError is returned for a selection that matches no meal of the cell's category.
type NoSuchMealError struct {
	Day       Day
	Category  meal.Category
	Selection string
}

func (e *NoSuchMealError) Error() string {
	return fmt.Sprintf("no %s named %q for %s", e.Category, e.Selection, e.Day)
}

func (e *NoSuchMealError) Is(target error) bool {
	return target == ErrNoSuchMeal
}

// ParseDay accepts a day name in any case.
func ParseDay(s string) (Day, error) {
	for _, d := range Days {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDay, s)
}

// Slot is the position of a cell in planning order: Monday breakfast is 0, Sunday dinner 20.
// It returns -1 for an unknown day or category.
func Slot(day Day, category meal.Category) int {
	d := -1
	for i, candidate := range Days {
		if candidate == day {
			d = i
			break
		}
	}
	c := -1
	for i, candidate := range meal.Categories {
		if candidate == category {
			c = i
			break
		}
	}
	if d < 0 || c < 0 {
		return -1
	}
	return d*len(meal.Categories) + c
}

// Capitalize upper-cases the first character and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
