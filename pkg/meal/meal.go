package meal

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Category string

const (
	Breakfast Category = "breakfast"
	Lunch     Category = "lunch"
	Dinner    Category = "dinner"
)

// Categories lists the meal categories in the order a day is planned.
var Categories = []Category{Breakfast, Lunch, Dinner}

type Meal struct {
	Id          int
	Category    Category
	Name        string
	Ingredients []string
}

var ErrValidation = errors.New("validation failed")

const (
	FieldCategory    = "category"
	FieldName        = "name"
	FieldIngredients = "ingredients"
)

// ValidationError describes a rejected field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var lettersOnly = regexp.MustCompile(`^[A-Za-z ]+$`)

var ingredientSeparator = regexp.MustCompile(`,\s*`)

// ParseCategory accepts a category in any case, surrounded by any whitespace.
func ParseCategory(input string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(input)))
	switch c {
	case Breakfast, Lunch, Dinner:
		return c, nil
	}
	return "", &ValidationError{Field: FieldCategory, Input: input, Reason: "must be one of breakfast, lunch, dinner"}
}

// ValidateName trims the name and checks that it only holds letters and spaces.
func ValidateName(input string) (string, error) {
	name := strings.TrimSpace(input)
	if !lettersOnly.MatchString(name) {
		return "", &ValidationError{Field: FieldName, Input: input, Reason: "use letters only"}
	}
	return name, nil
}

// ParseIngredients splits a comma separated ingredient line. A trailing comma,
// an empty element or an element with anything but letters and spaces rejects
// the whole line.
func ParseIngredients(line string) ([]string, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, &ValidationError{Field: FieldIngredients, Input: line, Reason: "at least one ingredient is required"}
	}
	if strings.HasSuffix(trimmed, ",") {
		return nil, &ValidationError{Field: FieldIngredients, Input: line, Reason: "trailing separator"}
	}
	return validateIngredients(ingredientSeparator.Split(trimmed, -1), line)
}

func validateIngredients(items []string, input string) ([]string, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Field: FieldIngredients, Input: input, Reason: "at least one ingredient is required"}
	}
	ingredients := make([]string, 0, len(items))
	for _, item := range items {
		ingredient := strings.TrimSpace(item)
		if !lettersOnly.MatchString(ingredient) {
			return nil, &ValidationError{Field: FieldIngredients, Input: input, Reason: "use letters only"}
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}
