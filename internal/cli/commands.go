package cli

import (
	"context"
	"errors"

	"github.com/klokku/mealplanner/pkg/meal"
	"github.com/klokku/mealplanner/pkg/shopping_list"
	"github.com/klokku/mealplanner/pkg/weekly_plan"
)

func (s *Session) add(ctx context.Context) error {
	var category meal.Category
	for {
		s.println(msgAddCategory)
		line, err := s.readLine()
		if err != nil {
			return err
		}
		category, err = meal.ParseCategory(line)
		if err == nil {
			break
		}
		s.log.Debug(err)
		s.println(msgWrongCategory)
	}

	var name string
	for {
		s.println(msgMealName)
		line, err := s.readLine()
		if err != nil {
			return err
		}
		name, err = meal.ValidateName(line)
		if err == nil {
			break
		}
		s.log.Debug(err)
		s.println(msgWrongFormat)
	}

	var ingredients []string
	for {
		s.println(msgIngredients)
		line, err := s.readLine()
		if err != nil {
			return err
		}
		ingredients, err = meal.ParseIngredients(line)
		if err == nil {
			break
		}
		s.log.Debug(err)
		s.println(msgWrongFormat)
	}

	added, err := s.catalog.AddMeal(ctx, string(category), name, ingredients)
	if err != nil {
		return err
	}
	s.log.Infof("added %s %q with id %d", added.Category, added.Name, added.Id)
	s.println(msgMealAdded)
	return nil
}

func (s *Session) show() error {
	s.println(msgShowCategory)
	var category meal.Category
	for {
		line, err := s.readLine()
		if err != nil {
			return err
		}
		category, err = meal.ParseCategory(line)
		if err == nil {
			break
		}
		s.println(msgWrongCategory)
	}

	meals := s.catalog.ListByCategory(category)
	if len(meals) == 0 {
		s.println(msgNoMeals)
		return nil
	}
	s.printf("Category: %s\n", category)
	for _, m := range meals {
		s.printf("Name: %s\n", m.Name)
		s.println("Ingredients:")
		for _, ingredient := range m.Ingredients {
			s.println(ingredient)
		}
		s.println("")
	}
	return nil
}

func (s *Session) planWeek(ctx context.Context) error {
	builder := weekly_plan.NewBuilder(s.catalog)
	for {
		day, category, ok := builder.Current()
		if !ok {
			break
		}
		if category == meal.Categories[0] {
			s.println(string(day))
		}
		for _, candidate := range builder.Candidates() {
			s.println(candidate.Name)
		}
		for {
			s.printf(msgChooseMeal+"\n", category, day)
			line, err := s.readLine()
			if err != nil {
				return err
			}
			_, err = builder.Select(line)
			if err == nil {
				break
			}
			if !errors.Is(err, weekly_plan.ErrNoSuchMeal) {
				return err
			}
			s.log.Debug(err)
			s.println(msgNoSuchMeal)
		}
		if builder.DayCompleted() {
			s.printf(msgDayPlanned+"\n", day)
		}
	}

	stored, err := s.plan.Rebuild(ctx, builder.Entries())
	if err != nil {
		return err
	}
	return weekly_plan.Print(s.out, stored)
}

func (s *Session) save(ctx context.Context) error {
	count, err := s.plan.CountEntries(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		s.println(msgPlanFirst)
		return nil
	}

	s.println(msgFilename)
	target, err := s.readLine()
	if err != nil {
		return err
	}
	_, location, err := s.shoppingList.Save(ctx, target)
	if err != nil {
		if errors.Is(err, shopping_list.ErrPlanNotReady) {
			s.println(msgPlanFirst)
			return nil
		}
		return err
	}
	s.log.Infof("shopping list saved to %s", location)
	s.println(msgSaved)
	return nil
}
