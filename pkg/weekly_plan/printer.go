package weekly_plan

import (
	"fmt"
	"io"
	"strings"
)

// Format renders entries grouped by day, a blank line between days:
//
//	Monday
//	Breakfast: oatmeal
//	Lunch: salad
//	Dinner: soup
func Format(entries []PlanEntry) string {
	var sb strings.Builder
	_ = Print(&sb, entries) // strings.Builder writes never fail
	return sb.String()
}

// Print writes Format(entries) to w. Consecutive entries of the same day form one group.
func Print(w io.Writer, entries []PlanEntry) error {
	var previous Day
	for i, entry := range entries {
		if i == 0 || entry.Day != previous {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, entry.Day); err != nil {
				return err
			}
			previous = entry.Day
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", Capitalize(string(entry.Category)), entry.MealName); err != nil {
			return err
		}
	}
	return nil
}
