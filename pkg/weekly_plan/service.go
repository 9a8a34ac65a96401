package weekly_plan

import (
	"context"
	"fmt"

	"github.com/klokku/mealplanner/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Rebuild replaces the stored plan with entries. Either all of them are stored or none.
	Rebuild(ctx context.Context, entries []PlanEntry) ([]PlanEntry, error)
	// GetPlan returns the stored plan in planning order, empty when nothing was planned yet.
	GetPlan(ctx context.Context) ([]PlanEntry, error)
	CountEntries(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Rebuild(ctx context.Context, entries []PlanEntry) ([]PlanEntry, error) {
	ordered, err := orderEntries(entries)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(repo Repository) error {
		cleared, err := repo.ClearPlan(ctx)
		if err != nil {
			return err
		}
		log.Debugf("cleared %d plan entries", cleared)
		for _, entry := range ordered {
			if err := repo.InsertEntry(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store plan: %w", err)
	}

	planned := make([]event_bus.PlannedMeal, 0, len(ordered))
	for _, entry := range ordered {
		planned = append(planned, event_bus.PlannedMeal{
			Day:      string(entry.Day),
			Category: string(entry.Category),
			MealName: entry.MealName,
			MealId:   entry.MealId,
		})
	}
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.PlanRebuilt, event_bus.PlanRebuiltEvent{Entries: planned}))
	if err != nil {
		log.Warnf("plan stored but event handling failed: %v", err)
	}

	return ordered, nil
}

func (s *ServiceImpl) GetPlan(ctx context.Context) ([]PlanEntry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}
	return entries, nil
}

func (s *ServiceImpl) CountEntries(ctx context.Context) (int, error) {
	count, err := s.repo.CountEntries(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count plan entries: %w", err)
	}
	return count, nil
}

// orderEntries checks that entries fill every cell exactly once and returns them in planning order.
func orderEntries(entries []PlanEntry) ([]PlanEntry, error) {
	if len(entries) != CellCount {
		return nil, fmt.Errorf("%w: got %d entries, want %d", ErrIncompletePlan, len(entries), CellCount)
	}
	ordered := make([]PlanEntry, CellCount)
	filled := make([]bool, CellCount)
	for _, entry := range entries {
		slot := Slot(entry.Day, entry.Category)
		if slot < 0 {
			return nil, fmt.Errorf("%w: unknown cell %q %q", ErrIncompletePlan, entry.Day, entry.Category)
		}
		if filled[slot] {
			return nil, fmt.Errorf("%w: %s %s planned twice", ErrIncompletePlan, entry.Day, entry.Category)
		}
		filled[slot] = true
		ordered[slot] = entry
	}
	return ordered, nil
}
