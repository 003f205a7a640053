package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

const dateLayout = "2006-01-02"

// DateKey formats t as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

type CompletionStore interface {
	ForDate(ctx context.Context, dateKey string) (map[string]bool, error)
	Toggle(ctx context.Context, dateKey, taskID string) (bool, error)
}

type Service struct {
	store  CompletionStore
	logger logging.Logger
}

func NewService(store CompletionStore, logger logging.Logger) *Service {
	return &Service{store: store, logger: logger.With("module", "tasks")}
}

// DeriveTasksForDate derives the task list for date using the completion
// flags stored for that date.
func (s *Service) DeriveTasksForDate(ctx context.Context, blueprints []models.ProjectBlueprint, date time.Time) ([]models.DerivedTask, error) {
	key := DateKey(date)

	completion, err := s.store.ForDate(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reading completion for %s: %w", key, err)
	}

	return derive(blueprints, completion, func(blueprintID, blockID string) {
		s.logger.Debug(ctx, "legacy block content", "blueprint", blueprintID, "block", blockID)
	}), nil
}

// ToggleCompletion flips the flag of taskID on date and returns the new
// value. The first toggle of a task always marks it completed.
func (s *Service) ToggleCompletion(ctx context.Context, date time.Time, taskID string) (bool, error) {
	key := DateKey(date)

	done, err := s.store.Toggle(ctx, key, taskID)
	if err != nil {
		return false, fmt.Errorf("toggling %s on %s: %w", taskID, key, err)
	}
	return done, nil
}
