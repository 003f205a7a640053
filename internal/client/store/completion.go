package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/blueprint/internal/client/repositories/records"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

const completionPrefix = "calendar-tasks-"

func CompletionKey(dateKey string) string {
	return completionPrefix + dateKey
}

// CompletionStore keeps task completion flags per calendar date.
type CompletionStore struct {
	mu     sync.Mutex
	repo   records.Repository
	logger logging.Logger
}

func NewCompletionStore(repo records.Repository, logger logging.Logger) *CompletionStore {
	return &CompletionStore{repo: repo, logger: logger}
}

// ForDate returns the flags stored for dateKey (YYYY-MM-DD), empty when none.
func (s *CompletionStore) ForDate(ctx context.Context, dateKey string) (map[string]bool, error) {
	key := CompletionKey(dateKey)

	raw, found, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, wrap("read", key, err)
	}
	if !found {
		return map[string]bool{}, nil
	}
	return s.decode(ctx, key, raw), nil
}

// Toggle flips taskID on dateKey and returns the new value.
func (s *CompletionStore) Toggle(ctx context.Context, dateKey, taskID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := CompletionKey(dateKey)
	var done bool

	err := s.repo.Update(ctx, key, func(current string, found bool) (string, error) {
		flags := map[string]bool{}
		if found {
			flags = s.decode(ctx, key, current)
		}
		done = !flags[taskID]
		flags[taskID] = done

		b, err := json.Marshal(flags)
		return string(b), err
	})
	if err != nil {
		return false, wrap("write", key, err)
	}
	return done, nil
}

func (s *CompletionStore) decode(ctx context.Context, key, raw string) map[string]bool {
	flags := map[string]bool{}
	if err := json.Unmarshal([]byte(raw), &flags); err != nil || flags == nil {
		s.logger.Warn(ctx, "corrupt completion record, using empty", "key", key, "error", err)
		return map[string]bool{}
	}
	return flags
}
