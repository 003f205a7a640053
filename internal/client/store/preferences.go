package store

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/dmitrijs2005/blueprint/internal/client/repositories/records"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

const PreferencesKey = "calendar-blueprint-preferences"

// Preferences lists the blueprints whose tasks the calendar shows.
type Preferences struct {
	EnabledBlueprints []string `json:"enabledBlueprints"`
}

func (p Preferences) IsEnabled(id string) bool {
	return slices.Contains(p.EnabledBlueprints, id)
}

type PreferencesStore struct {
	mu     sync.Mutex
	repo   records.Repository
	logger logging.Logger
}

func NewPreferencesStore(repo records.Repository, logger logging.Logger) *PreferencesStore {
	return &PreferencesStore{repo: repo, logger: logger}
}

// Load returns the stored preferences; found is false when nothing was ever
// saved or the record is unreadable.
func (s *PreferencesStore) Load(ctx context.Context) (Preferences, bool, error) {
	raw, found, err := s.repo.Get(ctx, PreferencesKey)
	if err != nil {
		return Preferences{}, false, wrap("read", PreferencesKey, err)
	}
	if !found {
		return Preferences{EnabledBlueprints: []string{}}, false, nil
	}
	return s.decode(ctx, raw)
}

// Toggle flips id in the enabled list and returns whether it is now enabled.
// On the first write the list starts from known, i.e. every blueprint the
// caller currently shows.
func (s *PreferencesStore) Toggle(ctx context.Context, id string, known []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var enabled bool
	err := s.repo.Update(ctx, PreferencesKey, func(current string, found bool) (string, error) {
		prefs := Preferences{EnabledBlueprints: slices.Clone(known)}
		if found {
			if stored, ok, _ := s.decode(ctx, current); ok {
				prefs = stored
			}
		}

		if i := slices.Index(prefs.EnabledBlueprints, id); i >= 0 {
			prefs.EnabledBlueprints = slices.Delete(prefs.EnabledBlueprints, i, i+1)
		} else {
			prefs.EnabledBlueprints = append(prefs.EnabledBlueprints, id)
			enabled = true
		}
		if prefs.EnabledBlueprints == nil {
			prefs.EnabledBlueprints = []string{}
		}

		b, err := json.Marshal(prefs)
		return string(b), err
	})
	if err != nil {
		return false, wrap("write", PreferencesKey, err)
	}
	return enabled, nil
}

func (s *PreferencesStore) decode(ctx context.Context, raw string) (Preferences, bool, error) {
	var prefs Preferences
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		s.logger.Warn(ctx, "corrupt preferences record, using defaults", "key", PreferencesKey, "error", err)
		return Preferences{EnabledBlueprints: []string{}}, false, nil
	}
	if prefs.EnabledBlueprints == nil {
		prefs.EnabledBlueprints = []string{}
	}
	return prefs, true, nil
}
