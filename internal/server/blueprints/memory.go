package blueprints

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/common"
)

type interaction struct {
	caller models.Principal
	id     string
}

// InMemoryRepository keeps everything in maps guarded by one mutex. Lists
// come back in insertion order.
type InMemoryRepository struct {
	mu         sync.RWMutex
	blueprints map[string]models.ProjectBlueprint
	order      []string
	entries    map[string]models.CatalogEntry
	entryOrder []string
	purchases  map[interaction]struct{}
	likes      map[interaction]struct{}
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		blueprints: map[string]models.ProjectBlueprint{},
		entries:    map[string]models.CatalogEntry{},
		purchases:  map[interaction]struct{}{},
		likes:      map[interaction]struct{}{},
	}
}

func (r *InMemoryRepository) CreateBlueprint(_ context.Context, bp models.ProjectBlueprint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blueprints[bp.ID]; ok {
		return fmt.Errorf("blueprint %s: %w", bp.ID, ErrAlreadyExists)
	}
	r.blueprints[bp.ID] = bp
	r.order = append(r.order, bp.ID)
	return nil
}

func (r *InMemoryRepository) Blueprint(_ context.Context, id string) (models.ProjectBlueprint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bp, ok := r.blueprints[id]
	if !ok {
		return models.ProjectBlueprint{}, fmt.Errorf("blueprint %s: %w", id, common.ErrNotFound)
	}
	return bp, nil
}

func (r *InMemoryRepository) BlueprintsBy(_ context.Context, creator models.Principal) ([]models.ProjectBlueprint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.ProjectBlueprint{}
	for _, id := range r.order {
		if bp := r.blueprints[id]; bp.CreatedBy == creator {
			out = append(out, bp)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) CreateEntry(_ context.Context, e models.CatalogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[e.ID]; ok {
		return fmt.Errorf("catalog entry %s: %w", e.ID, ErrAlreadyExists)
	}
	r.entries[e.ID] = e
	r.entryOrder = append(r.entryOrder, e.ID)
	return nil
}

func (r *InMemoryRepository) Entry(_ context.Context, id string) (models.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return models.CatalogEntry{}, fmt.Errorf("catalog entry %s: %w", id, common.ErrNotFound)
	}
	return e, nil
}

func (r *InMemoryRepository) Entries(_ context.Context) ([]models.CatalogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.CatalogEntry, 0, len(r.entryOrder))
	for _, id := range r.entryOrder {
		out = append(out, r.entries[id])
	}
	return out, nil
}

func (r *InMemoryRepository) AddPurchase(_ context.Context, caller models.Principal, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := interaction{caller: caller, id: id}
	if _, ok := r.purchases[key]; ok {
		return fmt.Errorf("blueprint %s: %w", id, ErrAlreadyPurchased)
	}
	r.purchases[key] = struct{}{}
	return nil
}

func (r *InMemoryRepository) ToggleLike(_ context.Context, caller models.Principal, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := interaction{caller: caller, id: id}
	if _, ok := r.likes[key]; ok {
		delete(r.likes, key)
		return false, nil
	}
	r.likes[key] = struct{}{}
	return true, nil
}
