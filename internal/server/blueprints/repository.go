// Package blueprints holds the development backend's blueprint and catalog
// state.
package blueprints

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

var (
	ErrAlreadyExists    = errors.New("already exists")
	ErrAlreadyPurchased = errors.New("already purchased")
	ErrInvalid          = errors.New("invalid argument")
)

type Repository interface {
	CreateBlueprint(ctx context.Context, bp models.ProjectBlueprint) error
	Blueprint(ctx context.Context, id string) (models.ProjectBlueprint, error)
	BlueprintsBy(ctx context.Context, creator models.Principal) ([]models.ProjectBlueprint, error)

	CreateEntry(ctx context.Context, e models.CatalogEntry) error
	Entry(ctx context.Context, id string) (models.CatalogEntry, error)
	Entries(ctx context.Context) ([]models.CatalogEntry, error)

	AddPurchase(ctx context.Context, caller models.Principal, id string) error
	ToggleLike(ctx context.Context, caller models.Principal, id string) (bool, error)
}
