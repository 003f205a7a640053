package client

import (
	"context"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

// Backend is the remote blueprint service.
type Backend interface {
	// Capabilities returns the set read when the connection came up.
	Capabilities() Capabilities
	Ping(ctx context.Context) error
	// CreateProjectBlueprint stores the structure and returns the id the
	// backend assigned to it.
	CreateProjectBlueprint(ctx context.Context, bp models.ProjectBlueprint) (string, error)
	CreateCatalogEntry(ctx context.Context, entry models.CatalogEntry) error
	ListCatalogEntries(ctx context.Context) ([]models.CatalogEntry, error)
	CallerProjectBlueprints(ctx context.Context) ([]models.ProjectBlueprint, error)
	GetProjectBlueprint(ctx context.Context, id string) (models.ProjectBlueprint, error)
	Purchase(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (bool, error)
	Close() error
}

// TokenSource yields the access token for outgoing calls; an empty token
// means anonymous.
type TokenSource interface {
	Token() string
}
