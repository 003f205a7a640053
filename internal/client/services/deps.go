// Package services holds the studio's application services: the publish
// coordinator, the calendar and interactions on catalog entries.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/store"
	"github.com/google/uuid"
)

// Connectivity yields the backend while it is reachable.
type Connectivity interface {
	Backend() (client.Backend, bool)
}

type Identity interface {
	CurrentIdentity() (models.Principal, bool)
}

type PublishedStore interface {
	Save(ctx context.Context, rec store.LocalRecord) error
	List(ctx context.Context) ([]store.LocalRecord, error)
	Get(ctx context.Context, id string) (store.LocalRecord, bool, error)
	Remove(ctx context.Context, ids ...string) error
}

type PreferencesStore interface {
	Load(ctx context.Context) (store.Preferences, bool, error)
	Toggle(ctx context.Context, id string, known []string) (bool, error)
}

// NewLocalID mints an id for a blueprint published while offline.
func NewLocalID() string {
	return fmt.Sprintf("%sblueprint-%d-%s", models.LocalIDPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
