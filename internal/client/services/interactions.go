package services

import (
	"context"

	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/seed"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

// Interactions routes purchases and likes: demo blueprints stay in the
// session overlay, everything else goes to the backend.
type Interactions struct {
	conn     Connectivity
	identity Identity
	seeds    seed.Provider
	overlay  seed.Overlay
	logger   logging.Logger
}

func NewInteractions(conn Connectivity, identity Identity, seeds seed.Provider, overlay seed.Overlay, logger logging.Logger) *Interactions {
	return &Interactions{
		conn:     conn,
		identity: identity,
		seeds:    seeds,
		overlay:  overlay,
		logger:   logger.With("module", "interactions"),
	}
}

func (i *Interactions) backend() (client.Backend, error) {
	if _, ok := i.identity.CurrentIdentity(); !ok {
		return nil, client.ErrAuthenticationRequired
	}
	b, ok := i.conn.Backend()
	if !ok {
		return nil, client.ErrUnavailable
	}
	if !b.Capabilities().Has(client.CapInteractions) {
		return nil, client.ErrNotSupported
	}
	return b, nil
}

func (i *Interactions) Purchase(ctx context.Context, id string) error {
	if i.seeds.IsSeed(id) {
		return i.overlay.Purchase(id)
	}

	b, err := i.backend()
	if err != nil {
		return err
	}
	if err := b.Purchase(ctx, id); err != nil {
		return err
	}
	i.logger.Info(ctx, "blueprint purchased", "id", id)
	return nil
}

// ToggleLike returns whether id is liked after the call.
func (i *Interactions) ToggleLike(ctx context.Context, id string) (bool, error) {
	if i.seeds.IsSeed(id) {
		return i.overlay.ToggleLike(id), nil
	}

	b, err := i.backend()
	if err != nil {
		return false, err
	}
	return b.ToggleLike(ctx, id)
}
