package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/blobstore"
	"github.com/dmitrijs2005/blueprint/internal/client/builder"
	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/events"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/seed"
	"github.com/dmitrijs2005/blueprint/internal/client/store"
	"github.com/dmitrijs2005/blueprint/internal/common"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

type PublishStage string

const (
	StageAttachments PublishStage = "attachments"
	StageStructure   PublishStage = "structure"
	StageCatalog     PublishStage = "catalog"
)

// PublishError is a failed remote publish. With Stage catalog the structure
// was written under BlueprintID and Entry can be passed to RetryCatalog.
type PublishError struct {
	Stage       PublishStage
	BlueprintID string
	Entry       models.CatalogEntry
	Err         error
}

func (e *PublishError) Error() string {
	if e.BlueprintID != "" {
		return fmt.Sprintf("publish %s (%s): %v", e.Stage, e.BlueprintID, e.Err)
	}
	return fmt.Sprintf("publish %s: %v", e.Stage, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

type CoordinatorDeps struct {
	Conn      Connectivity
	Identity  Identity
	Published PublishedStore
	Seeds     seed.Provider
	// Uploader is optional; without it attachments travel inline.
	Uploader blobstore.Uploader
	Logger   logging.Logger
}

// Coordinator publishes drafts to the backend or, while it is unreachable,
// to the local store, and merges both sources on reads.
type Coordinator struct {
	conn      Connectivity
	identity  Identity
	published PublishedStore
	seeds     seed.Provider
	uploader  blobstore.Uploader
	bus       *events.Bus[events.LocalPublished]
	logger    logging.Logger

	now     func() time.Time
	localID func() string
}

func NewCoordinator(deps CoordinatorDeps) *Coordinator {
	return &Coordinator{
		conn:      deps.Conn,
		identity:  deps.Identity,
		published: deps.Published,
		seeds:     deps.Seeds,
		uploader:  deps.Uploader,
		bus:       events.NewBus[events.LocalPublished](),
		logger:    deps.Logger.With("module", "coordinator"),
		now:       time.Now,
		localID:   NewLocalID,
	}
}

// SubscribeToLocalPublish registers fn for offline publishes.
func (c *Coordinator) SubscribeToLocalPublish(fn func(events.LocalPublished)) (unsubscribe func()) {
	return c.bus.Subscribe(fn)
}

// Publish validates d and publishes it. Without a reachable backend the
// draft is stored locally under a local- id; the only errors on that path
// come from the store.
func (c *Coordinator) Publish(ctx context.Context, d models.Draft) (string, error) {
	if err := builder.ValidateForPublish(d); err != nil {
		return "", err
	}

	backend, ok := c.conn.Backend()
	if !ok {
		return c.publishLocal(ctx, d)
	}
	return c.publishRemote(ctx, backend, d)
}

func (c *Coordinator) publishLocal(ctx context.Context, d models.Draft) (string, error) {
	id := c.localID()
	now := c.now()

	creator, ok := c.identity.CurrentIdentity()
	if !ok {
		creator = models.AnonymousPrincipal
	}

	bp, entry := builder.Export(d, id, creator, now)
	entry.Image = nil
	entry.BannerImage = nil

	rec := store.LocalRecord{Entry: entry, Structure: &bp, PublishedAt: now}
	if err := c.published.Save(ctx, rec); err != nil {
		return "", err
	}

	c.logger.Info(ctx, "blueprint saved locally", "id", id)
	c.bus.Publish(events.LocalPublished{BlueprintID: id, PublishedAt: now})
	return id, nil
}

func (c *Coordinator) publishRemote(ctx context.Context, backend client.Backend, d models.Draft) (string, error) {
	creator, ok := c.identity.CurrentIdentity()
	if !ok {
		return "", client.ErrAuthenticationRequired
	}
	if !backend.Capabilities().Has(client.CapProjectBlueprints | client.CapCatalog) {
		return "", client.ErrNotSupported
	}

	bp, entry := builder.Export(d, "", creator, c.now())

	var err error
	if entry.Image, err = c.upload(ctx, entry.Image); err != nil {
		return "", &PublishError{Stage: StageAttachments, Err: err}
	}
	if entry.BannerImage, err = c.upload(ctx, entry.BannerImage); err != nil {
		return "", &PublishError{Stage: StageAttachments, Err: err}
	}

	id, err := backend.CreateProjectBlueprint(ctx, bp)
	if err != nil {
		return "", &PublishError{Stage: StageStructure, Err: err}
	}

	entry.ID = id
	if err := backend.CreateCatalogEntry(ctx, entry); err != nil {
		c.logger.Warn(ctx, "structure written without catalog entry", "id", id, "error", err)
		return "", &PublishError{Stage: StageCatalog, BlueprintID: id, Entry: entry, Err: err}
	}

	c.logger.Info(ctx, "blueprint published", "id", id)
	return id, nil
}

func (c *Coordinator) upload(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	if a == nil || c.uploader == nil {
		return a, nil
	}
	out, err := c.uploader.Upload(ctx, *a)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RetryCatalog repeats the catalog write of a publish that failed at that
// stage.
func (c *Coordinator) RetryCatalog(ctx context.Context, entry models.CatalogEntry) error {
	backend, ok := c.conn.Backend()
	if !ok {
		return client.ErrUnavailable
	}
	if _, ok := c.identity.CurrentIdentity(); !ok {
		return client.ErrAuthenticationRequired
	}

	if err := backend.CreateCatalogEntry(ctx, entry); err != nil {
		return &PublishError{Stage: StageCatalog, BlueprintID: entry.ID, Entry: entry, Err: err}
	}
	return nil
}

// ListCatalog merges the remote catalog with local records the remote does
// not know. An unreachable or failing backend yields the local records
// alone; an empty remote catalog is replaced by the seed catalog.
func (c *Coordinator) ListCatalog(ctx context.Context) ([]models.CatalogEntry, error) {
	records, err := c.published.List(ctx)
	if err != nil {
		return nil, err
	}
	local := make([]models.CatalogEntry, 0, len(records))
	for _, r := range records {
		local = append(local, r.Entry)
	}

	backend, ok := c.conn.Backend()
	if !ok {
		return local, nil
	}

	remote, err := backend.ListCatalogEntries(ctx)
	if err != nil {
		c.logger.Warn(ctx, "remote catalog unavailable, showing local entries", "error", err)
		return local, nil
	}
	if len(remote) == 0 && c.seeds != nil {
		return mergeEntries(c.seeds.Catalog(c.now()), local), nil
	}
	return mergeEntries(remote, local), nil
}

// mergeEntries returns primary followed by the extra entries whose id is
// not in primary.
func mergeEntries(primary, extra []models.CatalogEntry) []models.CatalogEntry {
	seen := make(map[string]struct{}, len(primary))
	out := make([]models.CatalogEntry, 0, len(primary)+len(extra))
	for _, e := range primary {
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	for _, e := range extra {
		if _, dup := seen[e.ID]; !dup {
			out = append(out, e)
		}
	}
	return out
}

// Blueprint returns the structure of id. Local ids are read from the store;
// any other id needs the backend.
func (c *Coordinator) Blueprint(ctx context.Context, id string) (models.ProjectBlueprint, error) {
	if models.IsLocalID(id) {
		rec, found, err := c.published.Get(ctx, id)
		if err != nil {
			return models.ProjectBlueprint{}, err
		}
		if !found || rec.Structure == nil {
			return models.ProjectBlueprint{}, fmt.Errorf("blueprint %s: %w", id, common.ErrNotFound)
		}
		return *rec.Structure, nil
	}

	backend, ok := c.conn.Backend()
	if !ok {
		return models.ProjectBlueprint{}, client.ErrUnavailable
	}
	return backend.GetProjectBlueprint(ctx, id)
}

type SyncFailure struct {
	LocalID string
	Err     error
}

// SyncReport maps each synced local id to its remote id.
type SyncReport struct {
	Synced  map[string]string
	Failed  []SyncFailure
	Skipped []string
}

// Sync pushes locally published blueprints to the backend. A record is
// removed locally only once both its structure and catalog entry are
// written. Records without a structure are skipped.
func (c *Coordinator) Sync(ctx context.Context) (SyncReport, error) {
	report := SyncReport{Synced: map[string]string{}}

	backend, ok := c.conn.Backend()
	if !ok {
		return report, client.ErrUnavailable
	}
	creator, ok := c.identity.CurrentIdentity()
	if !ok {
		return report, client.ErrAuthenticationRequired
	}
	if !backend.Capabilities().Has(client.CapProjectBlueprints | client.CapCatalog) {
		return report, client.ErrNotSupported
	}

	records, err := c.published.List(ctx)
	if err != nil {
		return report, err
	}

	var done []string
	for _, rec := range records {
		if rec.Structure == nil {
			report.Skipped = append(report.Skipped, rec.Entry.ID)
			continue
		}

		remoteID, err := c.pushRecord(ctx, backend, rec, creator)
		if err != nil {
			report.Failed = append(report.Failed, SyncFailure{LocalID: rec.Entry.ID, Err: err})
			if errors.Is(err, client.ErrUnavailable) {
				break
			}
			continue
		}
		report.Synced[rec.Entry.ID] = remoteID
		done = append(done, rec.Entry.ID)
	}

	if len(done) > 0 {
		if err := c.published.Remove(ctx, done...); err != nil {
			return report, err
		}
	}

	c.logger.Info(ctx, "sync finished", "synced", len(report.Synced), "failed", len(report.Failed), "skipped", len(report.Skipped))
	return report, nil
}

func (c *Coordinator) pushRecord(ctx context.Context, backend client.Backend, rec store.LocalRecord, creator models.Principal) (string, error) {
	bp := *rec.Structure
	bp.ID = ""
	bp.CreatedBy = creator

	id, err := backend.CreateProjectBlueprint(ctx, bp)
	if err != nil {
		return "", &PublishError{Stage: StageStructure, Err: err}
	}

	entry := rec.Entry
	entry.ID = id
	entry.Creator = creator
	if err := backend.CreateCatalogEntry(ctx, entry); err != nil {
		return "", &PublishError{Stage: StageCatalog, BlueprintID: id, Entry: entry, Err: err}
	}
	return id, nil
}
