package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/blueprint/internal/client/builder"
	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/store"
	"github.com/dmitrijs2005/blueprint/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	backend client.Backend
}

func (f *fakeConn) Backend() (client.Backend, bool) {
	return f.backend, f.backend != nil
}

type fakeIdentity struct {
	principal models.Principal
}

func (f fakeIdentity) CurrentIdentity() (models.Principal, bool) {
	return f.principal, f.principal != ""
}

type fakeBackend struct {
	client.Backend

	mu   sync.Mutex
	caps client.Capabilities

	calls      []string
	structures []models.ProjectBlueprint
	entries    []models.CatalogEntry
	nextIDs    []string

	structureErr error
	catalogErrs  []error
	listResp     []models.CatalogEntry
	listErr      error
	callerResp   []models.ProjectBlueprint
	callerErr    error
	getResp      models.ProjectBlueprint
	purchaseErr  error
	liked        bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{caps: client.CoreCapabilities | client.CapCallerBlueprints | client.CapInteractions}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) Capabilities() client.Capabilities { return f.caps }

func (f *fakeBackend) CreateProjectBlueprint(_ context.Context, bp models.ProjectBlueprint) (string, error) {
	f.record("structure")
	if f.structureErr != nil {
		return "", f.structureErr
	}
	f.structures = append(f.structures, bp)
	id := "bp-remote"
	if len(f.nextIDs) > 0 {
		id, f.nextIDs = f.nextIDs[0], f.nextIDs[1:]
	}
	return id, nil
}

func (f *fakeBackend) CreateCatalogEntry(_ context.Context, e models.CatalogEntry) error {
	f.record("catalog")
	if len(f.catalogErrs) > 0 {
		err := f.catalogErrs[0]
		f.catalogErrs = f.catalogErrs[1:]
		if err != nil {
			return err
		}
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeBackend) ListCatalogEntries(context.Context) ([]models.CatalogEntry, error) {
	return f.listResp, f.listErr
}

func (f *fakeBackend) CallerProjectBlueprints(context.Context) ([]models.ProjectBlueprint, error) {
	return f.callerResp, f.callerErr
}

func (f *fakeBackend) GetProjectBlueprint(_ context.Context, id string) (models.ProjectBlueprint, error) {
	f.record("get:" + id)
	return f.getResp, nil
}

func (f *fakeBackend) Purchase(_ context.Context, id string) error {
	f.record("purchase:" + id)
	return f.purchaseErr
}

func (f *fakeBackend) ToggleLike(_ context.Context, id string) (bool, error) {
	f.record("like:" + id)
	f.liked = !f.liked
	return f.liked, nil
}

// failingPublished fails every write with err.
type failingPublished struct {
	PublishedStore
	err error
}

func (f failingPublished) Save(context.Context, store.LocalRecord) error { return f.err }

func openStores(t *testing.T) *store.Stores {
	t.Helper()
	s, err := store.Open(context.Background(), store.Options{Path: filepath.Join(t.TempDir(), "studio.db")}, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// validDraft has one step with a daily step block and the required metadata.
func validDraft(t *testing.T) models.Draft {
	t.Helper()
	b := builder.New()
	d := b.AddStep()
	_, err := b.AddBlock(d.Steps[0].ID, models.BlockDailyStep)
	require.NoError(t, err)
	b.SetTitle("Morning routine")
	return b.SetDescription("Wake up early")
}
