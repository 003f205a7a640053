package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blueprint/internal/client/builder"
	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/events"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/seed"
	"github.com/dmitrijs2005/blueprint/internal/client/services"
	"github.com/dmitrijs2005/blueprint/internal/client/store"
	"github.com/dmitrijs2005/blueprint/internal/common"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

type fakeCatalog struct {
	publishID  string
	publishErr error
	entries    []models.CatalogEntry
	listErr    error
	blueprint  models.ProjectBlueprint
	bpErr      error
	report     services.SyncReport
	syncErr    error
	bus        *events.Bus[events.LocalPublished]
	lastDraft  models.Draft
}

func (f *fakeCatalog) Publish(_ context.Context, d models.Draft) (string, error) {
	f.lastDraft = d
	return f.publishID, f.publishErr
}

func (f *fakeCatalog) ListCatalog(context.Context) ([]models.CatalogEntry, error) {
	return f.entries, f.listErr
}

func (f *fakeCatalog) Blueprint(context.Context, string) (models.ProjectBlueprint, error) {
	return f.blueprint, f.bpErr
}

func (f *fakeCatalog) Sync(context.Context) (services.SyncReport, error) {
	return f.report, f.syncErr
}

func (f *fakeCatalog) SubscribeToLocalPublish(fn func(events.LocalPublished)) func() {
	return f.bus.Subscribe(fn)
}

type fakeCalendar struct {
	mu       sync.Mutex
	day      services.CalendarDay
	toggled  []string
	enabled  bool
	lastDate time.Time
}

func (f *fakeCalendar) Day(_ context.Context, date time.Time) (services.CalendarDay, error) {
	f.lastDate = date
	return f.day, nil
}

func (f *fakeCalendar) Toggle(_ context.Context, date time.Time, taskID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastDate = date
	f.toggled = append(f.toggled, taskID)
	return true, nil
}

func (f *fakeCalendar) ToggleBlueprint(context.Context, string) (bool, error) {
	return f.enabled, nil
}

type fakeInteractions struct {
	purchaseErr error
	liked       bool
}

func (f *fakeInteractions) Purchase(context.Context, string) error { return f.purchaseErr }

func (f *fakeInteractions) ToggleLike(context.Context, string) (bool, error) {
	return f.liked, nil
}

type fakeStatus client.Mode

func (f fakeStatus) Mode() client.Mode { return client.Mode(f) }

type testEnv struct {
	catalog      *fakeCatalog
	calendar     *fakeCalendar
	interactions *fakeInteractions
	server       *Server
}

func newTestEnv() *testEnv {
	env := &testEnv{
		catalog:      &fakeCatalog{bus: events.NewBus[events.LocalPublished]()},
		calendar:     &fakeCalendar{},
		interactions: &fakeInteractions{},
	}
	env.server = NewServer(env.catalog, env.calendar, env.interactions, fakeStatus(client.ModeOffline), logging.Nop(), Options{})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func TestHealth(t *testing.T) {
	env := newTestEnv()

	rec, resp := env.do(t, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "offline", data["mode"])
	assert.Equal(t, "healthy", data["status"])
}

func TestListCatalog(t *testing.T) {
	env := newTestEnv()
	env.catalog.entries = []models.CatalogEntry{{ID: "bp-1"}, {ID: "local-blueprint-1-aaaa"}}

	rec, resp := env.do(t, http.MethodGet, "/api/v1/catalog", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data, 2)
}

func TestPublish_LocalAndRemote(t *testing.T) {
	cases := []struct {
		id      string
		local   bool
		message string
	}{
		{id: "local-blueprint-1-abcdabcd", local: true, message: "saved locally, will sync later"},
		{id: "bp-42", local: false, message: "published"},
	}

	for _, tc := range cases {
		t.Run(tc.id, func(t *testing.T) {
			env := newTestEnv()
			env.catalog.publishID = tc.id

			rec, resp := env.do(t, http.MethodPost, "/api/v1/blueprints", `{"title":"Plan","steps":[]}`)

			require.Equal(t, http.StatusCreated, rec.Code)
			data := resp.Data.(map[string]any)
			assert.Equal(t, tc.id, data["id"])
			assert.Equal(t, tc.local, data["local"])
			assert.Equal(t, tc.message, data["message"])
			assert.Equal(t, "Plan", env.catalog.lastDraft.Title)
		})
	}
}

func TestPublish_OmittedFieldsKeepDraftDefaults(t *testing.T) {
	env := newTestEnv()
	env.catalog.publishID = "bp-1"

	rec, _ := env.do(t, http.MethodPost, "/api/v1/blueprints", `{"title":"Plan"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := env.catalog.lastDraft
	assert.Equal(t, models.DefaultTheme, got.Theme)
	assert.Equal(t, models.PriceFree, got.PriceType)
	assert.NotNil(t, got.Tags)
	assert.NotNil(t, got.Steps)
}

func TestPublish_BadBody(t *testing.T) {
	env := newTestEnv()

	rec, resp := env.do(t, http.MethodPost, "/api/v1/blueprints", `{`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, CodeBadRequest, resp.Error.Code)
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &builder.ValidationError{Field: "title", Reason: "required", Err: builder.ErrValidation}, http.StatusUnprocessableEntity, CodeValidationFailed},
		{"auth", client.ErrAuthenticationRequired, http.StatusUnauthorized, CodeAuthRequired},
		{"unavailable", fmt.Errorf("publish: %w", client.ErrUnavailable), http.StatusServiceUnavailable, CodeBackendNotReady},
		{"rejected", &client.RejectedError{Op: "create", Message: "duplicate"}, http.StatusConflict, CodeRemoteRejected},
		{"not supported", client.ErrNotSupported, http.StatusNotImplemented, CodeNotSupported},
		{"full", &store.StorageError{Kind: store.KindFull, Op: "write", Err: errors.New("disk")}, http.StatusInsufficientStorage, CodeLocalStorageFull},
		{"blocked", &store.StorageError{Kind: store.KindBlocked, Op: "write", Err: errors.New("ro")}, http.StatusLocked, CodeLocalStorageBlocked},
		{"storage", &store.StorageError{Kind: store.KindUnknown, Op: "read", Err: errors.New("io")}, http.StatusInternalServerError, CodeLocalStorageError},
		{"not found", common.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv()
			env.catalog.publishErr = tc.err

			rec, resp := env.do(t, http.MethodPost, "/api/v1/blueprints", `{}`)

			require.Equal(t, tc.status, rec.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestValidationError_CarriesField(t *testing.T) {
	env := newTestEnv()
	env.catalog.publishErr = &builder.ValidationError{Field: "price", Reason: "must be positive", Err: builder.ErrValidation}

	_, resp := env.do(t, http.MethodPost, "/api/v1/blueprints", `{}`)

	require.NotNil(t, resp.Error)
	assert.Equal(t, "price", resp.Error.Field)
}

func TestGetBlueprint_NotFound(t *testing.T) {
	env := newTestEnv()
	env.catalog.bpErr = fmt.Errorf("local-x: %w", common.ErrNotFound)

	rec, _ := env.do(t, http.MethodGet, "/api/v1/blueprints/local-x", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSync_Report(t *testing.T) {
	env := newTestEnv()
	env.catalog.report = services.SyncReport{
		Synced:  map[string]string{"local-a": "bp-1"},
		Failed:  []services.SyncFailure{{LocalID: "local-b", Err: errors.New("rejected")}},
		Skipped: []string{"local-c"},
	}

	rec, resp := env.do(t, http.MethodPost, "/api/v1/sync", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, map[string]any{"local-a": "bp-1"}, data["synced"])
	assert.Equal(t, map[string]any{"local-b": "rejected"}, data["failed"])
	assert.Equal(t, []any{"local-c"}, data["skipped"])
}

func TestCalendar(t *testing.T) {
	env := newTestEnv()

	rec, _ := env.do(t, http.MethodGet, "/api/v1/calendar/2026-03-04", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, env.calendar.lastDate.Day())

	rec, resp := env.do(t, http.MethodPost, "/api/v1/calendar/2026-03-04/tasks/bp-1-block-1/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"bp-1-block-1"}, env.calendar.toggled)
	assert.Equal(t, true, resp.Data.(map[string]any)["state"])

	rec, _ = env.do(t, http.MethodGet, "/api/v1/calendar/not-a-date", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleBlueprint(t *testing.T) {
	env := newTestEnv()
	env.calendar.enabled = false

	rec, resp := env.do(t, http.MethodPost, "/api/v1/calendar/blueprints/bp-1/toggle", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "bp-1", data["id"])
	assert.Equal(t, false, data["state"])
}

func TestPurchaseAndLike(t *testing.T) {
	env := newTestEnv()
	env.interactions.liked = true

	rec, _ := env.do(t, http.MethodPost, "/api/v1/blueprints/seed-language-learning/purchase", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/blueprints/seed-language-learning/like", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp.Data.(map[string]any)["state"])

	env.interactions.purchaseErr = seed.ErrAlreadyPurchased
	rec, resp = env.do(t, http.MethodPost, "/api/v1/blueprints/seed-language-learning/purchase", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, CodeRemoteRejected, resp.Error.Code)
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/catalog", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	env.server.Router().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEvents_StreamsLocalPublish(t *testing.T) {
	env := newTestEnv()
	srv := httptest.NewServer(env.server.Router())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return env.catalog.bus.Len() == 1 }, time.Second, 10*time.Millisecond)

	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	env.catalog.bus.Publish(events.LocalPublished{BlueprintID: "local-blueprint-1-abcdabcd", PublishedAt: at})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg eventMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "localPublished", msg.Type)
	assert.Equal(t, "local-blueprint-1-abcdabcd", msg.BlueprintID)
	assert.True(t, at.Equal(msg.PublishedAt))

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return env.catalog.bus.Len() == 0 }, time.Second, 10*time.Millisecond)
}
