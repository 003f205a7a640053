package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blueprint/internal/client/builder"
	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/services"
	"github.com/dmitrijs2005/blueprint/internal/common"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

type fakeSession struct {
	principal models.Principal
	signedIn  bool
	lastToken string
}

func (f *fakeSession) SignIn(token string) (models.Principal, error) {
	f.lastToken = token
	if token == "bad" {
		return "", fmt.Errorf("%w: malformed", common.ErrInvalidToken)
	}
	f.principal, f.signedIn = "aaaaa-aa", true
	return f.principal, nil
}

func (f *fakeSession) SignOut() { f.signedIn = false }

func (f *fakeSession) CurrentIdentity() (models.Principal, bool) {
	return f.principal, f.signedIn
}

type fakeStatus struct{ mode client.Mode }

func (f *fakeStatus) Mode() client.Mode { return f.mode }

type fakeCatalog struct {
	published  []models.Draft
	publishID  string
	publishErr error
	retried    []models.CatalogEntry
	retryErr   error
	entries    []models.CatalogEntry
	report     services.SyncReport
	syncErr    error
}

func (f *fakeCatalog) Publish(_ context.Context, d models.Draft) (string, error) {
	f.published = append(f.published, d)
	return f.publishID, f.publishErr
}

func (f *fakeCatalog) RetryCatalog(_ context.Context, e models.CatalogEntry) error {
	f.retried = append(f.retried, e)
	return f.retryErr
}

func (f *fakeCatalog) ListCatalog(context.Context) ([]models.CatalogEntry, error) {
	return f.entries, nil
}

func (f *fakeCatalog) Sync(context.Context) (services.SyncReport, error) {
	return f.report, f.syncErr
}

type fakeCalendar struct {
	day     services.CalendarDay
	dates   []time.Time
	toggled []string
	enabled map[string]bool
}

func (f *fakeCalendar) Day(_ context.Context, date time.Time) (services.CalendarDay, error) {
	f.dates = append(f.dates, date)
	return f.day, nil
}

func (f *fakeCalendar) Toggle(_ context.Context, date time.Time, taskID string) (bool, error) {
	f.dates = append(f.dates, date)
	f.toggled = append(f.toggled, taskID)
	return true, nil
}

func (f *fakeCalendar) ToggleBlueprint(_ context.Context, id string) (bool, error) {
	if f.enabled == nil {
		f.enabled = map[string]bool{}
	}
	f.enabled[id] = !f.enabled[id]
	return f.enabled[id], nil
}

type fakeInteractions struct {
	purchaseErr error
	liked       map[string]bool
}

func (f *fakeInteractions) Purchase(context.Context, string) error { return f.purchaseErr }

func (f *fakeInteractions) ToggleLike(_ context.Context, id string) (bool, error) {
	if f.liked == nil {
		f.liked = map[string]bool{}
	}
	f.liked[id] = !f.liked[id]
	return f.liked[id], nil
}

type testApp struct {
	*App
	session      *fakeSession
	status       *fakeStatus
	catalog      *fakeCatalog
	calendar     *fakeCalendar
	interactions *fakeInteractions
	out          *bytes.Buffer
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// newTestApp returns an app whose input is the given lines.
func newTestApp(lines ...string) *testApp {
	ta := &testApp{
		session:      &fakeSession{},
		status:       &fakeStatus{mode: client.ModeOffline},
		catalog:      &fakeCatalog{},
		calendar:     &fakeCalendar{},
		interactions: &fakeInteractions{},
		out:          &bytes.Buffer{},
	}
	ta.App = NewApp(Deps{
		Session:      ta.session,
		Status:       ta.status,
		Catalog:      ta.catalog,
		Calendar:     ta.calendar,
		Interactions: ta.interactions,
		Logger:       logging.Nop(),
		Builder:      builder.New(builder.WithIDGenerator(sequentialIDs())),
	}, strings.NewReader(strings.Join(lines, "\n")+"\n"), ta.out)
	ta.App.now = func() time.Time { return time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local) }
	return ta
}

func (ta *testApp) run() string {
	ta.App.Run(context.Background())
	return ta.out.String()
}

// readyDraft is the command sequence for a draft that passes publish checks.
var readyDraft = []string{
	"step add",
	"block add id-1 dailyStep",
	"title Morning routine",
	"desc Start every day well",
}

func TestPrompt_ShowsIdentityModeAndStage(t *testing.T) {
	ta := newTestApp("login tok", "exit")
	ta.status.mode = client.ModeOnline

	out := ta.run()

	assert.Contains(t, out, "studio (anonymous online build)> ")
	assert.Contains(t, out, "Signed in as aaaaa-aa")
	assert.Contains(t, out, "studio (aaaaa-aa online build)> ")
	assert.Contains(t, out, "Bye!")
}

func TestRun_StopsAtEOF(t *testing.T) {
	ta := newTestApp("help")

	out := ta.run()

	assert.Contains(t, out, "Session:")
	assert.NotContains(t, out, "Bye!")
}

func TestUnknownCommand(t *testing.T) {
	out := newTestApp("frobnicate").run()

	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestLogin(t *testing.T) {
	t.Run("token argument", func(t *testing.T) {
		ta := newTestApp("login abc")
		ta.run()
		assert.Equal(t, "abc", ta.session.lastToken)
		assert.True(t, ta.isLoggedIn())
	})

	t.Run("prompted token", func(t *testing.T) {
		orig := readSecret
		readSecret = func(int) ([]byte, error) { return []byte(" prompted \n"), nil }
		t.Cleanup(func() { readSecret = orig })

		ta := newTestApp("login")
		ta.run()
		assert.Equal(t, "prompted", ta.session.lastToken)
	})

	t.Run("prompt failure", func(t *testing.T) {
		orig := readSecret
		readSecret = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
		t.Cleanup(func() { readSecret = orig })

		out := newTestApp("login").run()
		assert.Contains(t, out, "could not read token: not a terminal")
	})

	t.Run("rejected token", func(t *testing.T) {
		ta := newTestApp("login bad")
		out := ta.run()
		assert.Contains(t, out, "Login unsuccessful")
		assert.False(t, ta.isLoggedIn())
	})

	t.Run("logout", func(t *testing.T) {
		ta := newTestApp("login abc", "logout")
		out := ta.run()
		assert.Contains(t, out, "Signed out")
		assert.False(t, ta.isLoggedIn())
	})
}

func TestCalendarCommands(t *testing.T) {
	ta := newTestApp("tasks", "tasks 2026-05-01", "done bp-1-id-2", "done bp-1-id-2 2026-05-02", "enable bp-1", "enable bp-1", "tasks nope")
	ta.calendar.day = services.CalendarDay{
		Date:       "2026-03-04",
		Blueprints: []services.CalendarBlueprint{{ID: "bp-1", Title: "Routine", Enabled: true}},
		Tasks: []models.DerivedTask{
			{TaskID: "bp-1-id-2", BlueprintTitle: "Routine", StepName: "Week 1", Title: "Stretch", Completed: true},
		},
	}

	out := ta.run()

	assert.Contains(t, out, "Tasks for 2026-03-04")
	assert.Contains(t, out, "[on ] bp-1 Routine")
	assert.Contains(t, out, "[x] bp-1-id-2  Routine / Week 1: Stretch")
	assert.Contains(t, out, "bp-1-id-2 done")
	assert.Contains(t, out, "bp-1 shown in the calendar")
	assert.Contains(t, out, "bp-1 hidden from the calendar")
	assert.Contains(t, out, `invalid date "nope"`)

	require.Len(t, ta.calendar.dates, 4)
	assert.Equal(t, 4, ta.calendar.dates[0].Day())
	assert.Equal(t, time.May, ta.calendar.dates[1].Month())
	assert.Equal(t, 4, ta.calendar.dates[2].Day())
	assert.Equal(t, 2, ta.calendar.dates[3].Day())
	assert.Equal(t, []string{"bp-1-id-2", "bp-1-id-2"}, ta.calendar.toggled)
}
