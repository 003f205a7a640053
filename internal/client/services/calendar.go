package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/tasks"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

type CalendarDeps struct {
	Conn        Connectivity
	Identity    Identity
	Published   PublishedStore
	Preferences PreferencesStore
	Tasks       *tasks.Service
	Logger      logging.Logger
}

// CalendarBlueprint is a blueprint with its visibility in the calendar.
type CalendarBlueprint struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Enabled bool   `json:"enabled"`
}

type CalendarDay struct {
	Date       string               `json:"date"`
	Blueprints []CalendarBlueprint  `json:"blueprints"`
	Tasks      []models.DerivedTask `json:"tasks"`
}

// Calendar turns the caller's blueprints into daily tasks.
type Calendar struct {
	conn     Connectivity
	identity Identity
	local    PublishedStore
	prefs    PreferencesStore
	tasks    *tasks.Service
	logger   logging.Logger
}

func NewCalendar(deps CalendarDeps) *Calendar {
	return &Calendar{
		conn:     deps.Conn,
		identity: deps.Identity,
		local:    deps.Published,
		prefs:    deps.Preferences,
		tasks:    deps.Tasks,
		logger:   deps.Logger.With("module", "calendar"),
	}
}

// Blueprints returns the caller's remote blueprints followed by local
// structures the remote does not have. The remote part is skipped when
// offline, signed out or failing.
func (c *Calendar) Blueprints(ctx context.Context) ([]models.ProjectBlueprint, error) {
	records, err := c.local.List(ctx)
	if err != nil {
		return nil, err
	}

	remote := c.remoteBlueprints(ctx)

	seen := make(map[string]struct{}, len(remote))
	out := make([]models.ProjectBlueprint, 0, len(remote)+len(records))
	for _, bp := range remote {
		seen[bp.ID] = struct{}{}
		out = append(out, bp)
	}
	for _, r := range records {
		if r.Structure == nil {
			continue
		}
		if _, dup := seen[r.Structure.ID]; dup {
			continue
		}
		out = append(out, *r.Structure)
	}
	return out, nil
}

func (c *Calendar) remoteBlueprints(ctx context.Context) []models.ProjectBlueprint {
	backend, ok := c.conn.Backend()
	if !ok {
		return nil
	}
	me, ok := c.identity.CurrentIdentity()
	if !ok {
		return nil
	}
	if !backend.Capabilities().Has(client.CapCallerBlueprints) {
		return nil
	}

	all, err := backend.CallerProjectBlueprints(ctx)
	if err != nil {
		c.logger.Warn(ctx, "remote blueprints unavailable, using local", "error", err)
		return nil
	}

	mine := make([]models.ProjectBlueprint, 0, len(all))
	for _, bp := range all {
		if bp.CreatedBy == me {
			mine = append(mine, bp)
		}
	}
	return mine
}

// Day returns the blueprints with their visibility and the tasks of the
// enabled ones for date. Without stored preferences every blueprint is
// enabled.
func (c *Calendar) Day(ctx context.Context, date time.Time) (CalendarDay, error) {
	bps, err := c.Blueprints(ctx)
	if err != nil {
		return CalendarDay{}, err
	}

	prefs, found, err := c.prefs.Load(ctx)
	if err != nil {
		return CalendarDay{}, err
	}

	day := CalendarDay{Date: tasks.DateKey(date), Blueprints: make([]CalendarBlueprint, 0, len(bps))}
	enabled := make([]models.ProjectBlueprint, 0, len(bps))
	for _, bp := range bps {
		on := !found || prefs.IsEnabled(bp.ID)
		day.Blueprints = append(day.Blueprints, CalendarBlueprint{ID: bp.ID, Title: bp.Title, Enabled: on})
		if on {
			enabled = append(enabled, bp)
		}
	}

	day.Tasks, err = c.tasks.DeriveTasksForDate(ctx, enabled, date)
	if err != nil {
		return CalendarDay{}, err
	}
	return day, nil
}

func (c *Calendar) Tasks(ctx context.Context, date time.Time) ([]models.DerivedTask, error) {
	day, err := c.Day(ctx, date)
	if err != nil {
		return nil, err
	}
	return day.Tasks, nil
}

func (c *Calendar) Toggle(ctx context.Context, date time.Time, taskID string) (bool, error) {
	return c.tasks.ToggleCompletion(ctx, date, taskID)
}

// ToggleBlueprint flips the calendar visibility of id and returns whether it
// is now shown.
func (c *Calendar) ToggleBlueprint(ctx context.Context, id string) (bool, error) {
	bps, err := c.Blueprints(ctx)
	if err != nil {
		return false, err
	}
	known := make([]string, 0, len(bps))
	for _, bp := range bps {
		known = append(known, bp.ID)
	}
	return c.prefs.Toggle(ctx, id, known)
}
