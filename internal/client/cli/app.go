package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/builder"
	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/services"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

type Session interface {
	SignIn(token string) (models.Principal, error)
	SignOut()
	CurrentIdentity() (models.Principal, bool)
}

type Status interface {
	Mode() client.Mode
}

type Catalog interface {
	Publish(ctx context.Context, d models.Draft) (string, error)
	RetryCatalog(ctx context.Context, entry models.CatalogEntry) error
	ListCatalog(ctx context.Context) ([]models.CatalogEntry, error)
	Sync(ctx context.Context) (services.SyncReport, error)
}

type Calendar interface {
	Day(ctx context.Context, date time.Time) (services.CalendarDay, error)
	Toggle(ctx context.Context, date time.Time, taskID string) (bool, error)
	ToggleBlueprint(ctx context.Context, id string) (bool, error)
}

type Interactions interface {
	Purchase(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, id string) (bool, error)
}

type Deps struct {
	Session      Session
	Status       Status
	Catalog      Catalog
	Calendar     Calendar
	Interactions Interactions
	Logger       logging.Logger
	// Builder is optional; a fresh one is created when nil.
	Builder *builder.Builder
}

type App struct {
	session      Session
	status       Status
	catalog      Catalog
	calendar     Calendar
	interactions Interactions
	logger       logging.Logger
	builder      *builder.Builder

	// pendingCatalog holds the entry of a publish whose structure was written
	// but whose catalog listing failed.
	pendingCatalog *models.CatalogEntry

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

func NewApp(d Deps, in io.Reader, out io.Writer) *App {
	b := d.Builder
	if b == nil {
		b = builder.New()
	}
	return &App{
		session:      d.Session,
		status:       d.Status,
		catalog:      d.Catalog,
		calendar:     d.Calendar,
		interactions: d.Interactions,
		logger:       d.Logger.With("module", "cli"),
		builder:      b,
		reader:       bufio.NewReader(in),
		out:          out,
		now:          time.Now,
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.CurrentIdentity()
	return ok
}

// getStatus renders "(<principal> <mode> <stage>)".
func (a *App) getStatus() string {
	who := "anonymous"
	if p, ok := a.session.CurrentIdentity(); ok {
		who = p.String()
	}
	return fmt.Sprintf("(%s %s %s)", who, a.status.Mode(), a.builder.Stage())
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to Blueprint Studio (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
