package blueprints

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

type Service struct {
	repo   Repository
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("module", "blueprints"),
		now:    time.Now,
		newID:  NewBlueprintID,
	}
}

// NewBlueprintID returns a remote id of the form bp-<uuid>.
func NewBlueprintID() string {
	return "bp-" + uuid.NewString()
}

// Create stores bp on behalf of caller. An empty id is assigned here; a
// caller-chosen id must be unused.
func (s *Service) Create(ctx context.Context, caller models.Principal, bp models.ProjectBlueprint) (string, error) {
	if strings.TrimSpace(bp.Title) == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if len(bp.Steps) == 0 {
		return "", fmt.Errorf("%w: at least one step is required", ErrInvalid)
	}

	if bp.ID == "" {
		bp.ID = s.newID()
	}
	bp.CreatedBy = caller

	if err := s.repo.CreateBlueprint(ctx, bp); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "blueprint created", "id", bp.ID, "creator", caller.String())
	return bp.ID, nil
}

// CreateEntry lists a blueprint the caller created.
func (s *Service) CreateEntry(ctx context.Context, caller models.Principal, e models.CatalogEntry) error {
	if e.ID == "" {
		return fmt.Errorf("%w: entry id is required", ErrInvalid)
	}

	bp, err := s.repo.Blueprint(ctx, e.ID)
	if err != nil {
		return err
	}
	if bp.CreatedBy != caller {
		return fmt.Errorf("%w: blueprint %s belongs to another creator", ErrInvalid, e.ID)
	}

	e.Creator = caller
	e.IsFree = e.Price == 0
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return err
	}

	s.logger.Info(ctx, "catalog entry created", "id", e.ID)
	return nil
}

func (s *Service) Catalog(ctx context.Context) ([]models.CatalogEntry, error) {
	return s.repo.Entries(ctx)
}

func (s *Service) CreatedBy(ctx context.Context, caller models.Principal) ([]models.ProjectBlueprint, error) {
	return s.repo.BlueprintsBy(ctx, caller)
}

func (s *Service) Get(ctx context.Context, id string) (models.ProjectBlueprint, error) {
	return s.repo.Blueprint(ctx, id)
}

// Purchase records a purchase of a listed blueprint. Buying twice fails with
// ErrAlreadyPurchased.
func (s *Service) Purchase(ctx context.Context, caller models.Principal, id string) error {
	if _, err := s.repo.Entry(ctx, id); err != nil {
		return err
	}
	return s.repo.AddPurchase(ctx, caller, id)
}

func (s *Service) ToggleLike(ctx context.Context, caller models.Principal, id string) (bool, error) {
	if _, err := s.repo.Entry(ctx, id); err != nil {
		return false, err
	}
	return s.repo.ToggleLike(ctx, caller, id)
}
