package builder

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/google/uuid"
)

type Stage string

const (
	StageBuild   Stage = "build"
	StagePreview Stage = "preview"
	StagePublish Stage = "publish"
)

type Builder struct {
	stage Stage
	draft models.Draft
	newID func() string
}

type Option func(*Builder)

// WithIDGenerator replaces the step and block id source.
func WithIDGenerator(fn func() string) Option {
	return func(b *Builder) { b.newID = fn }
}

func New(opts ...Option) *Builder {
	b := &Builder{stage: StageBuild, draft: models.NewDraft(), newID: NewID}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewID returns an editor id of the form id-<unix ms>-<8 hex>.
func NewID() string {
	return fmt.Sprintf("id-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func (b *Builder) Stage() Stage {
	return b.stage
}

// Draft returns the current snapshot. Callers must treat it as read-only.
func (b *Builder) Draft() models.Draft {
	return b.draft
}

func (b *Builder) set(d models.Draft) models.Draft {
	b.draft = d
	return d
}

// GoToPreview moves build -> preview once the draft has a step with a block,
// and publish -> preview unconditionally.
func (b *Builder) GoToPreview() error {
	switch b.stage {
	case StageBuild:
		if err := ValidateForPreview(b.draft); err != nil {
			return err
		}
	case StagePreview:
		return nil
	}
	b.stage = StagePreview
	return nil
}

func (b *Builder) GoToPublish() error {
	switch b.stage {
	case StagePreview:
		b.stage = StagePublish
		return nil
	case StagePublish:
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.stage, StagePublish)
}

// Back steps one stage towards build.
func (b *Builder) Back() Stage {
	switch b.stage {
	case StagePublish:
		b.stage = StagePreview
	case StagePreview:
		b.stage = StageBuild
	}
	return b.stage
}

// Reset discards the draft, typically after it was published.
func (b *Builder) Reset() {
	b.stage = StageBuild
	b.draft = models.NewDraft()
}
