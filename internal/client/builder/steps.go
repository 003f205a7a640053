package builder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

func (b *Builder) AddStep() models.Draft {
	d := b.draft
	step := models.Step{
		ID:     b.newID(),
		Name:   fmt.Sprintf("Step %d", len(d.Steps)+1),
		IsOpen: true,
		Blocks: []models.Block{},
	}
	d.Steps = append(slices.Clip(d.Steps), step)
	return b.set(d)
}

func (b *Builder) DeleteStep(stepID string) models.Draft {
	d := b.draft
	d.Steps = slices.DeleteFunc(slices.Clone(d.Steps), func(s models.Step) bool { return s.ID == stepID })
	return b.set(d)
}

// RenameStep ignores names that are blank after trimming.
func (b *Builder) RenameStep(stepID, name string) models.Draft {
	name = strings.TrimSpace(name)
	if name == "" {
		return b.draft
	}
	return b.set(mapStep(b.draft, stepID, func(s models.Step) models.Step {
		s.Name = name
		return s
	}))
}

func (b *Builder) ToggleStepOpen(stepID string) models.Draft {
	return b.set(mapStep(b.draft, stepID, func(s models.Step) models.Step {
		s.IsOpen = !s.IsOpen
		return s
	}))
}

// ReorderSteps moves the dragged step into the target's position. Equal or
// unknown ids leave the draft untouched.
func (b *Builder) ReorderSteps(draggedID, targetID string) models.Draft {
	if draggedID == targetID {
		return b.draft
	}

	from := stepIndex(b.draft, draggedID)
	to := stepIndex(b.draft, targetID)
	if from < 0 || to < 0 {
		return b.draft
	}

	d := b.draft
	steps := slices.Clone(d.Steps)
	moved := steps[from]
	steps = slices.Delete(steps, from, from+1)
	d.Steps = slices.Insert(steps, to, moved)
	return b.set(d)
}

func stepIndex(d models.Draft, stepID string) int {
	return slices.IndexFunc(d.Steps, func(s models.Step) bool { return s.ID == stepID })
}

// mapStep returns a draft whose step stepID was replaced by fn(step). The
// steps slice is always fresh; other steps are shared by value.
func mapStep(d models.Draft, stepID string, fn func(models.Step) models.Step) models.Draft {
	steps := make([]models.Step, len(d.Steps))
	for i, s := range d.Steps {
		if s.ID == stepID {
			s = fn(s)
		}
		steps[i] = s
	}
	d.Steps = steps
	return d
}
