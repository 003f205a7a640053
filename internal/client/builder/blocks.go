package builder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

// DefaultBlock returns a block of type t carrying placeholder content.
func DefaultBlock(t models.BlockType, id string) (models.Block, error) {
	switch t {
	case models.BlockText:
		return models.TextBlock{ID: id, Content: "Enter your text here..."}, nil
	case models.BlockQuestion:
		return models.QuestionBlock{ID: id, Question: "Your question?", Placeholder: "Answer here..."}, nil
	case models.BlockDropdown:
		return models.DropdownBlock{ID: id, Label: "Select an option", Options: []string{"Option 1", "Option 2", "Option 3"}}, nil
	case models.BlockChecklist:
		return models.ChecklistBlock{ID: id, Title: "Checklist", Items: []string{"Task 1", "Task 2", "Task 3"}}, nil
	case models.BlockDailyStep:
		return models.DailyStepBlock{ID: id, Day: 1, Title: "Day Activity", Description: "Describe the daily activity..."}, nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrUnknownBlockType, t)
}

// NextOptionLabel is the label for an option appended to a list of n.
func NextOptionLabel(n int) string { return fmt.Sprintf("Option %d", n+1) }

// NextItemLabel is the label for an item appended to a list of n.
func NextItemLabel(n int) string { return fmt.Sprintf("Item %d", n+1) }

func (b *Builder) AddBlock(stepID string, t models.BlockType) (models.Draft, error) {
	if stepIndex(b.draft, stepID) < 0 {
		return b.draft, fmt.Errorf("%w: %s", ErrStepNotFound, stepID)
	}

	block, err := DefaultBlock(t, b.newID())
	if err != nil {
		return b.draft, err
	}

	return b.set(mapStep(b.draft, stepID, func(s models.Step) models.Step {
		s.Blocks = append(slices.Clip(s.Blocks), block)
		return s
	})), nil
}

// BlockPatch is a partial update. Type must name the variant of the block
// being edited; fields belonging to other variants are ignored.
type BlockPatch struct {
	Type        models.BlockType
	Content     *string
	Question    *string
	Placeholder *string
	Label       *string
	Options     []string
	Title       *string
	Items       []string
	Day         *int
	Description *string
}

// UpdateBlock merges patch into the matching block. A block that is missing
// or of another type is left alone; a patch that would break the variant's
// invariants is refused.
func (b *Builder) UpdateBlock(stepID, blockID string, patch BlockPatch) (models.Draft, error) {
	si, bi := locate(b.draft, stepID, blockID)
	if si < 0 || bi < 0 {
		return b.draft, nil
	}

	current := b.draft.Steps[si].Blocks[bi]
	if current.Type() != patch.Type {
		return b.draft, nil
	}

	updated, err := applyPatch(current, patch)
	if err != nil {
		return b.draft, err
	}

	return b.set(mapStep(b.draft, stepID, func(s models.Step) models.Step {
		s.Blocks = slices.Clone(s.Blocks)
		s.Blocks[bi] = updated
		return s
	})), nil
}

func applyPatch(block models.Block, p BlockPatch) (models.Block, error) {
	switch v := block.(type) {
	case models.TextBlock:
		setIf(&v.Content, p.Content)
		return v, nil

	case models.QuestionBlock:
		setIf(&v.Question, p.Question)
		setIf(&v.Placeholder, p.Placeholder)
		return v, nil

	case models.DropdownBlock:
		setIf(&v.Label, p.Label)
		if p.Options != nil {
			if len(p.Options) == 0 {
				return nil, ErrEmptyOptions
			}
			v.Options = slices.Clone(p.Options)
		}
		return v, nil

	case models.ChecklistBlock:
		setIf(&v.Title, p.Title)
		if p.Items != nil {
			if len(p.Items) == 0 {
				return nil, ErrEmptyItems
			}
			v.Items = slices.Clone(p.Items)
		}
		return v, nil

	case models.DailyStepBlock:
		if p.Day != nil {
			if *p.Day < 1 {
				return nil, ErrInvalidDay
			}
			v.Day = *p.Day
		}
		setIf(&v.Title, p.Title)
		setIf(&v.Description, p.Description)
		return v, nil
	}

	return nil, fmt.Errorf("%w: %T", models.ErrUnknownBlockType, block)
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// ParseDay reads a day number the way the editor does: anything that is not
// a positive integer becomes day 1.
func ParseDay(s string) int {
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d", &n); err != nil || n < 1 {
		return 1
	}
	return n
}

func (b *Builder) DeleteBlock(stepID, blockID string) models.Draft {
	if si, bi := locate(b.draft, stepID, blockID); si < 0 || bi < 0 {
		return b.draft
	}
	return b.set(mapStep(b.draft, stepID, func(s models.Step) models.Step {
		s.Blocks = slices.DeleteFunc(slices.Clone(s.Blocks), func(bl models.Block) bool { return bl.BlockID() == blockID })
		return s
	}))
}

// DuplicateBlock inserts a copy with a fresh id right after the source block.
func (b *Builder) DuplicateBlock(stepID, blockID string) models.Draft {
	si, bi := locate(b.draft, stepID, blockID)
	if si < 0 || bi < 0 {
		return b.draft
	}

	dup := b.draft.Steps[si].Blocks[bi].WithID(b.newID())
	return b.set(mapStep(b.draft, stepID, func(s models.Step) models.Step {
		s.Blocks = slices.Insert(slices.Clone(s.Blocks), bi+1, dup)
		return s
	}))
}

// ReorderBlocks moves a block, possibly into another step, so that it sits
// right before targetBlockID in targetStepID. When the target block is not in
// that step the block goes to the end of it. Unknown dragged blocks and
// unknown target steps are ignored.
func (b *Builder) ReorderBlocks(draggedBlockID, targetStepID, targetBlockID string) models.Draft {
	if draggedBlockID == targetBlockID {
		return b.draft
	}

	fromStep, fromIdx := findBlock(b.draft, draggedBlockID)
	if fromStep < 0 || stepIndex(b.draft, targetStepID) < 0 {
		return b.draft
	}

	moved := b.draft.Steps[fromStep].Blocks[fromIdx]
	d := mapStep(b.draft, b.draft.Steps[fromStep].ID, func(s models.Step) models.Step {
		s.Blocks = slices.Delete(slices.Clone(s.Blocks), fromIdx, fromIdx+1)
		return s
	})

	d = mapStep(d, targetStepID, func(s models.Step) models.Step {
		at := slices.IndexFunc(s.Blocks, func(bl models.Block) bool { return bl.BlockID() == targetBlockID })
		if at < 0 {
			at = len(s.Blocks)
		}
		s.Blocks = slices.Insert(slices.Clone(s.Blocks), at, moved)
		return s
	})

	return b.set(d)
}

func locate(d models.Draft, stepID, blockID string) (int, int) {
	si := stepIndex(d, stepID)
	if si < 0 {
		return -1, -1
	}
	bi := slices.IndexFunc(d.Steps[si].Blocks, func(bl models.Block) bool { return bl.BlockID() == blockID })
	return si, bi
}

func findBlock(d models.Draft, blockID string) (int, int) {
	for si, s := range d.Steps {
		for bi, bl := range s.Blocks {
			if bl.BlockID() == blockID {
				return si, bi
			}
		}
	}
	return -1, -1
}
