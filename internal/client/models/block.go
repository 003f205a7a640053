package models

import (
	"errors"
	"fmt"
	"slices"
)

type BlockType string

const (
	BlockText      BlockType = "text"
	BlockQuestion  BlockType = "question"
	BlockDropdown  BlockType = "dropdown"
	BlockChecklist BlockType = "checklist"
	BlockDailyStep BlockType = "dailyStep"
)

var (
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrInvalidBlock     = errors.New("invalid block")
)

// Block is one content unit inside a step. The concrete types below are the
// only implementations.
type Block interface {
	BlockID() string
	Type() BlockType
	// WithID returns a copy of the block under a new id. Slices are copied.
	WithID(id string) Block
}

type TextBlock struct {
	ID      string
	Content string
}

type QuestionBlock struct {
	ID          string
	Question    string
	Placeholder string
}

type DropdownBlock struct {
	ID      string
	Label   string
	Options []string
}

type ChecklistBlock struct {
	ID    string
	Title string
	Items []string
}

type DailyStepBlock struct {
	ID          string
	Day         int
	Title       string
	Description string
}

func (b TextBlock) BlockID() string      { return b.ID }
func (b QuestionBlock) BlockID() string  { return b.ID }
func (b DropdownBlock) BlockID() string  { return b.ID }
func (b ChecklistBlock) BlockID() string { return b.ID }
func (b DailyStepBlock) BlockID() string { return b.ID }

func (TextBlock) Type() BlockType      { return BlockText }
func (QuestionBlock) Type() BlockType  { return BlockQuestion }
func (DropdownBlock) Type() BlockType  { return BlockDropdown }
func (ChecklistBlock) Type() BlockType { return BlockChecklist }
func (DailyStepBlock) Type() BlockType { return BlockDailyStep }

func (b TextBlock) WithID(id string) Block {
	b.ID = id
	return b
}

func (b QuestionBlock) WithID(id string) Block {
	b.ID = id
	return b
}

func (b DropdownBlock) WithID(id string) Block {
	b.ID = id
	b.Options = slices.Clone(b.Options)
	return b
}

func (b ChecklistBlock) WithID(id string) Block {
	b.ID = id
	b.Items = slices.Clone(b.Items)
	return b
}

func (b DailyStepBlock) WithID(id string) Block {
	b.ID = id
	return b
}

// BlockEnvelope is the flat JSON form of a Block: the type tag plus the
// fields of whichever variant it carries.
type BlockEnvelope struct {
	ID          string    `json:"id"`
	Type        BlockType `json:"type"`
	Content     string    `json:"content,omitempty"`
	Question    string    `json:"question,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Label       string    `json:"label,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Title       string    `json:"title,omitempty"`
	Items       []string  `json:"items,omitempty"`
	Day         int       `json:"day,omitempty"`
	Description string    `json:"description,omitempty"`
}

func WrapBlock(b Block) BlockEnvelope {
	env := BlockEnvelope{ID: b.BlockID(), Type: b.Type()}

	switch v := b.(type) {
	case TextBlock:
		env.Content = v.Content
	case QuestionBlock:
		env.Question = v.Question
		env.Placeholder = v.Placeholder
	case DropdownBlock:
		env.Label = v.Label
		env.Options = slices.Clone(v.Options)
	case ChecklistBlock:
		env.Title = v.Title
		env.Items = slices.Clone(v.Items)
	case DailyStepBlock:
		env.Day = v.Day
		env.Title = v.Title
		env.Description = v.Description
	}

	return env
}

// Unwrap converts the envelope back into its Block, enforcing the variant
// invariants (non-empty option and item lists, positive day).
func (e BlockEnvelope) Unwrap() (Block, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidBlock)
	}

	switch e.Type {
	case BlockText:
		return TextBlock{ID: e.ID, Content: e.Content}, nil
	case BlockQuestion:
		return QuestionBlock{ID: e.ID, Question: e.Question, Placeholder: e.Placeholder}, nil
	case BlockDropdown:
		if len(e.Options) == 0 {
			return nil, fmt.Errorf("%w: dropdown %s has no options", ErrInvalidBlock, e.ID)
		}
		return DropdownBlock{ID: e.ID, Label: e.Label, Options: slices.Clone(e.Options)}, nil
	case BlockChecklist:
		if len(e.Items) == 0 {
			return nil, fmt.Errorf("%w: checklist %s has no items", ErrInvalidBlock, e.ID)
		}
		return ChecklistBlock{ID: e.ID, Title: e.Title, Items: slices.Clone(e.Items)}, nil
	case BlockDailyStep:
		if e.Day < 1 {
			return nil, fmt.Errorf("%w: daily step %s has day %d", ErrInvalidBlock, e.ID, e.Day)
		}
		return DailyStepBlock{ID: e.ID, Day: e.Day, Title: e.Title, Description: e.Description}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockType, e.Type)
	}
}

func ParseBlockType(s string) (BlockType, error) {
	switch t := BlockType(s); t {
	case BlockText, BlockQuestion, BlockDropdown, BlockChecklist, BlockDailyStep:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBlockType, s)
}
