package models

import (
	"strings"
	"time"
)

// ProjectBlueprint is the structural record of a published blueprint, in the
// shape the backend stores: steps and blocks carry explicit order and every
// block is flattened to a content string plus an options list.
type ProjectBlueprint struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedBy Principal  `json:"createdBy,omitempty"`
	Steps     []StepView `json:"steps"`
}

type StepView struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Order  int         `json:"order"`
	Blocks []BlockView `json:"blocks"`
}

type BlockView struct {
	ID        string    `json:"id"`
	BlockType BlockType `json:"blockType"`
	Content   string    `json:"content"`
	Options   []string  `json:"options"`
	Order     int       `json:"order"`
}

// CatalogEntry is the listing record of a blueprint.
type CatalogEntry struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Creator     Principal   `json:"creator"`
	Price       uint64      `json:"price"`
	IsFree      bool        `json:"isFree"`
	CreatedAt   time.Time   `json:"createdAt"`
	Theme       Theme       `json:"theme"`
	Tags        []string    `json:"tags"`
	Image       *Attachment `json:"image,omitempty"`
	BannerImage *Attachment `json:"bannerImage,omitempty"`
}

const LocalIDPrefix = "local-"

// IsLocalID reports whether id was minted for an offline publish.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}
