package builder

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

// Structured payloads written into BlockView.Content for block types that do
// not fit a single string.
type checklistContent struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type dailyStepContent struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Export converts a draft into the structural record and the catalog entry
// published under id.
func Export(d models.Draft, id string, creator models.Principal, now time.Time) (models.ProjectBlueprint, models.CatalogEntry) {
	bp := models.ProjectBlueprint{
		ID:        id,
		Title:     strings.TrimSpace(d.Title),
		CreatedBy: creator,
		Steps:     ExportSteps(d.Steps),
	}

	entry := models.CatalogEntry{
		ID:          id,
		Description: strings.TrimSpace(d.Description),
		Creator:     creator,
		Price:       d.PriceCents(),
		IsFree:      d.IsFree(),
		CreatedAt:   now,
		Theme:       d.Theme,
		Tags:        slices.Clone(d.Tags),
		Image:       d.Image,
		BannerImage: d.BannerImage,
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}
	if entry.Theme == (models.Theme{}) {
		entry.Theme = models.DefaultTheme
	}

	return bp, entry
}

func ExportSteps(steps []models.Step) []models.StepView {
	out := make([]models.StepView, 0, len(steps))
	for i, s := range steps {
		view := models.StepView{ID: s.ID, Name: s.Name, Order: i, Blocks: make([]models.BlockView, 0, len(s.Blocks))}
		for j, b := range s.Blocks {
			bv := ExportBlock(b)
			bv.Order = j
			view.Blocks = append(view.Blocks, bv)
		}
		out = append(out, view)
	}
	return out
}

// ExportBlock flattens a block. Checklist and dailyStep blocks carry their
// fields as JSON in Content and mirror them into Options for readers that
// only understand the positional form.
func ExportBlock(b models.Block) models.BlockView {
	bv := models.BlockView{ID: b.BlockID(), BlockType: b.Type(), Options: []string{}}

	switch v := b.(type) {
	case models.TextBlock:
		bv.Content = v.Content
	case models.QuestionBlock:
		bv.Content = v.Question
		bv.Options = []string{v.Placeholder}
	case models.DropdownBlock:
		bv.Content = v.Label
		bv.Options = slices.Clone(v.Options)
	case models.ChecklistBlock:
		bv.Content = mustJSON(checklistContent{Title: v.Title, Items: v.Items})
		bv.Options = slices.Clone(v.Items)
	case models.DailyStepBlock:
		bv.Content = mustJSON(dailyStepContent{Day: v.Day, Title: v.Title, Description: v.Description})
		bv.Options = []string{v.Title, v.Description}
	}

	return bv
}

// mustJSON marshals structs of strings and ints, which cannot fail.
func mustJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
