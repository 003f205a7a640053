// Package tasks turns authored blueprints into the calendar's daily task list
// and keeps the per-date completion flags.
package tasks

import (
	"fmt"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

// Derive walks blueprints, steps, blocks and checklist items in the order
// given and emits one task per dailyStep block and one per checklist item.
// completion is keyed by task id; missing ids are not completed. Derive has
// no side effects and does not retain its inputs.
func Derive(blueprints []models.ProjectBlueprint, completion map[string]bool) []models.DerivedTask {
	return derive(blueprints, completion, nil)
}

// legacyFunc is told about every dailyStep or checklist block whose content
// is plain text rather than a JSON object.
type legacyFunc func(blueprintID, blockID string)

func derive(blueprints []models.ProjectBlueprint, completion map[string]bool, onLegacy legacyFunc) []models.DerivedTask {
	out := []models.DerivedTask{}

	for _, bp := range blueprints {
		for _, step := range bp.Steps {
			for _, block := range step.Blocks {
				if block.BlockType != models.BlockDailyStep && block.BlockType != models.BlockChecklist {
					continue
				}

				content := parseContent(block.Content)
				if !content.ok && onLegacy != nil {
					onLegacy(bp.ID, block.ID)
				}

				switch block.BlockType {
				case models.BlockDailyStep:
					title, desc := dailyStepFields(block, content)
					id := DailyTaskID(bp.ID, block.ID)
					out = append(out, models.DerivedTask{
						TaskID:         id,
						BlueprintID:    bp.ID,
						BlueprintTitle: bp.Title,
						StepName:       step.Name,
						Title:          title,
						Description:    desc,
						BlockType:      models.BlockDailyStep,
						Completed:      completion[id],
					})

				case models.BlockChecklist:
					title, items := checklistFields(block, content)
					for i, item := range items {
						id := ChecklistTaskID(bp.ID, block.ID, i)
						out = append(out, models.DerivedTask{
							TaskID:         id,
							BlueprintID:    bp.ID,
							BlueprintTitle: bp.Title,
							StepName:       step.Name,
							Title:          title + ": " + item,
							BlockType:      models.BlockChecklist,
							Completed:      completion[id],
						})
					}
				}
			}
		}
	}

	return out
}

func DailyTaskID(blueprintID, blockID string) string {
	return blueprintID + "-" + blockID
}

// ChecklistTaskID is positional: editing the item order moves completion
// flags with the index, not with the item text.
func ChecklistTaskID(blueprintID, blockID string, index int) string {
	return fmt.Sprintf("%s-%s-item-%d", blueprintID, blockID, index)
}
