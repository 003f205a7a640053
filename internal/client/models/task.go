package models

// DerivedTask is a calendar task computed from a dailyStep or checklist
// block. It is never stored; only its completion flag is.
type DerivedTask struct {
	TaskID         string    `json:"taskId"`
	BlueprintID    string    `json:"blueprintId"`
	BlueprintTitle string    `json:"blueprintTitle"`
	StepName       string    `json:"stepName"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	BlockType      BlockType `json:"blockType"`
	Completed      bool      `json:"completed"`
}
