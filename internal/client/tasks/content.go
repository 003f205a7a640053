package tasks

import (
	"encoding/json"
	"strings"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

const (
	defaultDailyTitle     = "Daily Activity"
	defaultChecklistTitle = "Checklist"
)

// structured is the JSON object some block types carry in Content. ok is
// false when Content is not a JSON object, which marks the legacy plain-text
// encoding.
type structured struct {
	ok          bool
	title       string
	description string
	items       []string
	hasItems    bool
}

func parseContent(content string) structured {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &raw); err != nil || raw == nil {
		return structured{}
	}

	s := structured{ok: true}
	s.title = stringField(raw, "title")
	s.description = stringField(raw, "description")

	if itemsRaw, found := raw["items"]; found {
		var items []any
		if json.Unmarshal(itemsRaw, &items) == nil && items != nil {
			s.hasItems = true
			s.items = make([]string, 0, len(items))
			for _, it := range items {
				if str, isStr := it.(string); isStr {
					s.items = append(s.items, str)
				}
			}
		}
	}

	return s
}

func stringField(raw map[string]json.RawMessage, key string) string {
	v, found := raw[key]
	if !found {
		return ""
	}
	var s string
	if json.Unmarshal(v, &s) != nil {
		return ""
	}
	return s
}

func dailyStepFields(b models.BlockView, s structured) (title, description string) {

	switch {
	case s.title != "":
		title = s.title
	case !s.ok && b.Content != "":
		title = b.Content
	case len(b.Options) > 0:
		title = b.Options[0]
	default:
		title = defaultDailyTitle
	}

	switch {
	case s.description != "":
		description = s.description
	case len(b.Options) > 1:
		description = b.Options[1]
	}

	return title, description
}

func checklistFields(b models.BlockView, s structured) (title string, items []string) {

	switch {
	case s.title != "":
		title = s.title
	case !s.ok && b.Content != "":
		title = b.Content
	default:
		title = defaultChecklistTitle
	}

	switch {
	case s.hasItems:
		items = s.items
	case len(b.Options) > 0:
		items = b.Options
	}

	return title, items
}
