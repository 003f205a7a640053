package cli

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/blueprint/internal/client/builder"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
)

// editable guards commands that change the draft; only the build stage edits.
func (a *App) editable() bool {
	if a.builder.Stage() != builder.StageBuild {
		a.printf("the draft is in %s; use 'back' to edit it\n", a.builder.Stage())
		return false
	}
	return true
}

func (a *App) Step(args []string) {
	if len(args) == 0 {
		a.usage("step add|rm|rename|toggle|move ...")
		return
	}
	if !a.editable() {
		return
	}

	switch sub, rest := args[0], args[1:]; {
	case sub == "add":
		d := a.builder.AddStep()
		s := d.Steps[len(d.Steps)-1]
		a.printf("added %s %q\n", s.ID, s.Name)
	case sub == "rm" && len(rest) == 1:
		a.builder.DeleteStep(rest[0])
	case sub == "rename" && len(rest) >= 2:
		a.builder.RenameStep(rest[0], strings.Join(rest[1:], " "))
	case sub == "toggle" && len(rest) == 1:
		a.builder.ToggleStepOpen(rest[0])
	case sub == "move" && len(rest) == 2:
		a.builder.ReorderSteps(rest[0], rest[1])
	default:
		a.usage("step add | step rm <id> | step rename <id> <name> | step toggle <id> | step move <id> <targetID>")
	}
}

func (a *App) Block(args []string) {
	if len(args) == 0 {
		a.usage("block add|rm|dup|move|set ...")
		return
	}
	if !a.editable() {
		return
	}

	switch sub, rest := args[0], args[1:]; {
	case sub == "add" && len(rest) == 2:
		t, err := models.ParseBlockType(rest[1])
		if err != nil {
			a.printf("error: %v\n", err)
			return
		}
		d, err := a.builder.AddBlock(rest[0], t)
		if err != nil {
			a.printf("error: %v\n", err)
			return
		}
		if s, ok := stepByID(d, rest[0]); ok {
			a.printf("added %s block %s\n", t, s.Blocks[len(s.Blocks)-1].BlockID())
		}
	case sub == "rm" && len(rest) == 2:
		a.builder.DeleteBlock(rest[0], rest[1])
	case sub == "dup" && len(rest) == 2:
		a.builder.DuplicateBlock(rest[0], rest[1])
	case sub == "move" && (len(rest) == 2 || len(rest) == 3):
		target := ""
		if len(rest) == 3 {
			target = rest[2]
		}
		a.builder.ReorderBlocks(rest[0], rest[1], target)
	case sub == "set" && len(rest) >= 4:
		a.setBlockField(rest[0], rest[1], rest[2], strings.Join(rest[3:], " "))
	default:
		a.usage("block add <stepID> <type> | block rm <stepID> <id> | block dup <stepID> <id> | " +
			"block move <id> <targetStepID> [targetBlockID] | block set <stepID> <id> <field> <value>")
	}
}

// setBlockField edits one field of a block. List fields take comma-separated
// values.
func (a *App) setBlockField(stepID, blockID, field, value string) {
	block, ok := blockByID(a.builder.Draft(), stepID, blockID)
	if !ok {
		a.printf("no block %s in step %s\n", blockID, stepID)
		return
	}

	patch := builder.BlockPatch{Type: block.Type()}
	switch field {
	case "content":
		patch.Content = &value
	case "question":
		patch.Question = &value
	case "placeholder":
		patch.Placeholder = &value
	case "label":
		patch.Label = &value
	case "options":
		patch.Options = splitValues(value)
	case "title":
		patch.Title = &value
	case "items":
		patch.Items = splitValues(value)
	case "day":
		day := builder.ParseDay(value)
		patch.Day = &day
	case "description":
		patch.Description = &value
	default:
		a.printf("unknown field %q\n", field)
		return
	}

	if _, err := a.builder.UpdateBlock(stepID, blockID, patch); err != nil {
		a.printf("error: %v\n", err)
	}
}

func splitValues(s string) []string {
	out := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (a *App) Title(args []string) {
	if a.editable() {
		a.builder.SetTitle(strings.Join(args, " "))
	}
}

func (a *App) Description(args []string) {
	if a.editable() {
		a.builder.SetDescription(strings.Join(args, " "))
	}
}

func (a *App) Price(args []string) {
	if !a.editable() {
		return
	}

	var err error
	switch {
	case len(args) == 1 && args[0] == string(models.PriceFree):
		_, err = a.builder.SetPricing(models.PriceFree, "")
	case len(args) == 2 && args[0] == string(models.PricePaid):
		_, err = a.builder.SetPricing(models.PricePaid, args[1])
	default:
		a.usage("price free | price paid <amount>")
		return
	}
	if err != nil {
		a.printf("error: %v\n", err)
	}
}

func (a *App) Theme(args []string) {
	if !a.editable() {
		return
	}
	if len(args) == 0 {
		names := make([]string, 0, len(builder.Themes))
		for _, p := range builder.Themes {
			names = append(names, p.Name)
		}
		a.usage("theme <" + strings.Join(names, "|") + "> | theme custom <primary> <secondary> <accent>")
		return
	}

	var err error
	if args[0] == "custom" {
		if len(args) != 4 {
			a.usage("theme custom <primary> <secondary> <accent>")
			return
		}
		_, err = a.builder.SetCustomTheme(args[1], args[2], args[3])
	} else {
		_, err = a.builder.SetThemePreset(strings.Join(args, " "))
	}
	if err != nil {
		a.printf("error: %v\n", err)
	}
}

func (a *App) Tag(args []string) {
	if !a.editable() {
		return
	}
	if len(args) < 2 {
		a.usage("tag add <tag> | tag rm <tag>")
		return
	}

	tag := strings.Join(args[1:], " ")
	switch args[0] {
	case "add":
		if _, err := a.builder.AddTag(tag); err != nil {
			a.printf("error: %v\n", err)
		}
	case "rm":
		a.builder.RemoveTag(tag)
	default:
		a.usage("tag add <tag> | tag rm <tag>")
	}
}

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// Image sets the cover (or banner) image from a file, or clears it.
func (a *App) Image(args []string, banner bool) {
	if !a.editable() {
		return
	}
	if len(args) != 1 {
		a.usage("image <path>|clear")
		return
	}

	var img *models.Attachment
	if args[0] != "clear" {
		data, err := readFile(args[0])
		if err != nil {
			a.printf("error: %v\n", err)
			return
		}
		img = &models.Attachment{ContentType: http.DetectContentType(data), Data: data}
	}

	if banner {
		a.builder.SetBannerImage(img)
	} else {
		a.builder.SetImage(img)
	}
}

func (a *App) Preview() {
	if err := a.builder.GoToPreview(); err != nil {
		a.printf("cannot preview: %v\n", err)
		return
	}
	a.Show()
}

// Show prints the draft: the editable structure in build, the rendered
// blueprint otherwise.
func (a *App) Show() {
	d := a.builder.Draft()

	title := d.Title
	if title == "" {
		title = "(untitled)"
	}
	a.printf("%s [%s]\n", title, a.builder.Stage())
	if d.Description != "" {
		a.println(d.Description)
	}

	price := "free"
	if !d.IsFree() {
		price = fmt.Sprintf("%d.%02d", d.PriceCents()/100, d.PriceCents()%100)
	}
	a.printf("price: %s  tags: %s\n", price, strings.Join(d.Tags, ", "))

	for _, s := range d.Steps {
		marker := "-"
		if !s.IsOpen {
			marker = "+"
		}
		if a.builder.Stage() == builder.StageBuild {
			a.printf("%s %s %s\n", marker, s.ID, s.Name)
		} else {
			a.printf("%s %s\n", marker, s.Name)
		}
		for _, bl := range s.Blocks {
			if a.builder.Stage() == builder.StageBuild {
				a.printf("    %s %-9s %s\n", bl.BlockID(), bl.Type(), summary(bl))
			} else {
				a.printf("    %s\n", summary(bl))
			}
		}
	}
}

func summary(b models.Block) string {
	switch v := b.(type) {
	case models.TextBlock:
		return v.Content
	case models.QuestionBlock:
		return v.Question
	case models.DropdownBlock:
		return fmt.Sprintf("%s [%s]", v.Label, strings.Join(v.Options, ", "))
	case models.ChecklistBlock:
		return fmt.Sprintf("%s [%s]", v.Title, strings.Join(v.Items, ", "))
	case models.DailyStepBlock:
		return fmt.Sprintf("Day %d: %s", v.Day, v.Title)
	}
	return ""
}

func stepByID(d models.Draft, id string) (models.Step, bool) {
	for _, s := range d.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return models.Step{}, false
}

func blockByID(d models.Draft, stepID, blockID string) (models.Block, bool) {
	s, ok := stepByID(d, stepID)
	if !ok {
		return nil, false
	}
	for _, b := range s.Blocks {
		if b.BlockID() == blockID {
			return b, true
		}
	}
	return nil, false
}
