package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/tasks"
)

// dateArg reads an optional YYYY-MM-DD argument, defaulting to today.
func (a *App) dateArg(args []string) (time.Time, bool) {
	if len(args) == 0 {
		return a.now(), true
	}
	d, err := tasks.ParseDate(args[0])
	if err != nil {
		a.printf("error: %v\n", err)
		return time.Time{}, false
	}
	return d, true
}

func (a *App) Tasks(ctx context.Context, args []string) {
	date, ok := a.dateArg(args)
	if !ok {
		return
	}

	day, err := a.calendar.Day(ctx, date)
	if err != nil {
		a.printf("error: %s\n", describe(err))
		return
	}

	a.printf("Tasks for %s\n", day.Date)
	for _, bp := range day.Blueprints {
		state := "on "
		if !bp.Enabled {
			state = "off"
		}
		a.printf("  [%s] %s %s\n", state, bp.ID, bp.Title)
	}
	if len(day.Tasks) == 0 {
		a.println("  no tasks")
		return
	}
	for _, t := range day.Tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		a.printf("  [%s] %s  %s / %s: %s\n", mark, t.TaskID, t.BlueprintTitle, t.StepName, t.Title)
	}
}

func (a *App) Done(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		a.usage("done <taskID> [date]")
		return
	}
	date, ok := a.dateArg(args[1:])
	if !ok {
		return
	}

	done, err := a.calendar.Toggle(ctx, date, args[0])
	if err != nil {
		a.printf("error: %s\n", describe(err))
		return
	}
	if done {
		a.printf("%s done\n", args[0])
	} else {
		a.printf("%s not done\n", args[0])
	}
}

func (a *App) Enable(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.usage("enable <blueprintID>")
		return
	}

	enabled, err := a.calendar.ToggleBlueprint(ctx, args[0])
	if err != nil {
		a.printf("error: %s\n", describe(err))
		return
	}
	if enabled {
		a.printf("%s shown in the calendar\n", args[0])
	} else {
		a.printf("%s hidden from the calendar\n", args[0])
	}
}
