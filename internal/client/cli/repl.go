package cli

import (
	"bufio"
	"context"
	"strings"
)

const helpText = `Session:   login [token], logout
Steps:     step add | step rm <id> | step rename <id> <name> | step toggle <id> | step move <id> <targetID>
Blocks:    block add <stepID> <type> | block rm <stepID> <id> | block dup <stepID> <id>
           block move <id> <targetStepID> [targetBlockID] | block set <stepID> <id> <field> <value>
Metadata:  title <text> | desc <text> | price free | price paid <amount>
           theme <preset> | theme custom <primary> <secondary> <accent>
           tag add <tag> | tag rm <tag> | image <path>|clear | banner <path>|clear
Stages:    preview, back, show
Catalog:   publish, retry, catalog, buy <id>, like <id>, sync
Calendar:  tasks [date], done <taskID> [date], enable <blueprintID>
Other:     help, exit`

// runREPL reads one command per line and dispatches it to a. Command errors
// are reported by the handlers themselves so the loop keeps running. The loop
// exits on EOF or on "exit"/"quit".
func runREPL(ctx context.Context, a *App, statusFn func() string, scanner *bufio.Scanner) {
	for {
		a.printf("studio %s> ", statusFn())
		if !scanner.Scan() {
			a.println()
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			a.println(helpText)

		case "login":
			a.Login(ctx, args)
		case "logout":
			a.Logout()

		case "step":
			a.Step(args)
		case "block":
			a.Block(args)
		case "title":
			a.Title(args)
		case "desc":
			a.Description(args)
		case "price":
			a.Price(args)
		case "theme":
			a.Theme(args)
		case "tag":
			a.Tag(args)
		case "image":
			a.Image(args, false)
		case "banner":
			a.Image(args, true)

		case "preview":
			a.Preview()
		case "back":
			a.printf("stage: %s\n", a.builder.Back())
		case "show":
			a.Show()

		case "publish":
			a.Publish(ctx)
		case "retry":
			a.Retry(ctx)
		case "catalog":
			a.Catalog(ctx)
		case "buy":
			a.Buy(ctx, args)
		case "like":
			a.Like(ctx, args)
		case "sync":
			a.Sync(ctx)

		case "tasks":
			a.Tasks(ctx, args)
		case "done":
			a.Done(ctx, args)
		case "enable":
			a.Enable(ctx, args)

		case "exit", "quit":
			a.println("Bye!")
			return

		default:
			a.println("Unknown command:", cmd)
		}
	}
}
