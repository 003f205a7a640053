package cli

import (
	"context"
	"os"
	"strings"

	"golang.org/x/term"
)

// readSecret is a test seam for term.ReadPassword.
var readSecret = term.ReadPassword

// readToken reads an access token from the terminal without echo.
func (a *App) readToken() (string, error) {
	a.printf("Paste access token: ")
	b, err := readSecret(int(os.Stdin.Fd()))
	a.println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Login signs in with the token given as an argument, or prompts for one.
func (a *App) Login(ctx context.Context, args []string) {
	var (
		token string
		err   error
	)
	if len(args) > 0 {
		token = args[0]
	} else if token, err = a.readToken(); err != nil {
		a.printf("could not read token: %v\n", err)
		return
	}

	p, err := a.session.SignIn(token)
	if err != nil {
		a.printf("Login unsuccessful: %v\n", err)
		return
	}

	a.logger.Info(ctx, "signed in", "principal", p.String())
	a.printf("Signed in as %s\n", p)
}

func (a *App) Logout() {
	a.session.SignOut()
	a.println("Signed out")
}

func (a *App) usage(text string) {
	a.println("Usage:", text)
}
