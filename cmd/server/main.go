package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/blueprint/internal/buildinfo"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/flagx"
	"github.com/dmitrijs2005/blueprint/internal/server"
	"github.com/dmitrijs2005/blueprint/internal/server/auth"
	"github.com/dmitrijs2005/blueprint/internal/server/config"
)

// tokenFlag returns the principal given with -token, if any.
func tokenFlag(args []string) string {
	var principal string
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&principal, "token", "", "print a dev access token for this principal and exit")
	_ = fs.Parse(flagx.FilterArgs(args, []string{"-token", "--token"}))
	return principal
}

func main() {

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if name := tokenFlag(os.Args[1:]); name != "" {
		p, err := models.ParsePrincipal(name)
		if err != nil {
			log.Fatalf("%v", err)
		}
		tok, err := auth.GenerateToken(p, []byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Println(tok)
		return
	}

	buildinfo.PrintBuildData(os.Stdout)

	server.NewApp(cfg).Run(context.Background())

}
