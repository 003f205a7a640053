package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/blueprint/internal/client/builder"
	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/client/seed"
	"github.com/dmitrijs2005/blueprint/internal/client/services"
	"github.com/dmitrijs2005/blueprint/internal/client/store"
	"github.com/dmitrijs2005/blueprint/internal/common"
)

// describe turns a service error into the message shown to the user.
func describe(err error) string {
	var (
		ve *builder.ValidationError
		pe *services.PublishError
		re *client.RejectedError
		se *store.StorageError
	)

	switch {
	case errors.As(err, &ve):
		return fmt.Sprintf("the draft is not ready: %s", ve)
	case errors.Is(err, client.ErrAuthenticationRequired):
		return "sign in first (login <token>)"
	case errors.Is(err, client.ErrUnavailable):
		return "the backend is not reachable; try again once it is back online"
	case errors.Is(err, client.ErrNotSupported):
		return "the backend does not support this yet"
	case errors.As(err, &re):
		return fmt.Sprintf("the backend rejected the request: %s", re.Message)
	case errors.As(err, &se):
		return fmt.Sprintf("could not use local storage: %s", se.Kind.Remedy())
	case errors.Is(err, seed.ErrAlreadyPurchased):
		return "you already own this blueprint"
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	case errors.As(err, &pe):
		return pe.Error()
	}
	return err.Error()
}

// Publish moves the draft to the publish stage and publishes it.
func (a *App) Publish(ctx context.Context) {
	if a.builder.Stage() == builder.StageBuild {
		if err := a.builder.GoToPreview(); err != nil {
			a.printf("Publish failed: %s\n", describe(err))
			return
		}
	}
	if err := a.builder.GoToPublish(); err != nil {
		a.printf("Publish failed: %s\n", describe(err))
		return
	}

	id, err := a.catalog.Publish(ctx, a.builder.Draft())
	if err != nil {
		var pe *services.PublishError
		if errors.As(err, &pe) && pe.Stage == services.StageCatalog {
			entry := pe.Entry
			a.pendingCatalog = &entry
			a.printf("Blueprint %s was created but its catalog listing failed (%s); run 'retry'\n",
				pe.BlueprintID, describe(pe.Err))
			a.builder.Reset()
			return
		}
		a.printf("Publish failed: %s\n", describe(err))
		return
	}

	a.builder.Reset()
	if models.IsLocalID(id) {
		a.printf("Saved locally as %s, will sync later\n", id)
		return
	}
	a.printf("Published as %s\n", id)
}

// Retry repeats the catalog listing of the last half-finished publish.
func (a *App) Retry(ctx context.Context) {
	if a.pendingCatalog == nil {
		a.println("Nothing to retry")
		return
	}

	if err := a.catalog.RetryCatalog(ctx, *a.pendingCatalog); err != nil {
		a.printf("Retry failed: %s\n", describe(err))
		return
	}
	a.printf("Listed %s in the catalog\n", a.pendingCatalog.ID)
	a.pendingCatalog = nil
}

func (a *App) Catalog(ctx context.Context) {
	entries, err := a.catalog.ListCatalog(ctx)
	if err != nil {
		a.printf("error: %s\n", describe(err))
		return
	}
	if len(entries) == 0 {
		a.println("The catalog is empty")
		return
	}

	for _, e := range entries {
		price := "free"
		if !e.IsFree {
			price = fmt.Sprintf("$%d.%02d", e.Price/100, e.Price%100)
		}
		local := ""
		if models.IsLocalID(e.ID) {
			local = " (local)"
		}
		a.printf("%s%s  %s  by %s\n", e.ID, local, price, e.Creator)
		if e.Description != "" {
			a.printf("    %s\n", e.Description)
		}
		if len(e.Tags) > 0 {
			a.printf("    #%s\n", strings.Join(e.Tags, " #"))
		}
	}
}

func (a *App) Buy(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.usage("buy <blueprintID>")
		return
	}
	if err := a.interactions.Purchase(ctx, args[0]); err != nil {
		a.printf("Purchase failed: %s\n", describe(err))
		return
	}
	a.printf("Purchased %s\n", args[0])
}

func (a *App) Like(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.usage("like <blueprintID>")
		return
	}
	liked, err := a.interactions.ToggleLike(ctx, args[0])
	if err != nil {
		a.printf("Like failed: %s\n", describe(err))
		return
	}
	if liked {
		a.printf("Liked %s\n", args[0])
	} else {
		a.printf("Unliked %s\n", args[0])
	}
}

func (a *App) Sync(ctx context.Context) {
	report, err := a.catalog.Sync(ctx)
	if err != nil {
		a.printf("Sync failed: %s\n", describe(err))
		return
	}

	localIDs := make([]string, 0, len(report.Synced))
	for id := range report.Synced {
		localIDs = append(localIDs, id)
	}
	sort.Strings(localIDs)

	for _, id := range localIDs {
		a.printf("synced %s -> %s\n", id, report.Synced[id])
	}
	for _, f := range report.Failed {
		a.printf("failed %s: %s\n", f.LocalID, describe(f.Err))
	}
	for _, id := range report.Skipped {
		a.printf("skipped %s: no structure stored\n", id)
	}
	if len(localIDs)+len(report.Failed)+len(report.Skipped) == 0 {
		a.println("Nothing to sync")
	}
}
