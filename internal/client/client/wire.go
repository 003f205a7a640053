package client

import "github.com/dmitrijs2005/blueprint/internal/client/models"

// Request and response messages of the backend service. They travel as JSON.

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type CapabilitiesRequest struct{}

type CapabilitiesResponse struct {
	Capabilities []string `json:"capabilities"`
}

type CreateProjectBlueprintRequest struct {
	Blueprint models.ProjectBlueprint `json:"blueprint"`
}

type CreateProjectBlueprintResponse struct {
	ID string `json:"id"`
}

type CreateCatalogEntryRequest struct {
	Entry models.CatalogEntry `json:"entry"`
}

type CreateCatalogEntryResponse struct{}

type ListCatalogEntriesRequest struct{}

type ListCatalogEntriesResponse struct {
	Entries []models.CatalogEntry `json:"entries"`
}

type CallerProjectBlueprintsRequest struct{}

type CallerProjectBlueprintsResponse struct {
	Blueprints []models.ProjectBlueprint `json:"blueprints"`
}

type GetProjectBlueprintRequest struct {
	ID string `json:"id"`
}

type GetProjectBlueprintResponse struct {
	Blueprint models.ProjectBlueprint `json:"blueprint"`
}

type PurchaseRequest struct {
	ID string `json:"id"`
}

type PurchaseResponse struct{}

type ToggleLikeRequest struct {
	ID string `json:"id"`
}

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}
