package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/common"
	"github.com/dmitrijs2005/blueprint/internal/server/blueprints"
)

// serverCapabilities is everything this backend implements.
const serverCapabilities = client.CapProjectBlueprints | client.CapCatalog | client.CapCallerBlueprints | client.CapInteractions

func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, blueprints.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, blueprints.ErrAlreadyPurchased):
		return status.Error(codes.FailedPrecondition, "already purchased")
	case errors.Is(err, blueprints.ErrInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	}
	s.logger.Error(ctx, "request failed", "op", op, "error", err)
	return status.Error(codes.Internal, "internal error")
}

func (s *GRPCServer) Ping(ctx context.Context, req *client.PingRequest) (*client.PingResponse, error) {
	return &client.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Capabilities(ctx context.Context, req *client.CapabilitiesRequest) (*client.CapabilitiesResponse, error) {
	return &client.CapabilitiesResponse{Capabilities: serverCapabilities.Names()}, nil
}

func (s *GRPCServer) CreateProjectBlueprint(ctx context.Context, req *client.CreateProjectBlueprintRequest) (*client.CreateProjectBlueprintResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	id, err := s.blueprints.Create(ctx, caller, req.Blueprint)
	if err != nil {
		return nil, s.toStatus(ctx, client.MethodCreateProjectBlueprint, err)
	}
	return &client.CreateProjectBlueprintResponse{ID: id}, nil
}

func (s *GRPCServer) CreateCatalogEntry(ctx context.Context, req *client.CreateCatalogEntryRequest) (*client.CreateCatalogEntryResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.blueprints.CreateEntry(ctx, caller, req.Entry); err != nil {
		return nil, s.toStatus(ctx, client.MethodCreateCatalogEntry, err)
	}
	return &client.CreateCatalogEntryResponse{}, nil
}

func (s *GRPCServer) ListCatalogEntries(ctx context.Context, req *client.ListCatalogEntriesRequest) (*client.ListCatalogEntriesResponse, error) {
	entries, err := s.blueprints.Catalog(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, client.MethodListCatalogEntries, err)
	}
	return &client.ListCatalogEntriesResponse{Entries: entries}, nil
}

func (s *GRPCServer) CallerProjectBlueprints(ctx context.Context, req *client.CallerProjectBlueprintsRequest) (*client.CallerProjectBlueprintsResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	bps, err := s.blueprints.CreatedBy(ctx, caller)
	if err != nil {
		return nil, s.toStatus(ctx, client.MethodCallerProjectBlueprints, err)
	}
	return &client.CallerProjectBlueprintsResponse{Blueprints: bps}, nil
}

func (s *GRPCServer) GetProjectBlueprint(ctx context.Context, req *client.GetProjectBlueprintRequest) (*client.GetProjectBlueprintResponse, error) {
	bp, err := s.blueprints.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, client.MethodGetProjectBlueprint, err)
	}
	return &client.GetProjectBlueprintResponse{Blueprint: bp}, nil
}

func (s *GRPCServer) Purchase(ctx context.Context, req *client.PurchaseRequest) (*client.PurchaseResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.blueprints.Purchase(ctx, caller, req.ID); err != nil {
		return nil, s.toStatus(ctx, client.MethodPurchase, err)
	}
	return &client.PurchaseResponse{}, nil
}

func (s *GRPCServer) ToggleLike(ctx context.Context, req *client.ToggleLikeRequest) (*client.ToggleLikeResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	liked, err := s.blueprints.ToggleLike(ctx, caller, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, client.MethodToggleLike, err)
	}
	return &client.ToggleLikeResponse{Liked: liked}, nil
}
