package client

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "blueprint.v1.BlueprintBackend"

const (
	MethodPing                    = "Ping"
	MethodCapabilities            = "Capabilities"
	MethodCreateProjectBlueprint  = "CreateProjectBlueprint"
	MethodCreateCatalogEntry      = "CreateCatalogEntry"
	MethodListCatalogEntries      = "ListCatalogEntries"
	MethodCallerProjectBlueprints = "CallerProjectBlueprints"
	MethodGetProjectBlueprint     = "GetProjectBlueprint"
	MethodPurchase                = "Purchase"
	MethodToggleLike              = "ToggleLike"
)

// FullMethod returns the gRPC path of a backend method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// BackendServer is the server side of the backend service.
type BackendServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Capabilities(context.Context, *CapabilitiesRequest) (*CapabilitiesResponse, error)
	CreateProjectBlueprint(context.Context, *CreateProjectBlueprintRequest) (*CreateProjectBlueprintResponse, error)
	CreateCatalogEntry(context.Context, *CreateCatalogEntryRequest) (*CreateCatalogEntryResponse, error)
	ListCatalogEntries(context.Context, *ListCatalogEntriesRequest) (*ListCatalogEntriesResponse, error)
	CallerProjectBlueprints(context.Context, *CallerProjectBlueprintsRequest) (*CallerProjectBlueprintsResponse, error)
	GetProjectBlueprint(context.Context, *GetProjectBlueprintRequest) (*GetProjectBlueprintResponse, error)
	Purchase(context.Context, *PurchaseRequest) (*PurchaseResponse, error)
	ToggleLike(context.Context, *ToggleLikeRequest) (*ToggleLikeResponse, error)
}

// UnimplementedBackendServer answers every method with codes.Unimplemented.
// Embed it to serve a subset.
type UnimplementedBackendServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedBackendServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedBackendServer) Capabilities(context.Context, *CapabilitiesRequest) (*CapabilitiesResponse, error) {
	return nil, unimplemented(MethodCapabilities)
}
func (UnimplementedBackendServer) CreateProjectBlueprint(context.Context, *CreateProjectBlueprintRequest) (*CreateProjectBlueprintResponse, error) {
	return nil, unimplemented(MethodCreateProjectBlueprint)
}
func (UnimplementedBackendServer) CreateCatalogEntry(context.Context, *CreateCatalogEntryRequest) (*CreateCatalogEntryResponse, error) {
	return nil, unimplemented(MethodCreateCatalogEntry)
}
func (UnimplementedBackendServer) ListCatalogEntries(context.Context, *ListCatalogEntriesRequest) (*ListCatalogEntriesResponse, error) {
	return nil, unimplemented(MethodListCatalogEntries)
}
func (UnimplementedBackendServer) CallerProjectBlueprints(context.Context, *CallerProjectBlueprintsRequest) (*CallerProjectBlueprintsResponse, error) {
	return nil, unimplemented(MethodCallerProjectBlueprints)
}
func (UnimplementedBackendServer) GetProjectBlueprint(context.Context, *GetProjectBlueprintRequest) (*GetProjectBlueprintResponse, error) {
	return nil, unimplemented(MethodGetProjectBlueprint)
}
func (UnimplementedBackendServer) Purchase(context.Context, *PurchaseRequest) (*PurchaseResponse, error) {
	return nil, unimplemented(MethodPurchase)
}
func (UnimplementedBackendServer) ToggleLike(context.Context, *ToggleLikeRequest) (*ToggleLikeResponse, error) {
	return nil, unimplemented(MethodToggleLike)
}

func unaryHandler[Req, Resp any](method string, call func(BackendServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BackendServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BackendServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BackendServiceDesc describes the backend service for both client and server.
var BackendServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BackendServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodPing, Handler: unaryHandler(MethodPing, BackendServer.Ping)},
		{MethodName: MethodCapabilities, Handler: unaryHandler(MethodCapabilities, BackendServer.Capabilities)},
		{MethodName: MethodCreateProjectBlueprint, Handler: unaryHandler(MethodCreateProjectBlueprint, BackendServer.CreateProjectBlueprint)},
		{MethodName: MethodCreateCatalogEntry, Handler: unaryHandler(MethodCreateCatalogEntry, BackendServer.CreateCatalogEntry)},
		{MethodName: MethodListCatalogEntries, Handler: unaryHandler(MethodListCatalogEntries, BackendServer.ListCatalogEntries)},
		{MethodName: MethodCallerProjectBlueprints, Handler: unaryHandler(MethodCallerProjectBlueprints, BackendServer.CallerProjectBlueprints)},
		{MethodName: MethodGetProjectBlueprint, Handler: unaryHandler(MethodGetProjectBlueprint, BackendServer.GetProjectBlueprint)},
		{MethodName: MethodPurchase, Handler: unaryHandler(MethodPurchase, BackendServer.Purchase)},
		{MethodName: MethodToggleLike, Handler: unaryHandler(MethodToggleLike, BackendServer.ToggleLike)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "blueprint/v1/backend",
}

// RegisterBackendServer registers srv on s.
func RegisterBackendServer(s grpc.ServiceRegistrar, srv BackendServer) {
	s.RegisterService(&BackendServiceDesc, srv)
}
