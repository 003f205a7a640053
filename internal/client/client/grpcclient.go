package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const defaultCallTimeout = 10 * time.Second

type Options struct {
	// Addr is the gRPC target, e.g. "localhost:50051".
	Addr string
	// Timeout bounds each call that has no deadline of its own.
	Timeout time.Duration
	Tokens  TokenSource
	// DialOptions are appended to the defaults; tests use them for bufconn.
	DialOptions []grpc.DialOption
}

type GRPCClient struct {
	conn    *grpc.ClientConn
	timeout time.Duration
	tokens  TokenSource

	mu   sync.RWMutex
	caps Capabilities
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) unaryInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if c.tokens != nil {
		ctx = withAccessToken(ctx, c.tokens.Token())
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewGRPCClient(opts Options) (*GRPCClient, error) {
	if opts.Addr == "" {
		return nil, errors.New("backend address is empty")
	}

	c := &GRPCClient{timeout: opts.Timeout, tokens: opts.Tokens, caps: CoreCapabilities}
	if c.timeout <= 0 {
		c.timeout = defaultCallTimeout
	}

	dial := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.unaryInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, opts.DialOptions...)

	conn, err := grpc.NewClient(opts.Addr, dial...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *GRPCClient) invoke(ctx context.Context, method string, req, resp any) error {
	err := c.conn.Invoke(ctx, FullMethod(method), req, resp)
	return mapError(method, err)
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Capabilities() Capabilities {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.caps
}

// RefreshCapabilities asks the backend what it serves. A backend without
// the Capabilities method gets CoreCapabilities.
func (c *GRPCClient) RefreshCapabilities(ctx context.Context) error {
	var resp CapabilitiesResponse
	err := c.invoke(ctx, MethodCapabilities, &CapabilitiesRequest{}, &resp)

	caps := ParseCapabilities(resp.Capabilities)
	switch {
	case errors.Is(err, ErrNotSupported):
		caps = CoreCapabilities
	case err != nil:
		return err
	}

	c.mu.Lock()
	c.caps = caps
	c.mu.Unlock()
	return nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	var resp PingResponse
	if err := c.invoke(ctx, MethodPing, &PingRequest{}, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) CreateProjectBlueprint(ctx context.Context, bp models.ProjectBlueprint) (string, error) {
	var resp CreateProjectBlueprintResponse
	if err := c.invoke(ctx, MethodCreateProjectBlueprint, &CreateProjectBlueprintRequest{Blueprint: bp}, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *GRPCClient) CreateCatalogEntry(ctx context.Context, entry models.CatalogEntry) error {
	return c.invoke(ctx, MethodCreateCatalogEntry, &CreateCatalogEntryRequest{Entry: entry}, &CreateCatalogEntryResponse{})
}

func (c *GRPCClient) ListCatalogEntries(ctx context.Context) ([]models.CatalogEntry, error) {
	var resp ListCatalogEntriesResponse
	if err := c.invoke(ctx, MethodListCatalogEntries, &ListCatalogEntriesRequest{}, &resp); err != nil {
		return nil, err
	}
	if resp.Entries == nil {
		return []models.CatalogEntry{}, nil
	}
	return resp.Entries, nil
}

func (c *GRPCClient) CallerProjectBlueprints(ctx context.Context) ([]models.ProjectBlueprint, error) {
	var resp CallerProjectBlueprintsResponse
	if err := c.invoke(ctx, MethodCallerProjectBlueprints, &CallerProjectBlueprintsRequest{}, &resp); err != nil {
		return nil, err
	}
	if resp.Blueprints == nil {
		return []models.ProjectBlueprint{}, nil
	}
	return resp.Blueprints, nil
}

func (c *GRPCClient) GetProjectBlueprint(ctx context.Context, id string) (models.ProjectBlueprint, error) {
	var resp GetProjectBlueprintResponse
	if err := c.invoke(ctx, MethodGetProjectBlueprint, &GetProjectBlueprintRequest{ID: id}, &resp); err != nil {
		return models.ProjectBlueprint{}, err
	}
	return resp.Blueprint, nil
}

func (c *GRPCClient) Purchase(ctx context.Context, id string) error {
	return c.invoke(ctx, MethodPurchase, &PurchaseRequest{ID: id}, &PurchaseResponse{})
}

func (c *GRPCClient) ToggleLike(ctx context.Context, id string) (bool, error) {
	var resp ToggleLikeResponse
	if err := c.invoke(ctx, MethodToggleLike, &ToggleLikeRequest{ID: id}, &resp); err != nil {
		return false, err
	}
	return resp.Liked, nil
}

func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}

	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%s: %w", op, ErrAuthenticationRequired)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	case codes.InvalidArgument, codes.AlreadyExists, codes.FailedPrecondition, codes.NotFound:
		return &RejectedError{Op: op, Message: st.Message()}
	case codes.Unimplemented:
		return fmt.Errorf("%s: %w", op, ErrNotSupported)
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// IsRejectedWith reports whether err is a RejectedError whose message
// contains substr.
func IsRejectedWith(err error, substr string) bool {
	var re *RejectedError
	return errors.As(err, &re) && strings.Contains(re.Message, substr)
}
