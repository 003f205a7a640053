package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type fakeServer struct {
	UnimplementedBackendServer

	mu        sync.Mutex
	lastToken string
	caps      []string
	capsErr   error
	entries   []models.CatalogEntry
	created   []models.ProjectBlueprint
	likeErr   error
}

func (f *fakeServer) token(ctx context.Context) {
	md, _ := metadata.FromIncomingContext(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastToken = ""
	if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
		f.lastToken = v[0]
	}
}

func (f *fakeServer) seenToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastToken
}

func (f *fakeServer) Ping(ctx context.Context, _ *PingRequest) (*PingResponse, error) {
	f.token(ctx)
	return &PingResponse{Status: "OK"}, nil
}

func (f *fakeServer) Capabilities(context.Context, *CapabilitiesRequest) (*CapabilitiesResponse, error) {
	if f.capsErr != nil {
		return nil, f.capsErr
	}
	return &CapabilitiesResponse{Capabilities: f.caps}, nil
}

func (f *fakeServer) CreateProjectBlueprint(ctx context.Context, in *CreateProjectBlueprintRequest) (*CreateProjectBlueprintResponse, error) {
	f.token(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in.Blueprint)
	return &CreateProjectBlueprintResponse{ID: "bp-1"}, nil
}

func (f *fakeServer) ListCatalogEntries(context.Context, *ListCatalogEntriesRequest) (*ListCatalogEntriesResponse, error) {
	return &ListCatalogEntriesResponse{Entries: f.entries}, nil
}

func (f *fakeServer) ToggleLike(context.Context, *ToggleLikeRequest) (*ToggleLikeResponse, error) {
	if f.likeErr != nil {
		return nil, f.likeErr
	}
	return &ToggleLikeResponse{Liked: true}, nil
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func startServer(t *testing.T, srv BackendServer, tokens TokenSource) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	RegisterBackendServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := NewGRPCClient(Options{
		Addr:    "passthrough:///bufnet",
		Timeout: 2 * time.Second,
		Tokens:  tokens,
		DialOptions: []grpc.DialOption{
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return lis.DialContext(ctx)
			}),
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGRPCClient_AttachesAccessToken(t *testing.T) {
	srv := &fakeServer{}
	c := startServer(t, srv, staticToken("tok-123"))

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "tok-123", srv.seenToken())
}

func TestGRPCClient_AnonymousCallHasNoToken(t *testing.T) {
	srv := &fakeServer{}
	c := startServer(t, srv, staticToken(""))

	require.NoError(t, c.Ping(context.Background()))
	assert.Empty(t, srv.seenToken())
}

func TestGRPCClient_RoundTripsJSONMessages(t *testing.T) {
	srv := &fakeServer{entries: []models.CatalogEntry{{
		ID: "bp-9", Description: "d", Creator: "aaaaa-aa", Price: 500,
		CreatedAt: time.Unix(1_700_000_000, 0).UTC(), Tags: []string{"x"},
	}}}
	c := startServer(t, srv, nil)
	ctx := context.Background()

	id, err := c.CreateProjectBlueprint(ctx, models.ProjectBlueprint{ID: "draft", Title: "T", Steps: []models.StepView{}})
	require.NoError(t, err)
	assert.Equal(t, "bp-1", id)
	require.Len(t, srv.created, 1)
	assert.Equal(t, "T", srv.created[0].Title)

	entries, err := c.ListCatalogEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint64(500), entries[0].Price)
	assert.True(t, entries[0].CreatedAt.Equal(srv.entries[0].CreatedAt))
}

func TestGRPCClient_UnimplementedIsNotSupported(t *testing.T) {
	c := startServer(t, &fakeServer{}, nil)

	_, err := c.CallerProjectBlueprints(context.Background())
	require.ErrorIs(t, err, ErrNotSupported)
}

func TestGRPCClient_RejectionCarriesMessage(t *testing.T) {
	srv := &fakeServer{likeErr: status.Error(codes.FailedPrecondition, "already liked")}
	c := startServer(t, srv, nil)

	_, err := c.ToggleLike(context.Background(), "bp-1")

	var re *RejectedError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, MethodToggleLike, re.Op)
	assert.Equal(t, "already liked", re.Message)
	assert.True(t, IsRejectedWith(err, "already"))
}

func TestGRPCClient_RefreshCapabilities(t *testing.T) {
	t.Run("reported set", func(t *testing.T) {
		c := startServer(t, &fakeServer{caps: []string{"catalog", "interactions", "mystery"}}, nil)
		require.NoError(t, c.RefreshCapabilities(context.Background()))
		assert.Equal(t, CapCatalog|CapInteractions, c.Capabilities())
	})

	t.Run("unimplemented falls back to core", func(t *testing.T) {
		c := startServer(t, &fakeServer{capsErr: status.Error(codes.Unimplemented, "nope")}, nil)
		require.NoError(t, c.RefreshCapabilities(context.Background()))
		assert.Equal(t, CoreCapabilities, c.Capabilities())
	})

	t.Run("other errors propagate", func(t *testing.T) {
		c := startServer(t, &fakeServer{capsErr: status.Error(codes.Unavailable, "down")}, nil)
		err := c.RefreshCapabilities(context.Background())
		require.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestMapError(t *testing.T) {
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.Unauthenticated, ErrAuthenticationRequired},
		{codes.PermissionDenied, ErrAuthenticationRequired},
		{codes.Unavailable, ErrUnavailable},
		{codes.DeadlineExceeded, ErrUnavailable},
		{codes.Canceled, ErrUnavailable},
		{codes.Unimplemented, ErrNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := mapError("Op", status.Error(tt.code, "x"))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	for _, code := range []codes.Code{codes.InvalidArgument, codes.AlreadyExists, codes.FailedPrecondition, codes.NotFound} {
		var re *RejectedError
		assert.ErrorAs(t, mapError("Op", status.Error(code, "bad")), &re, code.String())
	}

	internal := mapError("Op", status.Error(codes.Internal, "boom"))
	assert.False(t, errors.Is(internal, ErrUnavailable))
	assert.Contains(t, internal.Error(), "rpc error")
	assert.NoError(t, mapError("Op", nil))
}

func TestNewGRPCClient_RequiresAddress(t *testing.T) {
	_, err := NewGRPCClient(Options{})
	require.Error(t, err)
}
