package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/dmitrijs2005/blueprint/internal/common"
	"github.com/dmitrijs2005/blueprint/internal/server/auth"
)

type ctxKey string

const principalKey ctxKey = "principal"

// publicMethods are served without an access token.
var publicMethods = map[string]struct{}{
	client.FullMethod(client.MethodPing):               {},
	client.FullMethod(client.MethodCapabilities):       {},
	client.FullMethod(client.MethodListCatalogEntries): {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	principal, err := auth.PrincipalFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(context.WithValue(ctx, principalKey, principal), req)
}

// callerFrom returns the principal the interceptor attached to ctx.
func callerFrom(ctx context.Context) (models.Principal, error) {
	p, ok := ctx.Value(principalKey).(models.Principal)
	if !ok || p.IsAnonymous() {
		return "", status.Error(codes.Unauthenticated, "authentication required")
	}
	return p, nil
}
