// Package grpc serves the blueprint backend over gRPC with the JSON codec.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"

	"github.com/dmitrijs2005/blueprint/internal/client/client"
	"github.com/dmitrijs2005/blueprint/internal/logging"
	"github.com/dmitrijs2005/blueprint/internal/server/blueprints"
)

type GRPCServer struct {
	client.UnimplementedBackendServer
	address    string
	blueprints *blueprints.Service
	logger     logging.Logger
	jwtSecret  []byte
}

func NewGRPCServer(a string, l logging.Logger, bs *blueprints.Service, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		blueprints: bs,
		jwtSecret:  []byte(secretKey),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	client.RegisterBackendServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
