// Package grpc is the request boundary: it exposes the user and item services
// over gRPC, resolves access tokens, validates input and maps service errors
// to status codes.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the part of services.UserService the boundary needs.
type UserService interface {
	Register(ctx context.Context, username string, fullName *string, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	ResolveIdentity(ctx context.Context, accessToken string) (*models.User, error)
	DeleteAccount(ctx context.Context, caller *models.User) error
}

// ItemService is the part of services.ItemService the boundary needs.
type ItemService interface {
	Create(ctx context.Context, caller *models.User, title string, description *string) (*models.Item, error)
	List(ctx context.Context, q models.ItemQuery) (*models.ItemPage, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	Update(ctx context.Context, id int64, caller *models.User, patch models.ItemPatch) (*models.Item, error)
	Delete(ctx context.Context, id int64, caller *models.User) (bool, error)
}

type GRPCServer struct {
	api.UnimplementedItemKeeperServer
	address string
	users   UserService
	items   ItemService
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, us UserService, is ItemService) (*GRPCServer, error) {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
		items:   is,
	}, nil
}

// NewServer returns a grpc.Server with the interceptor chain installed and
// the service registered, ready to Serve any listener.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	srv := grpc.NewServer(opts...)
	api.RegisterItemKeeperServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled,
// then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
