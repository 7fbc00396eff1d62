package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Unexpected errors are logged
// here and reach the client only as common.ErrorInternal.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorOwnerNotFound):
		return status.Error(codes.FailedPrecondition, "owner not found")
	case common.IsAuthError(err):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorConflict):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error(ctx, "internal error", "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func (s *GRPCServer) caller(ctx context.Context) (*models.User, error) {
	u, ok := userFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.ErrMissingToken.Error())
	}
	return u, nil
}

func toAPIUser(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	return &api.User{ID: u.ID, Username: u.UserName, FullName: u.FullName}
}

func toAPIItem(i *models.Item) *api.Item {
	return &api.Item{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		OwnerID:     i.OwnerID,
		Owner:       toAPIUser(i.Owner),
	}
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *api.RegisterUserRequest) (*api.RegisterUserResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	user, err := s.users.Register(ctx, req.Username, req.FullName, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "username", user.UserName)
	return &api.RegisterUserResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	tokens, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, "invalid credentials")
		}
		return nil, s.toStatus(ctx, err)
	}

	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken, TokenType: "bearer"}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken, TokenType: "bearer"}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *api.MeRequest) (*api.MeResponse, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	return &api.MeResponse{User: toAPIUser(user)}, nil
}

func (s *GRPCServer) DeleteMe(ctx context.Context, _ *api.DeleteMeRequest) (*api.DeleteMeResponse, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.users.DeleteAccount(ctx, user); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Account deleted", "username", user.UserName)
	return &api.DeleteMeResponse{OK: true}, nil
}

func (s *GRPCServer) CreateItem(ctx context.Context, req *api.CreateItemRequest) (*api.ItemResponse, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.Validate(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	item, err := s.items.Create(ctx, user, req.Title, req.Description)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ItemResponse{Item: toAPIItem(item)}, nil
}

func (s *GRPCServer) GetItem(ctx context.Context, req *api.GetItemRequest) (*api.ItemResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	item, err := s.items.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ItemResponse{Item: toAPIItem(item)}, nil
}

func (s *GRPCServer) ListItems(ctx context.Context, req *api.ListItemsRequest) (*api.ListItemsResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	page, err := s.items.List(ctx, models.ItemQuery{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
		SortBy: req.SortBy,
		Order:  req.Order,
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := make([]*api.Item, 0, len(page.Items))
	for _, item := range page.Items {
		out = append(out, toAPIItem(item))
	}

	return &api.ListItemsResponse{Items: out, Total: page.Total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (s *GRPCServer) UpdateItem(ctx context.Context, req *api.UpdateItemRequest) (*api.ItemResponse, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.Validate(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	item, err := s.items.Update(ctx, req.ID, user, models.ItemPatch{Title: req.Title, Description: req.Description})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, status.Error(codes.NotFound, "item not found or not owned by you")
		}
		return nil, s.toStatus(ctx, err)
	}

	return &api.ItemResponse{Item: toAPIItem(item)}, nil
}

func (s *GRPCServer) DeleteItem(ctx context.Context, req *api.DeleteItemRequest) (*api.DeleteItemResponse, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if err := validation.Validate(req); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	ok, err := s.items.Delete(ctx, req.ID, user)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	if !ok {
		return nil, status.Error(codes.NotFound, "item not found or not owned by you")
	}

	return &api.DeleteItemResponse{OK: true}, nil
}
