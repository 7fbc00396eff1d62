package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func ptr(s string) *string { return &s }

func authed(u *models.User) context.Context {
	return withUser(context.Background(), u)
}

func TestToStatus(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeItems{})
	ctx := context.Background()

	tests := []struct {
		err  error
		code codes.Code
	}{
		{common.ErrorNotFound, codes.NotFound},
		{fmt.Errorf("wrapped: %w", common.ErrorNotFound), codes.NotFound},
		{common.ErrorOwnerNotFound, codes.FailedPrecondition},
		{common.ErrMissingToken, codes.Unauthenticated},
		{common.ErrUnresolvableToken, codes.Unauthenticated},
		{common.ErrRefreshTokenExpired, codes.Unauthenticated},
		{common.ErrorUnauthorized, codes.Unauthenticated},
		{fmt.Errorf("%w: title: is required", common.ErrorValidation), codes.InvalidArgument},
		{fmt.Errorf("error creating user: %w", common.ErrorConflict), codes.InvalidArgument},
		{errors.New("db error: connection reset"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(s.toStatus(ctx, tt.err)))
		})
	}

	// internal details never leak
	err := s.toStatus(ctx, errors.New("db error: password=hunter2"))
	assert.Equal(t, common.ErrorInternal.Error(), status.Convert(err).Message())
	assert.NotContains(t, status.Convert(err).Message(), "hunter2")
}

func TestRegisterUser(t *testing.T) {
	us := &fakeUsers{}
	s := newTestServer(us, &fakeItems{})

	resp, err := s.RegisterUser(context.Background(), &api.RegisterUserRequest{Username: "bob", FullName: ptr("Bob"), Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "bob", resp.User.Username)
	assert.Equal(t, "Bob", *resp.User.FullName)

	_, err = s.RegisterUser(context.Background(), &api.RegisterUserRequest{Username: "bo", Password: "hunter22"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.RegisterUser(context.Background(), &api.RegisterUserRequest{Username: "bob", Password: "short"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	assert.Equal(t, 1, us.calls, "invalid input never reaches the service")

	us.registerErr = fmt.Errorf("error creating user: %w", common.ErrorConflict)
	_, err = s.RegisterUser(context.Background(), &api.RegisterUserRequest{Username: "bob", Password: "hunter22"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestLogin(t *testing.T) {
	us := &fakeUsers{loginOut: &services.TokenPair{AccessToken: "a", RefreshToken: "r"}}
	s := newTestServer(us, &fakeItems{})

	resp, err := s.Login(context.Background(), &api.LoginRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, &api.TokenResponse{AccessToken: "a", RefreshToken: "r", TokenType: "bearer"}, resp)

	us.loginOut, us.loginErr = nil, common.ErrorUnauthorized
	_, err = s.Login(context.Background(), &api.LoginRequest{Username: "bob", Password: "bad"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "invalid credentials", status.Convert(err).Message())

	_, err = s.Login(context.Background(), &api.LoginRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestRefreshToken(t *testing.T) {
	us := &fakeUsers{}
	s := newTestServer(us, &fakeItems{})

	resp, err := s.RefreshToken(context.Background(), &api.RefreshTokenRequest{RefreshToken: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "r2", resp.RefreshToken)

	us.refreshErr = common.ErrRefreshTokenExpired
	_, err = s.RefreshToken(context.Background(), &api.RefreshTokenRequest{RefreshToken: "r1"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestMe(t *testing.T) {
	s := newTestServer(&fakeUsers{}, &fakeItems{})

	resp, err := s.Me(authed(&models.User{ID: 0, UserName: "alice", FullName: ptr("Alice Dev"), PasswordHash: "x"}), &api.MeRequest{})
	require.NoError(t, err)
	assert.Equal(t, &api.User{ID: 0, Username: "alice", FullName: ptr("Alice Dev")}, resp.User)

	_, err = s.Me(context.Background(), &api.MeRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestDeleteMe(t *testing.T) {
	us := &fakeUsers{}
	s := newTestServer(us, &fakeItems{})

	resp, err := s.DeleteMe(authed(&models.User{UserName: "bob"}), &api.DeleteMeRequest{})
	require.NoError(t, err)
	assert.True(t, resp.OK)

	us.deleteErr = common.ErrorNotFound
	_, err = s.DeleteMe(authed(&models.User{UserName: "alice"}), &api.DeleteMeRequest{})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCreateItem(t *testing.T) {
	is := &fakeItems{}
	s := newTestServer(&fakeUsers{}, is)
	bob := &models.User{ID: 3, UserName: "bob"}

	resp, err := s.CreateItem(authed(bob), &api.CreateItemRequest{Title: "Blue Widget", Description: ptr("d")})
	require.NoError(t, err)
	assert.Equal(t, "Blue Widget", resp.Item.Title)
	assert.Equal(t, int64(3), resp.Item.OwnerID)
	assert.Equal(t, "bob", resp.Item.Owner.Username)

	for _, title := range []string{"Bad badword here", "BADWORD!", "x", "semi;colon"} {
		_, err = s.CreateItem(authed(bob), &api.CreateItemRequest{Title: title})
		assert.Equal(t, codes.InvalidArgument, status.Code(err), title)
	}
	assert.Equal(t, 1, is.calls)

	is.createErr = common.ErrorOwnerNotFound
	_, err = s.CreateItem(authed(bob), &api.CreateItemRequest{Title: "Orphan"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = s.CreateItem(context.Background(), &api.CreateItemRequest{Title: "No caller"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGetItem(t *testing.T) {
	is := &fakeItems{}
	s := newTestServer(&fakeUsers{}, is)

	resp, err := s.GetItem(context.Background(), &api.GetItemRequest{ID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Item.ID)

	_, err = s.GetItem(context.Background(), &api.GetItemRequest{ID: 0})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	is.getErr = common.ErrorNotFound
	_, err = s.GetItem(context.Background(), &api.GetItemRequest{ID: 5})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestListItems(t *testing.T) {
	is := &fakeItems{listOut: &models.ItemPage{
		Items:  []*models.Item{{ID: 1, Title: "A", Owner: &models.User{ID: 1, UserName: "bob", PasswordHash: "h"}}},
		Total:  25,
		Limit:  10,
		Offset: 20,
	}}
	s := newTestServer(&fakeUsers{}, is)

	resp, err := s.ListItems(context.Background(), &api.ListItemsRequest{Search: "a", Limit: 10, Offset: 20, SortBy: "title", Order: "desc"})
	require.NoError(t, err)
	assert.Equal(t, int64(25), resp.Total)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, 20, resp.Offset)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "bob", resp.Items[0].Owner.Username)
	assert.Equal(t, models.ItemQuery{Search: "a", Limit: 10, Offset: 20, SortBy: "title", Order: "desc"}, is.gotQuery)

	for _, req := range []*api.ListItemsRequest{{Limit: 101}, {Limit: -1}, {Offset: -1}, {Order: "sideways"}} {
		_, err := s.ListItems(context.Background(), req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), "%+v", req)
	}

	is.listErr = errors.New("db error: boom")
	_, err = s.ListItems(context.Background(), &api.ListItemsRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestUpdateItem(t *testing.T) {
	is := &fakeItems{}
	s := newTestServer(&fakeUsers{}, is)
	bob := &models.User{ID: 3, UserName: "bob"}

	resp, err := s.UpdateItem(authed(bob), &api.UpdateItemRequest{ID: 7, Description: ptr("only this")})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Item.ID)
	assert.Nil(t, is.gotPatch.Title)
	assert.Equal(t, "only this", *is.gotPatch.Description)

	_, err = s.UpdateItem(authed(bob), &api.UpdateItemRequest{ID: 7, Title: ptr("Bad badword here")})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	is.updateErr = common.ErrorNotFound
	_, err = s.UpdateItem(authed(bob), &api.UpdateItemRequest{ID: 7, Title: ptr("Fine title")})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "item not found or not owned by you", status.Convert(err).Message())
}

func TestDeleteItem(t *testing.T) {
	is := &fakeItems{deleteOK: true}
	s := newTestServer(&fakeUsers{}, is)
	bob := &models.User{ID: 3, UserName: "bob"}

	resp, err := s.DeleteItem(authed(bob), &api.DeleteItemRequest{ID: 7})
	require.NoError(t, err)
	assert.True(t, resp.OK)

	is.deleteOK = false
	_, err = s.DeleteItem(authed(bob), &api.DeleteItemRequest{ID: 7})
	assert.Equal(t, codes.NotFound, status.Code(err))

	is.deleteErr = errors.New("db error: boom")
	_, err = s.DeleteItem(authed(bob), &api.DeleteItemRequest{ID: 7})
	assert.Equal(t, codes.Internal, status.Code(err))
}
