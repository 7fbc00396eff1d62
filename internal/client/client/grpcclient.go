// Package client talks to the itemkeeper server over gRPC and keeps the
// session tokens of the logged-in user.
package client

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn *grpc.ClientConn
	api  api.ItemKeeperClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewGRPCClient prepares a lazy connection to endpointURL. Extra dial
// options are appended after the defaults.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}

	c.conn = conn
	c.api = api.NewItemKeeperClient(conn)
	return c, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *GRPCClient) setTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken, c.refreshToken = access, refresh
}

// accessTokenInterceptor attaches the access token to every call. When the
// server reports it expired and a refresh token is held, the pair is rotated
// once and the call is retried.
func (c *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if method == api.MethodRefreshToken {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	access, refresh := c.tokens()
	if access == "" {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || refresh == "" {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}

	resp, rerr := c.api.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return err
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) LoggedIn() bool {
	access, _ := c.tokens()
	return access != ""
}

func (c *GRPCClient) Register(ctx context.Context, username string, fullName *string, password []byte) (*api.User, error) {
	resp, err := c.api.RegisterUser(ctx, &api.RegisterUserRequest{
		Username: username,
		FullName: fullName,
		Password: string(password),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.User, nil
}

// Login stores the issued tokens. The debug fallback login returns no
// refresh token, so such sessions end when the access token expires.
func (c *GRPCClient) Login(ctx context.Context, username string, password []byte) error {
	resp, err := c.api.Login(ctx, &api.LoginRequest{Username: username, Password: string(password)})
	if err != nil {
		return mapError(err)
	}
	c.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

func (c *GRPCClient) Logout() {
	c.setTokens("", "")
}

func (c *GRPCClient) Me(ctx context.Context) (*api.User, error) {
	if !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	resp, err := c.api.Me(ctx, &api.MeRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.User, nil
}

// DeleteMe removes the account and forgets the session.
func (c *GRPCClient) DeleteMe(ctx context.Context) error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}
	if _, err := c.api.DeleteMe(ctx, &api.DeleteMeRequest{}); err != nil {
		return mapError(err)
	}
	c.Logout()
	return nil
}

func (c *GRPCClient) CreateItem(ctx context.Context, title string, description *string) (*api.Item, error) {
	if !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	resp, err := c.api.CreateItem(ctx, &api.CreateItemRequest{Title: title, Description: description})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Item, nil
}

func (c *GRPCClient) GetItem(ctx context.Context, id int64) (*api.Item, error) {
	resp, err := c.api.GetItem(ctx, &api.GetItemRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Item, nil
}

func (c *GRPCClient) ListItems(ctx context.Context, req *api.ListItemsRequest) (*api.ListItemsResponse, error) {
	resp, err := c.api.ListItems(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) UpdateItem(ctx context.Context, id int64, title, description *string) (*api.Item, error) {
	if !c.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	resp, err := c.api.UpdateItem(ctx, &api.UpdateItemRequest{ID: id, Title: title, Description: description})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Item, nil
}

func (c *GRPCClient) DeleteItem(ctx context.Context, id int64) error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}
	if _, err := c.api.DeleteItem(ctx, &api.DeleteItemRequest{ID: id}); err != nil {
		return mapError(err)
	}
	return nil
}
