package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "itemkeeper.ItemKeeperService"

// Full method names, as seen by interceptors in grpc.UnaryServerInfo.
const (
	MethodRegisterUser = "/" + ServiceName + "/RegisterUser"
	MethodLogin        = "/" + ServiceName + "/Login"
	MethodRefreshToken = "/" + ServiceName + "/RefreshToken"
	MethodMe           = "/" + ServiceName + "/Me"
	MethodDeleteMe     = "/" + ServiceName + "/DeleteMe"
	MethodCreateItem   = "/" + ServiceName + "/CreateItem"
	MethodGetItem      = "/" + ServiceName + "/GetItem"
	MethodListItems    = "/" + ServiceName + "/ListItems"
	MethodUpdateItem   = "/" + ServiceName + "/UpdateItem"
	MethodDeleteItem   = "/" + ServiceName + "/DeleteItem"
)

type ItemKeeperServer interface {
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	Me(context.Context, *MeRequest) (*MeResponse, error)
	DeleteMe(context.Context, *DeleteMeRequest) (*DeleteMeResponse, error)
	CreateItem(context.Context, *CreateItemRequest) (*ItemResponse, error)
	GetItem(context.Context, *GetItemRequest) (*ItemResponse, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	UpdateItem(context.Context, *UpdateItemRequest) (*ItemResponse, error)
	DeleteItem(context.Context, *DeleteItemRequest) (*DeleteItemResponse, error)
}

// UnimplementedItemKeeperServer can be embedded to satisfy ItemKeeperServer
// partially.
type UnimplementedItemKeeperServer struct{}

func (UnimplementedItemKeeperServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RegisterUser not implemented")
}
func (UnimplementedItemKeeperServer) Login(context.Context, *LoginRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedItemKeeperServer) RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedItemKeeperServer) Me(context.Context, *MeRequest) (*MeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Me not implemented")
}
func (UnimplementedItemKeeperServer) DeleteMe(context.Context, *DeleteMeRequest) (*DeleteMeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteMe not implemented")
}
func (UnimplementedItemKeeperServer) CreateItem(context.Context, *CreateItemRequest) (*ItemResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateItem not implemented")
}
func (UnimplementedItemKeeperServer) GetItem(context.Context, *GetItemRequest) (*ItemResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetItem not implemented")
}
func (UnimplementedItemKeeperServer) ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListItems not implemented")
}
func (UnimplementedItemKeeperServer) UpdateItem(context.Context, *UpdateItemRequest) (*ItemResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateItem not implemented")
}
func (UnimplementedItemKeeperServer) DeleteItem(context.Context, *DeleteItemRequest) (*DeleteItemResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteItem not implemented")
}

func RegisterItemKeeperServer(s grpc.ServiceRegistrar, srv ItemKeeperServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed method to grpc.MethodHandler, running the server's
// interceptor chain.
func unary[Req any, Resp any](fullMethod string, call func(ItemKeeperServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ItemKeeperServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ItemKeeperServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ItemKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RegisterUser", Handler: unary(MethodRegisterUser, ItemKeeperServer.RegisterUser)},
		{MethodName: "Login", Handler: unary(MethodLogin, ItemKeeperServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(MethodRefreshToken, ItemKeeperServer.RefreshToken)},
		{MethodName: "Me", Handler: unary(MethodMe, ItemKeeperServer.Me)},
		{MethodName: "DeleteMe", Handler: unary(MethodDeleteMe, ItemKeeperServer.DeleteMe)},
		{MethodName: "CreateItem", Handler: unary(MethodCreateItem, ItemKeeperServer.CreateItem)},
		{MethodName: "GetItem", Handler: unary(MethodGetItem, ItemKeeperServer.GetItem)},
		{MethodName: "ListItems", Handler: unary(MethodListItems, ItemKeeperServer.ListItems)},
		{MethodName: "UpdateItem", Handler: unary(MethodUpdateItem, ItemKeeperServer.UpdateItem)},
		{MethodName: "DeleteItem", Handler: unary(MethodDeleteItem, ItemKeeperServer.DeleteItem)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "itemkeeper",
}
