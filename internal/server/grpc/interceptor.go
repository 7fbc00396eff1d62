package grpc

import (
	"context"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/api"
	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Response metadata set by loggingInterceptor.
const (
	RequestIDHeader    = "x-request-id"
	ProcessTimeTrailer = "x-process-time"
)

type ctxKey string

const userKey ctxKey = "user"

// protectedMethods need a resolved identity.
var protectedMethods = map[string]bool{
	api.MethodMe:         true,
	api.MethodDeleteMe:   true,
	api.MethodCreateItem: true,
	api.MethodUpdateItem: true,
	api.MethodDeleteItem: true,
}

func withUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

func userFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

// accessTokenFromContext reads the token from the access_token key, falling
// back to "authorization: Bearer <token>".
func accessTokenFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 && values[0] != "" {
		return values[0]
	}
	for _, v := range md.Get(common.AuthorizationHeaderName) {
		scheme, token, found := strings.Cut(v, " ")
		if found && strings.EqualFold(scheme, "bearer") {
			return strings.TrimSpace(token)
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	user, err := s.users.ResolveIdentity(ctx, accessTokenFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return handler(withUser(ctx, user), req)
}

// loggingInterceptor tags each call with a request id, returned in the
// response header, and reports the handling time in the trailer.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	requestID := uuid.NewString()
	log := s.logger.With("request_id", requestID, "method", path.Base(info.FullMethod))

	// fails only outside a real server stream, e.g. in unit tests
	_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))

	log.Debug(ctx, "Incoming request")
	resp, err := handler(ctx, req)
	elapsed := time.Since(start)

	_ = grpc.SetTrailer(ctx, metadata.Pairs(ProcessTimeTrailer, strconv.FormatFloat(elapsed.Seconds(), 'f', 6, 64)))

	code := status.Code(err)
	switch code {
	case codes.Internal, codes.Unknown:
		log.Error(ctx, "Request failed", "code", code.String(), "duration_ms", elapsed.Milliseconds())
	default:
		log.Info(ctx, "Request completed", "code", code.String(), "duration_ms", elapsed.Milliseconds())
	}

	return resp, err
}
