package grpc

import (
	"context"

	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeUsers struct {
	registerErr error
	loginOut    *services.TokenPair
	loginErr    error
	refreshErr  error
	resolveOut  *models.User
	resolveErr  error
	deleteErr   error

	gotToken string
	calls    int
}

func (f *fakeUsers) Register(_ context.Context, username string, fullName *string, _ string) (*models.User, error) {
	f.calls++
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: 1, UserName: username, FullName: fullName, PasswordHash: "secret-hash"}, nil
}

func (f *fakeUsers) Login(context.Context, string, string) (*services.TokenPair, error) {
	f.calls++
	return f.loginOut, f.loginErr
}

func (f *fakeUsers) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	f.calls++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &services.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
}

func (f *fakeUsers) ResolveIdentity(_ context.Context, token string) (*models.User, error) {
	f.gotToken = token
	return f.resolveOut, f.resolveErr
}

func (f *fakeUsers) DeleteAccount(context.Context, *models.User) error {
	f.calls++
	return f.deleteErr
}

type fakeItems struct {
	createErr error
	getErr    error
	listOut   *models.ItemPage
	listErr   error
	updateErr error
	deleteOK  bool
	deleteErr error

	gotQuery models.ItemQuery
	gotPatch models.ItemPatch
	calls    int
}

func (f *fakeItems) Create(_ context.Context, caller *models.User, title string, description *string) (*models.Item, error) {
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Item{ID: 10, Title: title, Description: description, OwnerID: caller.ID, Owner: caller}, nil
}

func (f *fakeItems) List(_ context.Context, q models.ItemQuery) (*models.ItemPage, error) {
	f.calls++
	f.gotQuery = q
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeItems) Get(_ context.Context, id int64) (*models.Item, error) {
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.Item{ID: id, Title: "Thing", OwnerID: 1, Owner: &models.User{ID: 1, UserName: "bob"}}, nil
}

func (f *fakeItems) Update(_ context.Context, id int64, caller *models.User, patch models.ItemPatch) (*models.Item, error) {
	f.calls++
	f.gotPatch = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Item{ID: id, Title: "Updated", OwnerID: caller.ID, Owner: caller}, nil
}

func (f *fakeItems) Delete(context.Context, int64, *models.User) (bool, error) {
	f.calls++
	return f.deleteOK, f.deleteErr
}

func newTestServer(us *fakeUsers, is *fakeItems) *GRPCServer {
	s, _ := NewGRPCServer("127.0.0.1:0", nopLogger{}, us, is)
	return s
}
