package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/cryptox"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func testConfig(fallback bool) *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		DebugFallbackUser:            fallback,
	}
}

// cheapHasher keeps argon2 fast enough for tests.
func cheapHasher() *cryptox.PasswordHasher {
	return &cryptox.PasswordHasher{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}
}

type env struct {
	db    *sql.DB
	rm    repomanager.RepositoryManager
	users *UserService
	items *ItemService
}

func newSQLiteEnv(t *testing.T, fallback bool) *env {
	t.Helper()
	db, err := dbx.OpenSQLite(filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm, err := repomanager.New(dbx.DialectSQLite)
	require.NoError(t, err)
	require.NoError(t, rm.RunMigrations(context.Background(), db))

	us := NewUserService(db, rm, testConfig(fallback))
	us.hasher = cheapHasher()

	return &env{db: db, rm: rm, users: us, items: NewItemService(db, rm)}
}

func (e *env) register(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), name, nil, name+"-password")
	require.NoError(t, err)
	return u
}

// --- fakes ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	getOut    *models.User
	getErr    error
	deleteOK  bool
	deleteErr error
}

func (f *fakeUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	return f.createOut, f.createErr
}

func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Delete(context.Context, string) (bool, error) {
	return f.deleteOK, f.deleteErr
}

type fakeItemsRepo struct {
	createErr error
	getOut    *models.Item
	getErr    error
	listErr   error
	updateOK  bool
	updateErr error
	deleteErr error

	gotQuery models.ItemQuery
}

func (f *fakeItemsRepo) Create(_ context.Context, item *models.Item) (*models.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	item.ID = 1
	return item, nil
}

func (f *fakeItemsRepo) Get(context.Context, int64) (*models.Item, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeItemsRepo) List(_ context.Context, q models.ItemQuery) ([]*models.Item, int64, error) {
	f.gotQuery = q
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return []*models.Item{}, 0, nil
}

func (f *fakeItemsRepo) Update(context.Context, int64, string, models.ItemPatch) (bool, error) {
	return f.updateOK, f.updateErr
}

func (f *fakeItemsRepo) Delete(context.Context, int64, string) (bool, error) {
	return false, f.deleteErr
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	delMiss   bool
	createErr error
}

func (f *fakeRefreshRepo) Create(context.Context, int64, string, time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(context.Context, string) (bool, error) {
	if f.delErr != nil {
		return false, f.delErr
	}
	return !f.delMiss, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	i *fakeItemsRepo
	r *fakeRefreshRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) Items(dbx.DBTX) items.Repository                 { return m.i }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
