package refreshtokens

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLite_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db, err := dbx.OpenSQLite(filepath.Join(t.TempDir(), "rt.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migrations.Up(ctx, db, dbx.DialectSQLite))

	u, err := users.NewSQLiteRepository(db).Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Create(ctx, u.ID, "tok", time.Hour))

	rt, err := repo.Find(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, u.ID, rt.UserID)
	assert.Equal(t, "alice", rt.UserName)
	assert.WithinDuration(t, time.Now().Add(time.Hour), rt.Expires, 5*time.Second)

	ok, err := repo.Delete(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = repo.Find(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// a second delete of the same token reports nothing removed
	ok, err = repo.Delete(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_DeletedUserTakesTokens(t *testing.T) {
	ctx := context.Background()
	db, err := dbx.OpenSQLite(filepath.Join(t.TempDir(), "rt.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migrations.Up(ctx, db, dbx.DialectSQLite))

	ur := users.NewSQLiteRepository(db)
	u, err := ur.Create(ctx, &models.User{UserName: "bob", PasswordHash: "h"})
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Create(ctx, u.ID, "bob-token", time.Hour))

	_, err = ur.Delete(ctx, "bob")
	require.NoError(t, err)

	_, err = repo.Find(ctx, "bob-token")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
