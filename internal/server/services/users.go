// Package services contains server-side business logic. This file implements
// UserService: registration, login, refresh-token rotation and the resolution
// of access tokens back to stored users.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/cryptox"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/auth"
	"github.com/dmitrijs2005/itemkeeper/internal/server/config"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
)

// fallbackPassword pairs with common.FallbackUserName when the debug fallback
// is enabled.
const fallbackPassword = "secret"

// TokenPair bundles a short-lived access token and a long-lived refresh token.
// RefreshToken is empty for fallback logins, which have no user row.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	hasher                       *cryptox.PasswordHasher
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	debugFallbackUser            bool

	// dummyHash is verified against for unknown usernames so that a miss
	// costs as much as a wrong password.
	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		hasher:                       cryptox.NewPasswordHasher(),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		debugFallbackUser:            cfg.DebugFallbackUser,
	}
}

// FallbackUser is the synthetic identity behind the debug login. It has no
// row in the store.
func FallbackUser() *models.User {
	fullName := "Alice Dev"
	return &models.User{ID: 0, UserName: common.FallbackUserName, FullName: &fullName}
}

// Register hashes password and stores a new user. A taken username yields
// common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, username string, fullName *string, password string) (*models.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{UserName: username, FullName: fullName, PasswordHash: hash}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password against the stored hash and issues a TokenPair.
// Unknown users and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.verifyDummy(password)
			return s.fallbackLogin(userName, password)
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if err := s.hasher.Verify(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatchedPassword) {
			return s.fallbackLogin(userName, password)
		}
		return nil, fmt.Errorf("error verifying password: %w", err)
	}

	return s.generateTokenPair(ctx, s.db, user.ID, user.UserName)
}

// verifyDummy runs one password verification against a hash nobody owns.
func (s *UserService) verifyDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(common.FallbackUserName + "-no-such-user")
	})
	if s.dummyHash != "" {
		_ = s.hasher.Verify(password, s.dummyHash)
	}
}

// fallbackLogin is the last chance for credentials that did not match a
// stored user.
func (s *UserService) fallbackLogin(userName, password string) (*TokenPair, error) {
	if !s.debugFallbackUser || userName != common.FallbackUserName || password != fallbackPassword {
		return nil, common.ErrorUnauthorized
	}

	accessToken, err := s.generateAccessToken(userName)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken}, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
// A token is single use: only the refresh whose delete removes the row
// succeeds, every other attempt gets common.ErrorUnauthorized.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ok, err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken)
		if err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		// consumed by a concurrent refresh between Find and here
		if !ok {
			return common.ErrorUnauthorized
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, tx, token.UserID, token.UserName)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// ResolveIdentity maps an access token to the user it names.
//
// An empty token yields common.ErrMissingToken. A token that fails
// verification yields common.ErrInvalidToken or common.ErrTokenExpired. A
// valid token naming nobody in the store yields common.ErrUnresolvableToken,
// unless it names the fallback user and the debug fallback is on.
func (s *UserService) ResolveIdentity(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, common.ErrMissingToken
	}

	username, err := auth.GetUsernameFromToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if s.debugFallbackUser && username == common.FallbackUserName {
				return FallbackUser(), nil
			}
			return nil, common.ErrUnresolvableToken
		}
		return nil, fmt.Errorf("error resolving identity: %w", err)
	}

	return user, nil
}

// DeleteAccount removes caller together with their items and refresh tokens.
func (s *UserService) DeleteAccount(ctx context.Context, caller *models.User) error {
	ok, err := s.repomanager.Users(s.db).Delete(ctx, caller.UserName)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (s *UserService) generateAccessToken(userName string) (string, error) {
	return auth.GenerateToken(userName, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, db dbx.DBTX, userID int64, userName string) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(userName)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	err = s.repomanager.RefreshTokens(db).Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
