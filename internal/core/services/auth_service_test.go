package services

import (
	"context"
	"testing"
	"time"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/config"
	"libradesk/internal/pkg/jwt"
	"libradesk/internal/pkg/password"
	"libradesk/internal/testutil/repomock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func TestRegister_Success(t *testing.T) {
	var created *models.User
	users := &repomock.UserRepo{
		CreateFn: func(ctx context.Context, u *models.User) error {
			u.ID = 5
			created = u
			return nil
		},
	}
	var stored *models.RefreshToken
	tokens := &repomock.TokenRepo{
		CreateFn: func(ctx context.Context, rt *models.RefreshToken) error {
			stored = rt
			return nil
		},
	}
	svc := NewAuthService(users, tokens, testAuthConfig())

	resp, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Alice Member",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, stored)

	assert.Equal(t, models.RoleMember, created.Role, "self-registration always lands on MEMBER")
	assert.True(t, created.IsActive)
	assert.NotEqual(t, "s3cret-pass", created.Password, "password is stored hashed")
	assert.True(t, password.Verify("s3cret-pass", created.Password))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, password.HashToken(resp.RefreshToken), stored.TokenHash)

	claims, err := jwt.ValidateAccessToken(resp.AccessToken, "test-access-secret")
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	assert.Equal(t, models.RoleMember, claims.Role)
}

func TestRegister_WeakPassword(t *testing.T) {
	users := &repomock.UserRepo{
		CreateFn: func(ctx context.Context, u *models.User) error {
			t.Fatal("Create must not be called for a weak password")
			return nil
		},
	}
	svc := NewAuthService(users, &repomock.TokenRepo{}, testAuthConfig())

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegister_EmailTaken(t *testing.T) {
	users := &repomock.UserRepo{
		ExistsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewAuthService(users, &repomock.TokenRepo{}, testAuthConfig())

	_, err := svc.Register(context.Background(), &RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := password.Hash("right-password")
	require.NoError(t, err)

	users := &repomock.UserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			u := activeUser(5)
			u.Password = hashed
			return u, nil
		},
	}
	svc := NewAuthService(users, &repomock.TokenRepo{}, testAuthConfig())

	_, err = svc.Login(context.Background(), &LoginInput{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewAuthService(&repomock.UserRepo{}, &repomock.TokenRepo{}, testAuthConfig())

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials, "unknown email and wrong password are indistinguishable")
}

func TestLogin_InactiveUser(t *testing.T) {
	users := &repomock.UserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*models.User, error) {
			u := activeUser(5)
			u.IsActive = false
			return u, nil
		},
	}
	svc := NewAuthService(users, &repomock.TokenRepo{}, testAuthConfig())

	_, err := svc.Login(context.Background(), &LoginInput{
		Email:    "alice@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, ErrUserInactive)
}

func TestRefreshToken_RotatesAndRevokesOld(t *testing.T) {
	cfg := testAuthConfig()
	refresh, err := jwt.GenerateRefreshToken(5, "token-1", cfg.JWT.RefreshSecret, cfg.JWT.RefreshTokenDays)
	require.NoError(t, err)

	revokedID := uint(0)
	tokens := &repomock.TokenRepo{
		GetByTokenHashFn: func(ctx context.Context, hash string) (*models.RefreshToken, error) {
			assert.Equal(t, password.HashToken(refresh), hash)
			return &models.RefreshToken{
				ID:        11,
				UserID:    5,
				TokenHash: hash,
				ExpiresAt: time.Now().Add(24 * time.Hour),
			}, nil
		},
		RevokeFn: func(ctx context.Context, id uint) error {
			revokedID = id
			return nil
		},
	}
	users := &repomock.UserRepo{
		GetByIDFn: func(ctx context.Context, id uint) (*models.User, error) {
			return activeUser(id), nil
		},
	}
	svc := NewAuthService(users, tokens, cfg)

	resp, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, uint(11), revokedID, "the presented token is spent on use")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, refresh, resp.RefreshToken)
}

func TestRefreshToken_RevokedRejected(t *testing.T) {
	cfg := testAuthConfig()
	refresh, err := jwt.GenerateRefreshToken(5, "token-1", cfg.JWT.RefreshSecret, cfg.JWT.RefreshTokenDays)
	require.NoError(t, err)

	revokedAt := time.Now().Add(-time.Hour)
	tokens := &repomock.TokenRepo{
		GetByTokenHashFn: func(ctx context.Context, hash string) (*models.RefreshToken, error) {
			return &models.RefreshToken{
				ID:        11,
				UserID:    5,
				TokenHash: hash,
				ExpiresAt: time.Now().Add(24 * time.Hour),
				RevokedAt: &revokedAt,
			}, nil
		},
	}
	svc := NewAuthService(&repomock.UserRepo{}, tokens, cfg)

	_, err = svc.RefreshToken(context.Background(), refresh)
	require.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshToken_Garbage(t *testing.T) {
	svc := NewAuthService(&repomock.UserRepo{}, &repomock.TokenRepo{}, testAuthConfig())

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_UnknownHash(t *testing.T) {
	cfg := testAuthConfig()
	refresh, err := jwt.GenerateRefreshToken(5, "token-1", cfg.JWT.RefreshSecret, cfg.JWT.RefreshTokenDays)
	require.NoError(t, err)

	// Valid signature, but no matching stored hash (e.g. already rotated away)
	svc := NewAuthService(&repomock.UserRepo{}, &repomock.TokenRepo{}, cfg)

	_, err = svc.RefreshToken(context.Background(), refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}
