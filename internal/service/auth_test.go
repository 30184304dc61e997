package service

import (
	"testing"
	"time"

	"catalog/internal/crypto"
	"catalog/internal/models"
	"catalog/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthRepo struct {
	users map[string]*models.User
}

func (r *fakeAuthRepo) CreateUser(user *models.User) error {
	user.ID = int64(len(r.users) + 1)
	r.users[user.Username] = user
	return nil
}

func (r *fakeAuthRepo) GetUserByUsername(username string) (*models.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeAuthRepo) CountUsers() (int, error) {
	return len(r.users), nil
}

func newFakeAuthRepo(t *testing.T, username, password string) *fakeAuthRepo {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)
	return &fakeAuthRepo{users: map[string]*models.User{
		username: {ID: 1, Username: username, PasswordHash: hash},
	}}
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newFakeAuthRepo(t, "test", "test")
	svc := NewAuthService(repo, []byte("secret"), time.Hour, zap.NewNop())

	tokenString, err := svc.Login("test", "test")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "test", claims.Username)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeAuthRepo(t, "test", "test")
	svc := NewAuthService(repo, []byte("secret"), time.Hour, zap.NewNop())

	_, err := svc.Login("test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := newFakeAuthRepo(t, "test", "test")
	svc := NewAuthService(repo, []byte("secret"), time.Hour, zap.NewNop())

	_, err := svc.Login("nobody", "test")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginTokenSignedWithConfiguredSecret(t *testing.T) {
	repo := newFakeAuthRepo(t, "test", "test")
	svc := NewAuthService(repo, []byte("secret"), time.Hour, zap.NewNop())

	tokenString, err := svc.Login("test", "test")
	require.NoError(t, err)

	_, err = jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
