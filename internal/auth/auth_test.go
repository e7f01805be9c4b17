package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"keycontrol-backend/internal/model"
	"keycontrol-backend/internal/store"
)

// fakeStore serves users from memory. Methods outside the identity
// lookups are never reached by the auth service.
type fakeStore struct {
	store.Store
	byName map[string]*model.User
	byID   map[string]*model.User
}

func newFakeStore(users ...*model.User) *fakeStore {
	f := &fakeStore{byName: map[string]*model.User{}, byID: map[string]*model.User{}}
	for _, u := range users {
		f.byName[u.Username] = u
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeStore) FindUserByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStore) FindUserByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testUser(t *testing.T) *model.User {
	t.Helper()
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	return &model.User{
		ID:           "7b0d4f7e-0000-0000-0000-000000000001",
		Username:     "maria",
		PasswordHash: hash,
		NivelAcesso:  model.AccessEmployee,
	}
}

func TestAuthenticateThenVerifyRoundTrip(t *testing.T) {
	user := testUser(t)
	svc := NewService(newFakeStore(user), "test-secret", time.Hour)
	ctx := context.Background()

	got, token, err := svc.Authenticate(ctx, "maria", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	identity, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, model.AccessEmployee, identity.NivelAcesso)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	user := testUser(t)
	svc := NewService(newFakeStore(user), "test-secret", time.Hour)
	ctx := context.Background()

	_, _, err := svc.Authenticate(ctx, "maria", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown username fails with the same error.
	_, _, err = svc.Authenticate(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenFailures(t *testing.T) {
	user := testUser(t)
	fs := newFakeStore(user)
	svc := NewService(fs, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.VerifyToken(ctx, "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = svc.VerifyToken(ctx, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Signed by someone else.
	other := NewService(fs, "other-secret", time.Hour)
	_, token, err := other.Authenticate(ctx, "maria", "secret123")
	require.NoError(t, err)
	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Already past its expiry.
	expired := NewService(fs, "test-secret", -time.Minute)
	_, token, err = expired.Authenticate(ctx, "maria", "secret123")
	require.NoError(t, err)
	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyTokenRejectsDeletedUser(t *testing.T) {
	user := testUser(t)
	fs := newFakeStore(user)
	svc := NewService(fs, "test-secret", time.Hour)
	ctx := context.Background()

	_, token, err := svc.Authenticate(ctx, "maria", "secret123")
	require.NoError(t, err)

	delete(fs.byID, user.ID)

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestRequireRole(t *testing.T) {
	employee := &model.User{NivelAcesso: model.AccessEmployee}
	admin := &model.User{NivelAcesso: model.AccessAdmin}

	assert.NoError(t, RequireRole(admin, model.AccessAdmin))
	assert.ErrorIs(t, RequireRole(employee, model.AccessAdmin), ErrForbidden)
	assert.ErrorIs(t, RequireRole(nil, model.AccessAdmin), ErrForbidden)
}
