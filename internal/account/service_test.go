package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/PabloST8/xcorte-sub001/internal/auth"
)

type fakeRepo struct {
	byEmail   map[string]*Account
	lastLogin map[string]time.Time
	loginErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*Account{}, lastLogin: map[string]time.Time{}}
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Account, error) {
	for _, a := range r.byEmail {
		if a.ID == id {
			c := *a
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Create(ctx context.Context, a *Account) error {
	if _, ok := r.byEmail[a.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	a.ID = "id-" + a.Email
	c := *a
	r.byEmail[a.Email] = &c
	return nil
}

func (r *fakeRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	if r.loginErr != nil {
		return r.loginErr
	}
	r.lastLogin[id] = t
	return nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewBcryptHasher(bcrypt.MinCost))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	a, err := svc.Register(ctx, " Shop@Mail.com ", "s3cret-pass", " Barbearia ")
	require.NoError(t, err)
	assert.Equal(t, "shop@mail.com", a.Email)
	require.NotNil(t, a.DisplayName)
	assert.Equal(t, "Barbearia", *a.DisplayName)
	assert.NotEqual(t, "s3cret-pass", a.PasswordHash)

	_, err = svc.Register(ctx, "shop@mail.com", "another-pass", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)

	_, err = svc.Register(ctx, "short@mail.com", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	logged, err := svc.Login(ctx, "SHOP@mail.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, a.ID, logged.ID)
	require.NotNil(t, logged.LastLoginAt)
	assert.Contains(t, repo.lastLogin, a.ID)

	got, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "shop@mail.com", got.Email)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Register(ctx, "shop@mail.com", "s3cret-pass", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "shop@mail.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@mail.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	repo.byEmail["shop@mail.com"].IsActive = false
	_, err = svc.Login(ctx, "shop@mail.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestLoginToleratesLastLoginFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Register(ctx, "shop@mail.com", "s3cret-pass", "")
	require.NoError(t, err)

	repo.loginErr = errors.New("read-only transaction")
	a, err := svc.Login(ctx, "shop@mail.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Nil(t, a.LastLoginAt)
}

func TestNilPoolRepository(t *testing.T) {
	repo := NewPgxRepository(nil)
	_, err := repo.GetByEmail(context.Background(), "shop@mail.com")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, repo.UpdateLastLogin(context.Background(), "x", time.Now()), ErrUnavailable)
}
