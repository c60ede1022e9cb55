package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locafest/internal/core/apperror"
)

type fakeRepo struct {
	users  map[string]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.users[u.Username]; ok {
		return apperror.NewDuplicate("user", "username", u.Username)
	}
	r.nextID++
	u.ID = r.nextID
	c := *u
	r.users[u.Username] = &c
	return nil
}

func (r *fakeRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperror.NewNotFound("user", username)
	}
	c := *u
	return &c, nil
}

func (r *fakeRepo) List(_ context.Context) ([]User, error) {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func newTestService() (*Service, *JWTService) {
	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(newFakeRepo(), jwtSvc), jwtSvc
}

func TestRegisterAndLogin(t *testing.T) {
	svc, jwtSvc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "admin", "secret123", RoleAdmin)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", u.PasswordHash)

	token, got, err := svc.Login(ctx, "admin", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	claims, err := jwtSvc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, string(RoleAdmin), claims.Role)
}

func TestLoginDoesNotRevealWhichCredentialFailed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "admin", "secret123", RoleAdmin)
	require.NoError(t, err)

	_, _, badUser := svc.Login(ctx, "nobody", "secret123")
	_, _, badPass := svc.Login(ctx, "admin", "wrong")

	require.Error(t, badUser)
	require.Error(t, badPass)
	assert.True(t, apperror.IsCode(badUser, apperror.CodeUnauthorized))
	assert.Equal(t, badUser.Error(), badPass.Error())
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "admin", "123", RoleAdmin)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "admin", "secret123", Role("root"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestValidateRejectsForeignToken(t *testing.T) {
	ours := NewJWTService(DefaultJWTConfig("test-secret"))
	theirs := NewJWTService(DefaultJWTConfig("other-secret"))

	token, err := theirs.Issue(&User{ID: 1, Username: "admin", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = ours.Validate(token)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	cfg := DefaultJWTConfig("test-secret")
	cfg.TokenTTL = -time.Minute
	svc := NewJWTService(cfg)

	token, err := svc.Issue(&User{ID: 1, Username: "admin", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnauthorized))
}
