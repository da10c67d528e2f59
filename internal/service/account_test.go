package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderly/travelmarket/internal/models"
	"github.com/wanderly/travelmarket/internal/oauth"
	"github.com/wanderly/travelmarket/internal/repo"
	"github.com/wanderly/travelmarket/internal/service"
	"github.com/wanderly/travelmarket/internal/testutil"
)

func newAccountService(t *testing.T) *service.AccountService {
	t.Helper()
	return &service.AccountService{Repo: &repo.GormRepo{DB: testutil.NewDB(t)}}
}

func registerTraveler(t *testing.T, svc *service.AccountService, email, password string) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), service.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleTraveler,
	})
	require.NoError(t, err)
	return user
}

func TestRegister_CreatesEmailAccount(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)

	user := registerTraveler(t, svc, "a@test.com", "password")

	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleTraveler, user.Role)
	assert.Equal(t, models.ProviderEmail, user.AuthProvider)
	assert.NotEqual(t, "password", user.PasswordHash)
	assert.True(t, user.Active)
}

func TestRegister_RejectsAdminAndUnknownRoles(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)

	for _, role := range []string{models.RoleAdmin, "superuser", ""} {
		_, err := svc.Register(context.Background(), service.RegisterInput{
			Email:    "r@test.com",
			Password: "password",
			Role:     role,
		})
		assert.ErrorIs(t, err, service.ErrValidation, "role %q", role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)

	registerTraveler(t, svc, "dup@test.com", "password")

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "DUP@test.com",
		Password: "password",
		Role:     models.RoleServiceProvider,
	})
	assert.ErrorIs(t, err, service.ErrDuplicateEmail)
}

func TestPasswordLogin(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)
	ctx := context.Background()

	created := registerTraveler(t, svc, "a@test.com", "password")

	user, err := svc.PasswordLogin(ctx, "a@test.com", "password")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, models.RoleTraveler, user.Role)

	_, err = svc.PasswordLogin(ctx, "a@test.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.PasswordLogin(ctx, "nobody@test.com", "password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestPasswordLogin_PureOAuthAccountHasNoPassword(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)
	ctx := context.Background()

	res, err := svc.GoogleSignIn(ctx, &oauth.Identity{
		Sub: "sub-1", Email: "g@test.com", Name: "Gee User",
	}, models.RoleTraveler)
	require.NoError(t, err)
	require.NotNil(t, res.User)

	_, err = svc.PasswordLogin(ctx, "g@test.com", "anything")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestGoogleSignIn_FirstTimeRequiresRoleSelection(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)
	ctx := context.Background()

	ident := &oauth.Identity{Sub: "sub-new", Email: "new@test.com", Name: "New User"}

	res, err := svc.GoogleSignIn(ctx, ident, "")
	require.NoError(t, err)
	assert.True(t, res.NeedsRoleSelection)
	assert.Nil(t, res.User)

	// Nothing was created until a role is supplied.
	_, err = svc.Repo.FindUserByEmail(ctx, ident.Email)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	res, err = svc.GoogleSignIn(ctx, ident, models.RoleServiceProvider)
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.False(t, res.NeedsRoleSelection)
	assert.Equal(t, models.RoleServiceProvider, res.User.Role)
	assert.Equal(t, models.ProviderGoogle, res.User.AuthProvider)
	require.NotNil(t, res.User.GoogleID)
	assert.Equal(t, "sub-new", *res.User.GoogleID)
	assert.Equal(t, "New", res.User.FirstName)
	assert.Equal(t, "User", res.User.LastName)
}

func TestGoogleSignIn_FirstTimeRejectsAdminRole(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)

	_, err := svc.GoogleSignIn(context.Background(), &oauth.Identity{
		Sub: "sub-a", Email: "adm@test.com",
	}, models.RoleAdmin)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestGoogleSignIn_ReturningUserKeepsStoredRole(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)
	ctx := context.Background()

	ident := &oauth.Identity{Sub: "sub-r", Email: "ret@test.com", Name: "Ret User"}

	first, err := svc.GoogleSignIn(ctx, ident, models.RoleTraveler)
	require.NoError(t, err)

	// A role supplied on a later sign-in is ignored, not applied.
	again, err := svc.GoogleSignIn(ctx, ident, models.RoleServiceProvider)
	require.NoError(t, err)
	assert.False(t, again.NeedsRoleSelection)
	assert.Equal(t, first.User.ID, again.User.ID)
	assert.Equal(t, models.RoleTraveler, again.User.Role)
}

func TestGoogleSignIn_LinksExistingEmailAccount(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)
	ctx := context.Background()

	created := registerTraveler(t, svc, "link@test.com", "password")
	originalHash := created.PasswordHash

	res, err := svc.GoogleSignIn(ctx, &oauth.Identity{
		Sub: "sub-l", Email: "link@test.com", Name: "Link User",
	}, "")
	require.NoError(t, err)
	assert.True(t, res.Linked)
	assert.False(t, res.NeedsRoleSelection)

	assert.Equal(t, created.ID, res.User.ID)
	assert.Equal(t, models.ProviderBoth, res.User.AuthProvider)
	assert.Equal(t, models.RoleTraveler, res.User.Role)
	assert.Equal(t, originalHash, res.User.PasswordHash)
	require.NotNil(t, res.User.GoogleID)
	assert.Equal(t, "sub-l", *res.User.GoogleID)

	// Password login still works after linking.
	_, err = svc.PasswordLogin(ctx, "link@test.com", "password")
	assert.NoError(t, err)
}

func TestGoogleSignIn_EmailTakenByDifferentGoogleIdentity(t *testing.T) {
	t.Parallel()
	svc := newAccountService(t)
	ctx := context.Background()

	_, err := svc.GoogleSignIn(ctx, &oauth.Identity{
		Sub: "sub-1", Email: "same@test.com",
	}, models.RoleTraveler)
	require.NoError(t, err)

	_, err = svc.GoogleSignIn(ctx, &oauth.Identity{
		Sub: "sub-2", Email: "same@test.com",
	}, models.RoleTraveler)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
