package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderly/travelmarket/internal/models"
)

var testSecret = []byte("test-jwt-secret")

func testUser() *models.User {
	return &models.User{
		ID:    42,
		Email: "a@test.com",
		Role:  models.RoleTraveler,
	}
}

func TestIssueAndParse_RoundTrip(t *testing.T) {
	t.Parallel()

	token, err := Issue(testUser(), testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "a@test.com", claims.Email)
	assert.Equal(t, models.RoleTraveler, claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssue_DefaultTTL(t *testing.T) {
	t.Parallel()

	token, err := Issue(testUser(), testSecret, 0)
	require.NoError(t, err)

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParse_RoleIsSnapshotAtIssuance(t *testing.T) {
	t.Parallel()

	user := testUser()
	token, err := Issue(user, testSecret, time.Hour)
	require.NoError(t, err)

	// Role changes after issuance do not affect the already-issued token.
	user.Role = models.RoleAdmin

	claims, err := Parse(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTraveler, claims.Role)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	token, err := Issue(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	claims, err := Parse(token, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Issue(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, []byte("other-secret"))
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	claims, err := Parse("not-a-jwt", testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrMalformed)
}
