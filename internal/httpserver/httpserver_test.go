package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/wanderly/travelmarket/internal/httpserver"
	"github.com/wanderly/travelmarket/internal/middleware"
	"github.com/wanderly/travelmarket/internal/models"
	"github.com/wanderly/travelmarket/internal/oauth"
	"github.com/wanderly/travelmarket/internal/repo"
	"github.com/wanderly/travelmarket/internal/service"
	"github.com/wanderly/travelmarket/internal/testutil"
)

var testSecret = []byte("test-jwt-secret")

type stubVerifier struct {
	ident *oauth.Identity
	err   error
}

func (s *stubVerifier) Verify(_ context.Context, _ string) (*oauth.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ident, nil
}

type testEnv struct {
	E        *echo.Echo
	Repo     *repo.GormRepo
	Verifier *stubVerifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := &repo.GormRepo{DB: testutil.NewDB(t)}
	verifier := &stubVerifier{}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{
			Svc:      &service.AccountService{Repo: r},
			Verifier: verifier,
			Secret:   testSecret,
			TokenTTL: time.Hour,
		},
		Cart:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}},
		Users:    &httpserver.UserHTTP{Svc: &service.UserService{Repo: r}},
		Listings: &httpserver.ListingHTTP{Svc: &service.ListingService{Repo: r}},
		Search:   &httpserver.SearchHTTP{},
		AuthMW:   middleware.NewAuth(testSecret),
	})

	return &testEnv{E: e, Repo: r, Verifier: verifier}
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// register creates an account through the API and returns its token and id.
func (env *testEnv) register(t *testing.T, email, role string) (token string, id uint) {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":      email,
		"password":   "password",
		"first_name": "Test",
		"last_name":  "User",
		"role":       role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	token = body["token"].(string)
	user := body["user"].(map[string]any)
	return token, uint(user["id"].(float64))
}

// promoteToAdmin flips a role directly in the store; admin accounts are never
// self-registered.
func (env *testEnv) promoteToAdmin(t *testing.T, id uint) string {
	t.Helper()

	require.NoError(t, env.Repo.DB.Model(&models.User{}).Where("id = ?", id).
		Update("role", models.RoleAdmin).Error)

	user, err := env.Repo.FindUserByID(context.Background(), id)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": user.Email, "password": "password",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody(t, rec)["token"].(string)
}
