package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/travelmarket/internal/logging"
	"github.com/wanderly/travelmarket/internal/models"
	"github.com/wanderly/travelmarket/internal/oauth"
	"github.com/wanderly/travelmarket/internal/service"
	"github.com/wanderly/travelmarket/internal/tokens"
)

type AuthHTTP struct {
	Svc      *service.AccountService
	Verifier oauth.Verifier
	Secret   []byte
	TokenTTL time.Duration
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHTTP) issue(c echo.Context, status int, user *models.User) error {
	token, err := tokens.Issue(user, h.Secret, h.TokenTTL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(status, authResponse{User: user, Token: token})
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_bad_body", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid body", CodeValidation)
	}

	user, err := h.Svc.Register(ctx, service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return h.issue(c, http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_bad_body", "error", err)
		return errJSON(c, http.StatusBadRequest, "invalid body", CodeValidation)
	}

	user, err := h.Svc.PasswordLogin(ctx, req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	return h.issue(c, http.StatusOK, user)
}

// Google handles the OAuth sign-in surface: the frontend posts a Google ID
// token plus, on a first-time sign-in, a chosen role. When a brand-new
// identity arrives without a role nothing is created and the client is asked
// to pick one.
func (h *AuthHTTP) Google(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.google")

	if h.Verifier == nil {
		return errJSON(c, http.StatusServiceUnavailable, "google sign-in unavailable", CodeInternal)
	}

	var req struct {
		IDToken string `json:"idToken"`
		Role    string `json:"role"`
	}
	if err := c.Bind(&req); err != nil || req.IDToken == "" {
		return errJSON(c, http.StatusBadRequest, "idToken required", CodeValidation)
	}

	ident, err := h.Verifier.Verify(ctx, req.IDToken)
	if err != nil {
		l.Warn("google_token_rejected", "error", err)
		return errJSON(c, http.StatusUnauthorized, "invalid credentials", CodeInvalidCredentials)
	}

	res, err := h.Svc.GoogleSignIn(ctx, ident, req.Role)
	if err != nil {
		return serviceError(c, err)
	}

	if res.NeedsRoleSelection {
		return c.JSON(http.StatusOK, echo.Map{"needsRoleSelection": true})
	}

	token, err := tokens.Issue(res.User, h.Secret, h.TokenTTL)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":               res.User,
		"token":              token,
		"needsRoleSelection": false,
	})
}
