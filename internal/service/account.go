package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wanderly/travelmarket/internal/events"
	"github.com/wanderly/travelmarket/internal/hash"
	"github.com/wanderly/travelmarket/internal/logging"
	"github.com/wanderly/travelmarket/internal/models"
	"github.com/wanderly/travelmarket/internal/oauth"
	"github.com/wanderly/travelmarket/internal/repo"
)

var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
)

// AccountService resolves login attempts and registrations against the
// credential store. It owns the rule that a role is chosen exactly once per
// identity and never silently overwritten afterwards.
type AccountService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "account.register")

	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password required: %w", ErrValidation)
	}
	if !models.SelfAssignableRole(in.Role) {
		return nil, fmt.Errorf("role must be traveler or service_provider: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_failed", "reason", "hash", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         in.Role,
		AuthProvider: models.ProviderEmail,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Active:       true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			l.Warn("register_failed", "reason", "duplicate email")
			return nil, ErrDuplicateEmail
		}
		l.Error("register_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, user, events.TypeUserRegistered)
	l.Info("user_registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// PasswordLogin resolves an email+password attempt. All failure modes map to
// the same error so a caller cannot probe which factor was wrong.
func (s *AccountService) PasswordLogin(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "account.login")

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}
	// Pure-OAuth accounts have no password to check.
	if user.PasswordHash == "" || !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	s.publish(ctx, user, events.TypeUserLoggedIn)
	l.Info("user_logged_in", "user_id", user.ID)
	return user, nil
}

type GoogleSignInResult struct {
	User               *models.User
	NeedsRoleSelection bool
	Linked             bool
}

// GoogleSignIn resolves a verified Google identity to a user record:
// a returning identity loads its stored record (any role in the request is
// ignored), an email match links the identity to the existing account, and a
// brand-new identity registers once the caller has chosen a role.
func (s *AccountService) GoogleSignIn(ctx context.Context, ident *oauth.Identity, role string) (*GoogleSignInResult, error) {
	l := logging.FromContext(ctx).With("svc", "account.google")

	user, err := s.Repo.FindUserByGoogleID(ctx, ident.Sub)
	if err == nil {
		s.publish(ctx, user, events.TypeUserLoggedIn)
		l.Info("google_signin_returning", "user_id", user.ID)
		return &GoogleSignInResult{User: user}, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		l.Error("google_signin_failed", "error", err)
		return nil, err
	}

	existing, err := s.Repo.FindUserByEmail(ctx, ident.Email)
	if err == nil {
		if existing.GoogleID == nil {
			linked, err := s.Repo.LinkGoogleIdentity(ctx, existing.ID, ident.Sub)
			if err != nil {
				l.Error("google_link_failed", "user_id", existing.ID, "error", err)
				return nil, err
			}
			s.publish(ctx, linked, events.TypeIdentityLinked)
			l.Info("google_identity_linked", "user_id", linked.ID)
			return &GoogleSignInResult{User: linked, Linked: true}, nil
		}
		// Same email, different Google subject. Treat as a fresh failure
		// rather than hijacking the stored identity.
		return nil, ErrInvalidCredentials
	}
	if !errors.Is(err, repo.ErrNotFound) {
		l.Error("google_signin_failed", "error", err)
		return nil, err
	}

	if role == "" {
		// First-time sign-in without a chosen role: nothing is created until
		// the client re-submits with one.
		return &GoogleSignInResult{NeedsRoleSelection: true}, nil
	}
	if !models.SelfAssignableRole(role) {
		return nil, fmt.Errorf("role must be traveler or service_provider: %w", ErrValidation)
	}

	first, last := splitName(ident.Name)
	sub := ident.Sub
	user = &models.User{
		Email:        ident.Email,
		GoogleID:     &sub,
		Role:         role,
		AuthProvider: models.ProviderGoogle,
		FirstName:    first,
		LastName:     last,
		Active:       true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		l.Error("google_register_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, user, events.TypeUserRegistered)
	l.Info("google_user_registered", "user_id", user.ID, "role", user.Role)
	return &GoogleSignInResult{User: user}, nil
}

func (s *AccountService) publish(ctx context.Context, user *models.User, eventType string) {
	event := map[string]any{
		"type":    eventType,
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, events.UserEventsTopic, fmt.Sprint(user.ID), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", eventType, "error", err)
	}
}

func splitName(name string) (first, last string) {
	first, last, found := strings.Cut(strings.TrimSpace(name), " ")
	if !found {
		return first, ""
	}
	return first, last
}
