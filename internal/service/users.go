package service

import (
	"context"
	"fmt"

	"github.com/wanderly/travelmarket/internal/logging"
	"github.com/wanderly/travelmarket/internal/models"
	"github.com/wanderly/travelmarket/internal/policy"
	"github.com/wanderly/travelmarket/internal/repo"
)

// UserService covers profile updates and administrative user management.
type UserService struct {
	Repo *repo.GormRepo
	// StripRole selects the lenient role-policy mode: the role field is
	// silently dropped for non-admins instead of failing the request.
	StripRole bool
}

type UserPatch struct {
	FirstName *string
	LastName  *string
	Role      *string
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.Repo.FindUserByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, role, authProvider string) ([]models.User, error) {
	if role != "" && !models.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrValidation)
	}
	switch authProvider {
	case "", models.ProviderEmail, models.ProviderGoogle, models.ProviderBoth:
	default:
		return nil, fmt.Errorf("unknown auth provider %q: %w", authProvider, ErrValidation)
	}
	return s.Repo.ListUsers(ctx, role, authProvider)
}

// UpdateUser applies a profile mutation. Non-admins may only touch their own
// record, and the role field is gated by the role policy in whichever mode
// the service was wired with.
func (s *UserService) UpdateUser(ctx context.Context, actorID uint, actorRole string, targetID uint, patch UserPatch) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.update", "target_id", targetID)

	target, err := s.Repo.FindUserByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	// Role policy runs first so a role-bearing request gets its specific
	// denial code; the ownership gate below covers everything else.
	if !s.StripRole {
		if err := policy.CheckRoleChange(actorID, actorRole, target, patch.Role); err != nil {
			l.Warn("role_change_denied", "actor_id", actorID, "reason", err)
			return nil, err
		}
	}
	if actorRole != models.RoleAdmin && actorID != targetID {
		return nil, ErrForbidden
	}

	updates := map[string]any{}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}

	// Strip before validating so the lenient mode stays silent even for
	// garbage role values coming from non-admins.
	if s.StripRole {
		updates = policy.StripRoleFields(actorRole, updates)
	}
	if role, ok := updates["role"]; ok {
		if !models.ValidRole(role.(string)) {
			return nil, fmt.Errorf("unknown role %q: %w", role, ErrValidation)
		}
	}

	user, err := s.Repo.UpdateUserFields(ctx, targetID, updates)
	if err != nil {
		l.Error("update_failed", "error", err)
		return nil, err
	}
	l.Info("user_updated")
	return user, nil
}

// DeactivateUser flips the active flag; records are never hard-deleted.
func (s *UserService) DeactivateUser(ctx context.Context, actorRole string, targetID uint) error {
	if actorRole != models.RoleAdmin {
		return ErrForbidden
	}
	return s.Repo.DeactivateUser(ctx, targetID)
}
