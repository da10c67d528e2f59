package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/travelmarket/internal/logging"
	"github.com/wanderly/travelmarket/internal/policy"
	"github.com/wanderly/travelmarket/internal/repo"
	"github.com/wanderly/travelmarket/internal/service"
)

// Machine-readable error codes surfaced to clients.
const (
	CodeValidation                = "VALIDATION_ERROR"
	CodeInvalidCredentials        = "INVALID_CREDENTIALS"
	CodeDuplicateEmail            = "DUPLICATE_EMAIL"
	CodeRoleModificationForbidden = "ROLE_MODIFICATION_FORBIDDEN"
	CodeAdminRequired             = "ADMIN_REQUIRED"
	CodeForbidden                 = "FORBIDDEN"
	CodeNotFound                  = "NOT_FOUND"
	CodeUnauthenticated           = "UNAUTHENTICATED"
	CodeInternal                  = "INTERNAL"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func errJSON(c echo.Context, status int, msg, code string) error {
	return c.JSON(status, errorBody{Error: msg, Code: code})
}

// serviceError maps service and repo sentinel errors onto HTTP responses.
// Authentication failures stay generic; authorization failures carry their
// specific code since nothing secret leaks. Anything unmapped is a 500 with
// the detail kept in the log, not the response.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return errJSON(c, http.StatusBadRequest, err.Error(), CodeValidation)
	case errors.Is(err, service.ErrInvalidCredentials):
		return errJSON(c, http.StatusUnauthorized, "invalid credentials", CodeInvalidCredentials)
	case errors.Is(err, service.ErrDuplicateEmail):
		return errJSON(c, http.StatusConflict, "email already registered", CodeDuplicateEmail)
	case errors.Is(err, policy.ErrRoleModificationForbidden):
		return errJSON(c, http.StatusForbidden, "you cannot change your own role", CodeRoleModificationForbidden)
	case errors.Is(err, policy.ErrAdminRequired):
		return errJSON(c, http.StatusForbidden, "admin required", CodeAdminRequired)
	case errors.Is(err, service.ErrForbidden):
		return errJSON(c, http.StatusForbidden, "forbidden", CodeForbidden)
	case errors.Is(err, repo.ErrNotFound):
		return errJSON(c, http.StatusNotFound, "not found", CodeNotFound)
	default:
		logging.FromContext(c.Request().Context()).Error("internal_error", "error", err)
		return errJSON(c, http.StatusInternalServerError, "internal server error", CodeInternal)
	}
}
