package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/travelmarket/internal/middleware"
	"github.com/wanderly/travelmarket/internal/service"
	"github.com/wanderly/travelmarket/internal/tokens"
)

type UserHTTP struct {
	Svc *service.UserService
}

func actorClaims(c echo.Context) (*tokens.SessionClaims, uint, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return claims, id, nil
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.Svc.ListUsers(ctx, c.QueryParam("role"), c.QueryParam("auth_provider"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid user id", CodeValidation)
	}

	user, err := h.Svc.GetUser(ctx, uint(id))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	claims, actorID, err := actorClaims(c)
	if err != nil {
		return err
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid user id", CodeValidation)
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Role      *string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body", CodeValidation)
	}

	user, err := h.Svc.UpdateUser(ctx, actorID, claims.Role, uint(targetID), service.UserPatch{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) DeactivateUser(c echo.Context) error {
	ctx := c.Request().Context()

	claims, _, err := actorClaims(c)
	if err != nil {
		return err
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid user id", CodeValidation)
	}

	if err := h.Svc.DeactivateUser(ctx, claims.Role, uint(targetID)); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
