package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/travelmarket/internal/middleware"
	"github.com/wanderly/travelmarket/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

// ownerID resolves the cart owner from the verified token claims, never from
// client-supplied input.
func ownerID(c echo.Context) (uint, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := ownerID(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := ownerID(c)
	if err != nil {
		return err
	}

	var req struct {
		ListingID uint `json:"listing_id"`
		Quantity  uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body", CodeValidation)
	}

	item, err := h.Svc.AddToCart(ctx, userID, req.ListingID, req.Quantity)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": item})
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := ownerID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid item id", CodeValidation)
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body", CodeValidation)
	}

	item, err := h.Svc.UpdateQuantity(ctx, userID, uint(itemID), req.Quantity)
	if err != nil {
		return serviceError(c, err)
	}
	if item == nil {
		// Quantity hit zero: the line item is gone.
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": item})
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := ownerID(c)
	if err != nil {
		return err
	}

	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid item id", CodeValidation)
	}

	if err := h.Svc.RemoveItem(ctx, userID, uint(itemID)); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := ownerID(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Clear(ctx, userID); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
