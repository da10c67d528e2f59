package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/travelmarket/internal/models"
	"github.com/wanderly/travelmarket/internal/repo"
	"github.com/wanderly/travelmarket/internal/service"
)

type ListingHTTP struct {
	Svc *service.ListingService
}

const defaultPageSize = 10

// pageParams clamps page/size query parameters to sane pagination bounds.
func pageParams(c echo.Context) (offset, limit, page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, _ = strconv.Atoi(c.QueryParam("size"))
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = defaultPageSize
	}
	return (page - 1) * size, size, page, size
}

func (h *ListingHTTP) GetListing(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid listing id", CodeValidation)
	}

	listing, err := h.Svc.GetListing(ctx, uint(id))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHTTP) GetListings(c echo.Context) error {
	ctx := c.Request().Context()
	offset, limit, page, size := pageParams(c)

	total, items, err := h.Svc.GetListings(ctx, offset, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": echo.Map{"page": page, "size": size, "total": total},
	})
}

func (h *ListingHTTP) CreateListing(c echo.Context) error {
	ctx := c.Request().Context()

	claims, actorID, err := actorClaims(c)
	if err != nil {
		return err
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Location    string  `json:"location"`
		Price       float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body", CodeValidation)
	}

	listing := models.Listing{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
	}
	if err := h.Svc.CreateListing(ctx, actorID, claims.Role, &listing); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, listing)
}

func (h *ListingHTTP) PatchListing(c echo.Context) error {
	ctx := c.Request().Context()

	claims, actorID, err := actorClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid listing id", CodeValidation)
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Location    *string  `json:"location"`
		Price       *float64 `json:"price"`
		Active      *bool    `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid body", CodeValidation)
	}

	listing, err := h.Svc.PatchListing(ctx, actorID, claims.Role, uint(id), repo.ListingPatch{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Price:       req.Price,
		Active:      req.Active,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *ListingHTTP) DeleteListing(c echo.Context) error {
	ctx := c.Request().Context()

	claims, actorID, err := actorClaims(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid listing id", CodeValidation)
	}

	if err := h.Svc.DeleteListing(ctx, actorID, claims.Role, uint(id)); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
