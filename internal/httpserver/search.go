package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/wanderly/travelmarket/internal/search"
)

type SearchHTTP struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHTTP) Search(c echo.Context) error {
	if h.ES == nil {
		return errJSON(c, http.StatusServiceUnavailable, "search unavailable", CodeInternal)
	}

	q := c.QueryParam("q")
	if q == "" {
		return errJSON(c, http.StatusBadRequest, "query parameter q required", CodeValidation)
	}

	offset, limit, page, size := pageParams(c)

	total, listings, err := search.Search(c.Request().Context(), h.ES, h.Index, q, offset, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": listings,
		"meta": echo.Map{"page": page, "size": size, "total": total},
	})
}
