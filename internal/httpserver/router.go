package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/travelmarket/internal/middleware"
)

type Deps struct {
	Auth     *AuthHTTP
	Cart     *CartHTTP
	Users    *UserHTTP
	Listings *ListingHTTP
	Search   *SearchHTTP
	AuthMW   *middleware.Auth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/auth/register", d.Auth.Register)
	e.POST("/auth/login", d.Auth.Login)
	e.POST("/auth/google", d.Auth.Google)

	e.GET("/services", d.Listings.GetListings)
	e.GET("/services/search", d.Search.Search)
	e.GET("/services/:id", d.Listings.GetListing)

	private := e.Group("", d.AuthMW.RequireAuth)

	private.GET("/cart", d.Cart.GetCart)
	private.POST("/cart/items", d.Cart.AddItem)
	private.PATCH("/cart/items/:id", d.Cart.UpdateItem)
	private.DELETE("/cart/items/:id", d.Cart.RemoveItem)
	private.DELETE("/cart", d.Cart.Clear)

	private.POST("/services", d.Listings.CreateListing)
	private.PATCH("/services/:id", d.Listings.PatchListing)
	private.DELETE("/services/:id", d.Listings.DeleteListing)

	private.GET("/users/:id", d.Users.GetUser)
	private.PATCH("/users/:id", d.Users.UpdateUser)

	admin := e.Group("", d.AuthMW.RequireAdmin)
	admin.GET("/users", d.Users.ListUsers)
	admin.DELETE("/users/:id", d.Users.DeactivateUser)
}
