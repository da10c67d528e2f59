package httpserver_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderly/travelmarket/internal/models"
)

func TestListings_PublicReadProviderWrite(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	providerToken, _ := env.register(t, "p@test.com", models.RoleServiceProvider)
	travelerToken, _ := env.register(t, "t@test.com", models.RoleTraveler)

	// Travelers may not create listings.
	rec := env.do(t, http.MethodPost, "/services", travelerToken, map[string]any{
		"title": "Nope", "price": 1.0,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	listingID := env.createListing(t, providerToken, "Old town walk")

	// Reads need no token.
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/services/%d", listingID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Old town walk", decodeBody(t, rec)["title"])

	rec = env.do(t, http.MethodGet, "/services", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["data"], 1)

	// Only the owner (or an admin) may patch.
	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/services/%d", listingID), travelerToken, map[string]any{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/services/%d", listingID), providerToken, map[string]any{
		"price": 42.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42.0, decodeBody(t, rec)["price"])

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/services/%d", listingID), providerToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/services/%d", listingID), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch_UnavailableWithoutElasticsearch(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/services/search?q=tour", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
