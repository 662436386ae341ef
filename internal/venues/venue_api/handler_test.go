package venue_api_test

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/database"
	"fyyur/internal/flash"
	"fyyur/internal/logger"
	"fyyur/internal/venues/db"
	venues "fyyur/internal/venues/service"
	"fyyur/internal/venues/venue_api"
	"fyyur/internal/web"
)

func setupRouter(t *testing.T) (http.Handler, *database.Seeded) {
	ctx := context.Background()
	bunDB, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { bunDB.Close() })
	require.NoError(t, database.CreateSchema(ctx, bunDB))
	seeded, err := database.Seed(ctx, bunDB)
	require.NoError(t, err)

	log := logger.Discard()
	renderer, err := web.NewRenderer(flash.NewMemoryStore(time.Minute), log)
	require.NoError(t, err)

	svc := venues.NewVenueService(&db.DB{Bun: bunDB}, nil, log)
	handler := venue_api.NewHandler(svc, renderer, "http://fyyur.test")

	r := chi.NewRouter()
	r.Use(web.Sessions)
	handler.RegisterRoutes(r)
	return r, seeded
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListVenuesGroupsByLocation(t *testing.T) {
	router, _ := setupRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/venues", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "San Francisco, CA")
	assert.Contains(t, body, "New York, NY")
	assert.Equal(t, 1, strings.Count(body, "The Musical Hop"))
	assert.Contains(t, body, "3 upcoming shows")
}

func TestSearchVenues(t *testing.T) {
	router, _ := setupRouter(t)

	rec := serve(router, postForm("/venues/search", url.Values{"search_term": {"Music"}}))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `Number of search results for "Music": 2`)
	assert.Contains(t, body, "The Musical Hop")
	assert.Contains(t, body, "Park Square Live Music &amp; Coffee")
	assert.NotContains(t, body, "The Dueling Pianos Bar")
}

func TestGetVenue(t *testing.T) {
	router, seeded := setupRouter(t)
	park := seeded.Venues["Park Square Live Music & Coffee"]

	rec := serve(router, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/venues/%d", park.ID), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "3 Upcoming Shows")
	assert.Contains(t, body, "1 Past Show")
	assert.Contains(t, body, "The Wild Sax Band")

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/venues/9999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/venues/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateVenue(t *testing.T) {
	router, _ := setupRouter(t)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/venues/create", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/venues/create"`)

	rec = serve(router, postForm("/venues/create", url.Values{
		"name":           {"The Blue Room"},
		"city":           {"Austin"},
		"state":          {"TX"},
		"address":        {"200 Congress Ave"},
		"genres":         {"Jazz", "Blues"},
		"website_link":   {"https://blueroom.example.com"},
		"seeking_talent": {"y"},
	}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Venue The Blue Room was successfully listed!")

	rec = serve(router, postForm("/venues/search", url.Values{"search_term": {"blue room"}}))
	assert.Contains(t, rec.Body.String(), `Number of search results for "blue room": 1`)
}

func TestCreateVenueInvalid(t *testing.T) {
	router, _ := setupRouter(t)

	rec := serve(router, postForm("/venues/create", url.Values{
		"name":  {"Nowhere"},
		"city":  {"Austin"},
		"state": {"ZZ"},
	}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "An error occurred. Venue Nowhere could not be listed.")

	rec = serve(router, postForm("/venues/search", url.Values{"search_term": {"Nowhere"}}))
	assert.Contains(t, rec.Body.String(), `Number of search results for "Nowhere": 0`)
}

func TestDeleteVenue(t *testing.T) {
	router, seeded := setupRouter(t)
	park := seeded.Venues["Park Square Live Music & Coffee"]
	pianos := seeded.Venues["The Dueling Pianos Bar"]

	rec := serve(router, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/venues/%d", park.ID), nil))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"error":"venue_has_shows"`)

	rec = serve(router, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/venues/%d", pianos.ID), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/venues/%d", pianos.ID), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/venues/%d", park.ID), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteVenueForm(t *testing.T) {
	router, seeded := setupRouter(t)
	hop := seeded.Venues["The Musical Hop"]
	pianos := seeded.Venues["The Dueling Pianos Bar"]

	rec := serve(router, postForm(fmt.Sprintf("/venues/%d/delete", hop.ID), url.Values{}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, fmt.Sprintf("/venues/%d", hop.ID), rec.Header().Get("Location"))

	rec = serve(router, postForm(fmt.Sprintf("/venues/%d/delete", pianos.ID), url.Values{}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestEditVenue(t *testing.T) {
	router, seeded := setupRouter(t)
	hop := seeded.Venues["The Musical Hop"]
	editPath := fmt.Sprintf("/venues/%d/edit", hop.ID)

	rec := serve(router, httptest.NewRequest(http.MethodGet, editPath, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="The Musical Hop"`)
	assert.Contains(t, body, `value="1015 Folsom Street"`)
	assert.Contains(t, body, `<option value="Reggae" selected>`)

	// the session cookie carries the flash across the redirect
	req := postForm(editPath, url.Values{
		"name":    {"The Musical Hop II"},
		"city":    {"San Francisco"},
		"state":   {"CA"},
		"address": {"1015 Folsom Street"},
		"genres":  {"Jazz"},
	})
	rec = serve(router, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, fmt.Sprintf("/venues/%d", hop.ID), rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	follow := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/venues/%d", hop.ID), nil)
	follow.AddCookie(cookies[0])
	rec = serve(router, follow)
	body = rec.Body.String()
	assert.Contains(t, body, "The Musical Hop II")
	assert.Contains(t, body, "Venue The Musical Hop II was successfully updated!")

	rec = serve(router, postForm(editPath, url.Values{"name": {"Broken"}, "state": {"ZZ"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be updated")

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/venues/9999/edit", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVenueQRCode(t *testing.T) {
	router, seeded := setupRouter(t)
	hop := seeded.Venues["The Musical Hop"]

	rec := serve(router, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/venues/%d/qr.png", hop.ID), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/venues/9999/qr.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
