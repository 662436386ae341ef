package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/flash"
	"fyyur/internal/logger"
	"fyyur/internal/models"
)

func newTestRenderer(t *testing.T) *Renderer {
	rd, err := NewRenderer(flash.NewMemoryStore(time.Minute), logger.Discard())
	require.NoError(t, err)
	return rd
}

func TestNewRendererParsesEveryPage(t *testing.T) {
	rd := newTestRenderer(t)
	for _, name := range []string{
		PageHome, PageVenues, PageSearchVenues, PageShowVenue,
		PageArtists, PageSearchArtists, PageShowArtist, PageShows,
		FormNewVenue, FormEditVenue, FormNewArtist, FormEditArtist, FormNewShow,
		ErrorNotFound, ErrorServer,
	} {
		assert.Contains(t, rd.pages, name)
	}
}

func TestSessionsIssuesAndReusesCookie(t *testing.T) {
	var seen string
	h := Sessions(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, cookies[0].Value, seen)

	// a tampered cookie is replaced
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.NotEqual(t, "not-a-uuid", seen)
}

func TestRenderShowsAndConsumesFlashes(t *testing.T) {
	rd := newTestRenderer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSession(req.Context(), "session-1"))

	rd.AddFlash(req, "Venue The Musical Hop was successfully listed!")

	rec := httptest.NewRecorder()
	rd.Render(rec, req, http.StatusOK, PageHome, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Venue The Musical Hop was successfully listed!")

	rec = httptest.NewRecorder()
	rd.Render(rec, req, http.StatusOK, PageHome, nil)
	assert.NotContains(t, rec.Body.String(), "successfully listed")
}

func TestRenderVenueDetail(t *testing.T) {
	rd := newTestRenderer(t)
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.Local)
	detail := models.VenueDetail{
		Venue: models.Venue{ID: 3, Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA", Genres: models.Genres{"Jazz", "Folk"}},
		UpcomingShows: []models.VenueShow{
			{ShowID: 9, ArtistID: 5, ArtistName: "The Wild Sax Band", StartTime: start},
		},
		UpcomingShowsCount: 1,
		PastShows:          []models.VenueShow{},
	}

	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/venues/3", nil), http.StatusOK, PageShowVenue, detail)
	body := rec.Body.String()
	assert.Contains(t, body, "Park Square Live Music &amp; Coffee")
	assert.Contains(t, body, "1 Upcoming Show")
	assert.Contains(t, body, "0 Past Shows")
	assert.Contains(t, body, "The Wild Sax Band")
	assert.Contains(t, body, "Sunday April, 1, 2035 at 8:00PM")
	assert.Contains(t, body, `/venues/3/qr.png`)
}

func TestRenderEditFormKeepsSelections(t *testing.T) {
	rd := newTestRenderer(t)
	form := models.VenueForm{Name: "The Musical Hop", State: "CA", Genres: []string{"Jazz"}, SeekingTalent: true}

	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/venues/1/edit", nil), http.StatusOK, FormEditVenue,
		FormView{Action: "/venues/1/edit", ID: 1, Form: form})
	body := rec.Body.String()
	assert.Contains(t, body, `action="/venues/1/edit"`)
	assert.Contains(t, body, `<option value="CA" selected>`)
	assert.Contains(t, body, `<option value="Jazz" selected>`)
	assert.Contains(t, body, `name="seeking_talent" value="y" checked`)
}

func TestErrorPages(t *testing.T) {
	rd := newTestRenderer(t)

	rec := httptest.NewRecorder()
	rd.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not Found")

	rec = httptest.NewRecorder()
	rd.ServerError(rec, httptest.NewRequest(http.MethodGet, "/boom", nil), errors.New("db gone"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db gone")
}

func TestRenderUnknownPage(t *testing.T) {
	rd := newTestRenderer(t)
	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()), http.StatusOK, "pages/missing.html", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
