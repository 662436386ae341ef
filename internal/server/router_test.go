package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/database"
	"fyyur/internal/flash"
	"fyyur/internal/logger"
	"fyyur/internal/server"
	"fyyur/internal/web"
)

func setupServer(t *testing.T) (*httptest.Server, *database.Seeded) {
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

	srv := httptest.NewServer(server.NewRouter(server.Deps{
		DB:       bunDB,
		Renderer: renderer,
		Logger:   log,
		Registry: prometheus.NewRegistry(),
		BaseURL:  "http://fyyur.test",
	}))
	t.Cleanup(srv.Close)
	return srv, seeded
}

func newClient(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestHomeHealthAndNotFound(t *testing.T) {
	srv, _ := setupServer(t)
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Cookies())
	readBody(t, resp)

	resp, err = client.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", readBody(t, resp))

	resp, err = client.Get(srv.URL + "/no/such/page")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "404")
}

func TestMetricsExposeRouteCounters(t *testing.T) {
	srv, _ := setupServer(t)
	client := newClient(t)

	for i := 0; i < 2; i++ {
		resp, err := client.Get(srv.URL + "/venues")
		require.NoError(t, err)
		readBody(t, resp)
	}

	resp, err := client.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "fyyur_http_requests_total")
	assert.Contains(t, body, `route="/venues`)
	assert.Contains(t, body, `status="200"`)
}

func TestBookingFlow(t *testing.T) {
	srv, seeded := setupServer(t)
	client := newClient(t)

	resp, err := client.PostForm(srv.URL+"/venues/create", url.Values{
		"name":           {"The Blue Door"},
		"city":           {"Austin"},
		"state":          {"TX"},
		"address":        {"12 Red River St"},
		"phone":          {"512-555-0100"},
		"genres":         {"Jazz", "Blues"},
		"seeking_talent": {"y"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Venue The Blue Door was successfully listed!")

	resp, err = client.PostForm(srv.URL+"/venues/search", url.Values{"search_term": {"blue"}})
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, `Number of search results for "blue": 1`)

	resp, err = client.PostForm(srv.URL+"/shows/create", url.Values{
		"artist_id":  {strconv.FormatInt(seeded.Artists["Guns N Petals"].ID, 10)},
		"venue_id":   {strconv.FormatInt(seeded.Venues["The Dueling Pianos Bar"].ID, 10)},
		"start_time": {"2035-06-01 21:30:00"},
	})
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "Show was successfully listed!")

	resp, err = client.Get(srv.URL + "/artists/" + strconv.FormatInt(seeded.Artists["Guns N Petals"].ID, 10))
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "The Dueling Pianos Bar")

	pianos := strconv.FormatInt(seeded.Venues["The Dueling Pianos Bar"].ID, 10)
	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/venues/"+pianos, nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
