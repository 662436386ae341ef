package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"

	"fyyur/internal/artists/artist_api"
	artistdb "fyyur/internal/artists/db"
	artists "fyyur/internal/artists/service"
	"fyyur/internal/kafka"
	"fyyur/internal/logger"
	"fyyur/internal/middleware"
	showdb "fyyur/internal/shows/db"
	shows "fyyur/internal/shows/service"
	"fyyur/internal/shows/show_api"
	venuedb "fyyur/internal/venues/db"
	venues "fyyur/internal/venues/service"
	"fyyur/internal/venues/venue_api"
	"fyyur/internal/web"
)

// Deps carries everything the router needs. Events may be nil when the
// broker is disabled.
type Deps struct {
	DB       *bun.DB
	Renderer *web.Renderer
	Logger   *logger.Logger
	Events   *kafka.Producer
	Registry *prometheus.Registry
	BaseURL  string
}

func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = logger.Discard()
	}
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	venueService := venues.NewVenueService(&venuedb.DB{Bun: d.DB}, d.Events, log)
	artistService := artists.NewArtistService(&artistdb.DB{Bun: d.DB}, d.Events, log)
	showService := shows.NewShowService(&showdb.DB{Bun: d.DB}, d.Events, log)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(log, d.Renderer.ServerError))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.NewMetrics(reg).Handler)
	r.Use(web.Sessions)

	r.NotFound(d.Renderer.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		d.Renderer.Render(w, r, http.StatusOK, web.PageHome, nil)
	})
	r.Get("/healthz", healthz(d.DB))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	venue_api.NewHandler(venueService, d.Renderer, d.BaseURL).RegisterRoutes(r)
	artist_api.NewHandler(artistService, d.Renderer).RegisterRoutes(r)
	show_api.NewHandler(showService, d.Renderer).RegisterRoutes(r)
	log.Info("ROUTER", "Venue, artist and show routes registered")

	return r
}

func healthz(db *bun.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			http.Error(w, fmt.Sprintf("database unavailable: %v", err), http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}
}
