package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"fyyur/internal/flash"
	"fyyur/internal/logger"
	"fyyur/internal/models"
	"fyyur/internal/utils"
)

//go:embed templates
var templateFS embed.FS

// Page names accepted by Render.
const (
	PageHome          = "pages/home.html"
	PageVenues        = "pages/venues.html"
	PageSearchVenues  = "pages/search_venues.html"
	PageShowVenue     = "pages/show_venue.html"
	PageArtists       = "pages/artists.html"
	PageSearchArtists = "pages/search_artists.html"
	PageShowArtist    = "pages/show_artist.html"
	PageShows         = "pages/shows.html"
	FormNewVenue      = "forms/new_venue.html"
	FormEditVenue     = "forms/edit_venue.html"
	FormNewArtist     = "forms/new_artist.html"
	FormEditArtist    = "forms/edit_artist.html"
	FormNewShow       = "forms/new_show.html"
	ErrorNotFound     = "errors/404.html"
	ErrorServer       = "errors/500.html"
)

// Page is the value every template executes against.
type Page struct {
	Flashes []string
	Data    interface{}
}

// FormView feeds the create and edit forms.
type FormView struct {
	Action string
	ID     int64
	Form   interface{}
}

type Renderer struct {
	pages  map[string]*template.Template
	Flash  flash.Store
	Logger *logger.Logger
}

var funcs = template.FuncMap{
	"datetime": utils.FormatDateTime,
	"join":     strings.Join,
	"states":   func() []string { return models.States },
	"genres":   func() []string { return models.GenreChoices },
	"hasGenre": func(list []string, genre string) bool { return models.Genres(list).Contains(genre) },
}

// NewRenderer parses every page together with the shared layout and form
// partials.
func NewRenderer(store flash.Store, log *logger.Logger) (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}, Flash: store, Logger: log}

	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := strings.TrimPrefix(p, "templates/")
		if path.Dir(name) == "." || strings.HasPrefix(name, "partials/") {
			return nil
		}
		t, err := template.New(path.Base(name)).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials/*.html", p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render executes a page into a buffer first so a template failure never
// sends a half-written body. Pending flash messages are consumed.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	t, ok := rd.pages[name]
	if !ok {
		rd.Logger.Error("RENDER", fmt.Sprintf("unknown page %s", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := Page{Data: data}
	if id := SessionID(r.Context()); id != "" && rd.Flash != nil {
		messages, err := rd.Flash.Pop(r.Context(), id)
		if err != nil {
			rd.Logger.Warn("FLASH", err.Error())
		}
		page.Flashes = messages
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		rd.Logger.Error("RENDER", fmt.Sprintf("%s: %v", name, err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// AddFlash queues a message for the next page rendered in this session.
func (rd *Renderer) AddFlash(r *http.Request, message string) {
	id := SessionID(r.Context())
	if id == "" || rd.Flash == nil {
		return
	}
	if err := rd.Flash.Push(r.Context(), id, message); err != nil {
		rd.Logger.Warn("FLASH", err.Error())
		return
	}
	rd.Logger.Debug("FLASH", fmt.Sprintf("queued for session %s: %s", id, message))
}

func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.Render(w, r, http.StatusNotFound, ErrorNotFound, nil)
}

// ServerError logs err and shows the generic error page.
func (rd *Renderer) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	rd.Logger.Error("API", fmt.Sprintf("%s %s: %v", r.Method, r.URL.Path, err))
	rd.Render(w, r, http.StatusInternalServerError, ErrorServer, nil)
}
