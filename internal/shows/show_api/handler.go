package show_api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fyyur/internal/models"
	shows "fyyur/internal/shows/service"
	"fyyur/internal/web"
)

type Handler struct {
	ShowService *shows.ShowService
	Renderer    *web.Renderer
}

func NewHandler(showService *shows.ShowService, renderer *web.Renderer) *Handler {
	return &Handler{ShowService: showService, Renderer: renderer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/shows", func(r chi.Router) {
		r.Get("/", h.ListShows)
		r.Get("/create", h.CreateShowForm)
		r.Post("/create", h.CreateShow)
	})
}

func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	listings, err := h.ShowService.ListAll(r.Context())
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageShows, listings)
}

func (h *Handler) CreateShowForm(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, http.StatusOK, web.FormNewShow, web.FormView{
		Action: "/shows/create",
		Form:   models.ShowForm{},
	})
}

func (h *Handler) CreateShow(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	form := models.ShowFormFromValues(r.PostForm)

	if _, err := h.ShowService.Create(r.Context(), form); err != nil {
		h.Renderer.Logger.Warn("API", fmt.Sprintf("create show: %v", err))
		h.Renderer.AddFlash(r, "An error occurred. Show could not be listed.")
	} else {
		h.Renderer.AddFlash(r, "Show was successfully listed!")
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageHome, nil)
}
