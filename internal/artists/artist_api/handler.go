package artist_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	artists "fyyur/internal/artists/service"
	"fyyur/internal/models"
	"fyyur/internal/web"
)

type Handler struct {
	ArtistService *artists.ArtistService
	Renderer      *web.Renderer
}

func NewHandler(artistService *artists.ArtistService, renderer *web.Renderer) *Handler {
	return &Handler{ArtistService: artistService, Renderer: renderer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/artists", func(r chi.Router) {
		r.Get("/", h.ListArtists)
		r.Post("/search", h.SearchArtists)
		r.Get("/create", h.CreateArtistForm)
		r.Post("/create", h.CreateArtist)
		r.Get("/{artistID}", h.GetArtist)
		r.Get("/{artistID}/edit", h.EditArtistForm)
		r.Post("/{artistID}/edit", h.UpdateArtist)
	})
}

func artistID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "artistID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	all, err := h.ArtistService.ListAll(r.Context())
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageArtists, all)
}

func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	result, err := h.ArtistService.Search(r.Context(), r.PostForm.Get("search_term"))
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageSearchArtists, result)
}

func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := artistID(r)
	if !ok {
		h.Renderer.NotFound(w, r)
		return
	}
	detail, err := h.ArtistService.GetDetail(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Renderer.NotFound(w, r)
		return
	}
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageShowArtist, detail)
}

func (h *Handler) CreateArtistForm(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, http.StatusOK, web.FormNewArtist, web.FormView{
		Action: "/artists/create",
		Form:   models.ArtistForm{},
	})
}

func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	form := models.ArtistFormFromValues(r.PostForm)

	if _, err := h.ArtistService.Create(r.Context(), form); err != nil {
		h.Renderer.Logger.Warn("API", fmt.Sprintf("create artist %q: %v", form.Name, err))
		h.Renderer.AddFlash(r, "An error occurred. Artist "+form.Name+" could not be listed.")
	} else {
		h.Renderer.AddFlash(r, "Artist "+form.Name+" was successfully listed!")
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageHome, nil)
}

func (h *Handler) EditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, ok := artistID(r)
	if !ok {
		h.Renderer.NotFound(w, r)
		return
	}
	_, form, err := h.ArtistService.GetForEdit(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Renderer.NotFound(w, r)
		return
	}
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, web.FormEditArtist, web.FormView{
		Action: fmt.Sprintf("/artists/%d/edit", id),
		ID:     id,
		Form:   form,
	})
}

func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := artistID(r)
	if !ok {
		h.Renderer.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	form := models.ArtistFormFromValues(r.PostForm)

	_, err := h.ArtistService.Update(r.Context(), id, form)
	switch {
	case err == nil:
		h.Renderer.AddFlash(r, "Artist "+form.Name+" was successfully updated!")
		http.Redirect(w, r, fmt.Sprintf("/artists/%d", id), http.StatusSeeOther)
	case errors.Is(err, models.ErrNotFound):
		h.Renderer.NotFound(w, r)
	case errors.Is(err, models.ErrInvalidForm):
		h.Renderer.Logger.Warn("API", fmt.Sprintf("update artist %d: %v", id, err))
		h.Renderer.AddFlash(r, "An error occurred. Artist "+form.Name+" could not be updated.")
		h.Renderer.Render(w, r, http.StatusBadRequest, web.FormEditArtist, web.FormView{
			Action: fmt.Sprintf("/artists/%d/edit", id),
			ID:     id,
			Form:   form,
		})
	default:
		h.Renderer.ServerError(w, r, err)
	}
}
