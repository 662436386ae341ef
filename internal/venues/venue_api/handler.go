package venue_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"fyyur/internal/models"
	"fyyur/internal/utils"
	venues "fyyur/internal/venues/service"
	"fyyur/internal/web"
)

const qrSize = 256

type Handler struct {
	VenueService *venues.VenueService
	Renderer     *web.Renderer
	// BaseURL prefixes the venue link encoded in QR codes.
	BaseURL string
}

func NewHandler(venueService *venues.VenueService, renderer *web.Renderer, baseURL string) *Handler {
	return &Handler{VenueService: venueService, Renderer: renderer, BaseURL: baseURL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/venues", func(r chi.Router) {
		r.Get("/", h.ListVenues)
		r.Post("/search", h.SearchVenues)
		r.Get("/create", h.CreateVenueForm)
		r.Post("/create", h.CreateVenue)
		r.Route("/{venueID}", func(r chi.Router) {
			r.Get("/", h.GetVenue)
			r.Delete("/", h.DeleteVenue)
			r.Post("/delete", h.DeleteVenueForm)
			r.Get("/edit", h.EditVenueForm)
			r.Post("/edit", h.UpdateVenue)
			r.Get("/qr.png", h.VenueQRCode)
		})
	})
}

// venueID reads the {venueID} URL param. Anything that is not a positive
// integer is treated as an unknown venue.
func venueID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := h.VenueService.ListGroupedByLocation(r.Context())
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageVenues, areas)
}

func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	result, err := h.VenueService.Search(r.Context(), r.PostForm.Get("search_term"))
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageSearchVenues, result)
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Renderer.NotFound(w, r)
		return
	}
	detail, err := h.VenueService.GetDetail(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Renderer.NotFound(w, r)
		return
	}
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageShowVenue, detail)
}

func (h *Handler) CreateVenueForm(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, r, http.StatusOK, web.FormNewVenue, web.FormView{
		Action: "/venues/create",
		Form:   models.VenueForm{},
	})
}

// CreateVenue persists the submission and shows the outcome as a flash on
// the home page.
func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	form := models.VenueFormFromValues(r.PostForm)

	if _, err := h.VenueService.Create(r.Context(), form); err != nil {
		h.Renderer.Logger.Warn("API", fmt.Sprintf("create venue %q: %v", form.Name, err))
		h.Renderer.AddFlash(r, "An error occurred. Venue "+form.Name+" could not be listed.")
	} else {
		h.Renderer.AddFlash(r, "Venue "+form.Name+" was successfully listed!")
	}
	h.Renderer.Render(w, r, http.StatusOK, web.PageHome, nil)
}

// DeleteVenue answers 204 on success, 409 while shows still reference the
// venue and 404 for unknown ids.
func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Venue not found", "not_found"))
		return
	}

	err := h.VenueService.Delete(r.Context(), id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, models.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Venue not found", "not_found"))
	case errors.Is(err, models.ErrVenueHasShows):
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse("Venue still has shows booked", "venue_has_shows"))
	default:
		h.Renderer.Logger.Error("API", fmt.Sprintf("delete venue %d: %v", id, err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to delete venue", "internal"))
	}
}

// DeleteVenueForm is the browser-friendly delete behind the button on the
// venue page.
func (h *Handler) DeleteVenueForm(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Renderer.NotFound(w, r)
		return
	}

	err := h.VenueService.Delete(r.Context(), id)
	switch {
	case err == nil:
		h.Renderer.AddFlash(r, "Venue was successfully deleted.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, models.ErrNotFound):
		h.Renderer.NotFound(w, r)
	case errors.Is(err, models.ErrVenueHasShows):
		h.Renderer.AddFlash(r, "An error occurred. Venue could not be deleted because shows are still booked there.")
		http.Redirect(w, r, fmt.Sprintf("/venues/%d", id), http.StatusSeeOther)
	default:
		h.Renderer.ServerError(w, r, err)
	}
}

func (h *Handler) EditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Renderer.NotFound(w, r)
		return
	}
	_, form, err := h.VenueService.GetForEdit(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		h.Renderer.NotFound(w, r)
		return
	}
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	h.Renderer.Render(w, r, http.StatusOK, web.FormEditVenue, web.FormView{
		Action: fmt.Sprintf("/venues/%d/edit", id),
		ID:     id,
		Form:   form,
	})
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Renderer.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	form := models.VenueFormFromValues(r.PostForm)

	_, err := h.VenueService.Update(r.Context(), id, form)
	switch {
	case err == nil:
		h.Renderer.AddFlash(r, "Venue "+form.Name+" was successfully updated!")
		http.Redirect(w, r, fmt.Sprintf("/venues/%d", id), http.StatusSeeOther)
	case errors.Is(err, models.ErrNotFound):
		h.Renderer.NotFound(w, r)
	case errors.Is(err, models.ErrInvalidForm):
		h.Renderer.Logger.Warn("API", fmt.Sprintf("update venue %d: %v", id, err))
		h.Renderer.AddFlash(r, "An error occurred. Venue "+form.Name+" could not be updated.")
		h.Renderer.Render(w, r, http.StatusBadRequest, web.FormEditVenue, web.FormView{
			Action: fmt.Sprintf("/venues/%d/edit", id),
			ID:     id,
			Form:   form,
		})
	default:
		h.Renderer.ServerError(w, r, err)
	}
}

// VenueQRCode serves a PNG QR code that links to the venue page.
func (h *Handler) VenueQRCode(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(r)
	if !ok {
		h.Renderer.NotFound(w, r)
		return
	}
	if _, err := h.VenueService.Get(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			h.Renderer.NotFound(w, r)
			return
		}
		h.Renderer.ServerError(w, r, err)
		return
	}

	png, err := qrcode.Encode(fmt.Sprintf("%s/venues/%d", h.BaseURL, id), qrcode.Medium, qrSize)
	if err != nil {
		h.Renderer.ServerError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
