package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/services"
)

// GalleryHandler, galeri endpoint'lerini yöneten struct.
type GalleryHandler struct {
	service services.GalleryService
}

// NewGalleryHandler, constructor.
func NewGalleryHandler(service services.GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// GetAll godoc
// GET /api/gallery?category=nail-art — public. category opsiyonel filtre.
func (h *GalleryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	items, err := h.service.GetAll(r.Context(), category)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, items)
}

// Create godoc
// POST /api/admin/gallery
func (h *GalleryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGalleryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, item)
}

// Update godoc
// PATCH /api/admin/gallery/{id}
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.UpdateGalleryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, item)
}

// Delete godoc
// DELETE /api/admin/gallery/{id}
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "gallery item deleted"})
}
