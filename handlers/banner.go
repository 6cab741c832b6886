package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/services"
)

// BannerHandler, banner endpoint'lerini yöneten struct.
type BannerHandler struct {
	service services.BannerService
}

// NewBannerHandler, constructor.
func NewBannerHandler(service services.BannerService) *BannerHandler {
	return &BannerHandler{service: service}
}

// GetVisible godoc
// GET /api/banners — public, aktif ve süresi geçerli banner'lar.
func (h *BannerHandler) GetVisible(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.GetVisible(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, banners)
}

// GetAll godoc
// GET /api/admin/banners
func (h *BannerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, banners)
}

// Create godoc
// POST /api/admin/banners
func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	banner, err := h.service.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, banner)
}

// Update godoc
// PATCH /api/admin/banners/{id}
func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.UpdateBannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	banner, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, banner)
}

// Delete godoc
// DELETE /api/admin/banners/{id}
func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "banner deleted"})
}
