package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/services"
)

// TreatmentHandler, hizmet kataloğu endpoint'lerini yöneten struct.
type TreatmentHandler struct {
	service services.TreatmentService
}

// NewTreatmentHandler, constructor.
func NewTreatmentHandler(service services.TreatmentService) *TreatmentHandler {
	return &TreatmentHandler{service: service}
}

// GetActive godoc
// GET /api/treatments — public, sadece aktif hizmetler.
func (h *TreatmentHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.service.GetActive(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, treatments)
}

// GetAll godoc
// GET /api/admin/treatments — pasifler dahil tüm hizmetler.
func (h *TreatmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.service.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, treatments)
}

// Create godoc
// POST /api/admin/treatments
func (h *TreatmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	treatment, err := h.service.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, treatment)
}

// Update godoc
// PATCH /api/admin/treatments/{id}
func (h *TreatmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	// r.PathValue — Go 1.22+ path parameter desteği.
	id := r.PathValue("id")

	var req models.UpdateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	treatment, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, treatment)
}

// Delete godoc
// DELETE /api/admin/treatments/{id}
func (h *TreatmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "treatment deleted"})
}
