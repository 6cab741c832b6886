package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/services"
)

// BusinessHandler, salon bilgisi endpoint'leri (adres, telefon, çalışma saatleri).
type BusinessHandler struct {
	service services.BusinessService
}

func NewBusinessHandler(service services.BusinessService) *BusinessHandler {
	return &BusinessHandler{service: service}
}

// Get godoc
// GET /api/business — public, cache arkasından döner.
func (h *BusinessHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Get(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, info)
}

// Update godoc
// PUT /api/admin/business
func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBusinessInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info, err := h.service.Update(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, info)
}
