package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/pkg/ratelimit"
	"github.com/seline/velora/repository"
	"github.com/seline/velora/services"
)

// BookingHandler, randevu endpoint'lerini yöneten struct.
//
// Create public'tir (müşteri sitesi), geri kalanı admin panel.
// Public form SubmissionLimiter ile korunur — bot randevu spam'i
// dakikalar içinde sınırlanır.
type BookingHandler struct {
	service services.BookingService
	limiter *ratelimit.SubmissionLimiter
}

// NewBookingHandler, constructor. limiter nil ise koruma devre dışı.
func NewBookingHandler(service services.BookingService, limiter *ratelimit.SubmissionLimiter) *BookingHandler {
	return &BookingHandler{service: service, limiter: limiter}
}

// Create godoc
// POST /api/bookings — public.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.limiter != nil && !h.limiter.Allow(ip) {
		tooManyRequests(w, h.limiter.RetryAfterSeconds(ip), "too many booking requests")
		return
	}

	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.service.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, booking)
}

// GetAll godoc
// GET /api/admin/bookings?status=pending&from=2026-09-01T00:00:00Z&to=...
// Tüm query parametreleri opsiyonel.
func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	filter := repository.BookingFilter{
		Status: models.BookingStatus(r.URL.Query().Get("status")),
	}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid from parameter, use RFC3339")
			return
		}
		filter.From = from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid to parameter, use RFC3339")
			return
		}
		filter.To = to
	}

	bookings, err := h.service.GetAll(r.Context(), filter)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, bookings)
}

// GetByID godoc
// GET /api/admin/bookings/{id}
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, booking)
}

// UpdateStatus godoc
// PATCH /api/admin/bookings/{id}/status
// Body: { "status": "confirmed" }
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, booking)
}

// Delete godoc
// DELETE /api/admin/bookings/{id}
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "booking deleted"})
}
