package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/pkg/ratelimit"
	"github.com/seline/velora/services"
)

// ContactHandler, iletişim formu endpoint'leri.
// Create public form'dur, diğerleri admin panel gelen kutusu.
type ContactHandler struct {
	service services.ContactService
	limiter *ratelimit.SubmissionLimiter
}

func NewContactHandler(service services.ContactService, limiter *ratelimit.SubmissionLimiter) *ContactHandler {
	return &ContactHandler{service: service, limiter: limiter}
}

// Create godoc
// POST /api/contact — public.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.limiter != nil && !h.limiter.Allow(ip) {
		tooManyRequests(w, h.limiter.RetryAfterSeconds(ip), "too many messages")
		return
	}

	var req models.CreateContactMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.service.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, msg)
}

// GetAll godoc
// GET /api/admin/contact?unread=true
func (h *ContactHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"

	messages, err := h.service.GetAll(r.Context(), unreadOnly)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, messages)
}

// MarkRead godoc
// PATCH /api/admin/contact/{id}/read
func (h *ContactHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	msg, err := h.service.MarkRead(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, msg)
}

// Delete godoc
// DELETE /api/admin/contact/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}
