// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi ince (thin) olmalı:
// 1. Request body'yi parse et (JSON → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı içermez, ASLA doğrudan DB'ye erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/pkg/ratelimit"
	"github.com/seline/velora/services"
)

// AuthHandler, auth endpoint'lerini yöneten struct.
// Service interface'i ve rate limiter'lar constructor'dan alınır (DI).
type AuthHandler struct {
	authService     services.AuthService
	loginLimiter    *ratelimit.Limiter
	registerLimiter *ratelimit.Limiter
}

// NewAuthHandler, constructor.
// Limiter'lar nil ise rate limiting devre dışı kalır (testlerde kullanışlı).
func NewAuthHandler(
	authService services.AuthService,
	loginLimiter *ratelimit.Limiter,
	registerLimiter *ratelimit.Limiter,
) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		loginLimiter:    loginLimiter,
		registerLimiter: registerLimiter,
	}
}

// Register godoc
// POST /api/auth/register
//
// Rate limit: IP başına saatte 3 kayıt — otomasyonla hesap şişirme engellenir.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.registerLimiter != nil && !h.registerLimiter.Allow(ip) {
		tooManyRequests(w, h.registerLimiter.RetryAfterSeconds(ip), "too many registration attempts")
		return
	}

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, tokens)
}

// Login godoc
// POST /api/auth/login
//
// Rate limit: IP başına 15 dakikada 5 deneme — brute-force koruması.
// Başarılı login sayacı sıfırlar; meşru admin bloke olmaz.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		tooManyRequests(w, h.loginLimiter.RetryAfterSeconds(ip), "too many login attempts")
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	pkg.JSON(w, http.StatusOK, tokens)
}

// Refresh godoc
// POST /api/auth/refresh
// Header: Authorization: Bearer <refresh_token>
//
// Refresh token body'de değil Authorization header'ında taşınır — client
// tarafında tek tip "bearer" akışı olur ve token URL/form loglarına düşmez.
// Dönen çift YENİ'dir; sunulan refresh token bu çağrıyla ölür.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, tokens)
}

// Logout godoc
// POST /api/auth/logout
// Auth middleware gerektirir — oturum, access token'daki admin'e göre silinir.
// İkinci kez çağrılması da 200 döner (idempotent).
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	admin, ok := r.Context().Value(AdminContextKey).(*models.Admin)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "admin not found in context")
		return
	}

	if err := h.authService.Logout(r.Context(), admin.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me godoc
// GET /api/auth/me
// Auth middleware gerektirir.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, ok := r.Context().Value(AdminContextKey).(*models.Admin)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "admin not found in context")
		return
	}

	pkg.JSON(w, http.StatusOK, admin)
}

// ChangePassword godoc
// POST /api/auth/change-password
// Body: { "current_password": "...", "new_password": "..." }
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	admin, ok := r.Context().Value(AdminContextKey).(*models.Admin)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "admin not found in context")
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(r.Context(), admin.ID, &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}

// ForgotPassword godoc
// POST /api/auth/forgot-password
// Body: { "email": "..." }
//
// Email kayıtlı olsa da olmasa da AYNI yanıt döner (enumeration koruması).
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": "if the email exists, a reset link has been sent",
	})
}

// ResetPassword godoc
// POST /api/auth/reset-password
// Body: { "token": "...", "new_password": "..." }
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ResetPassword(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{
		"message": "password has been reset successfully",
	})
}

// bearerToken, Authorization header'ından "Bearer <token>" değerini çıkarır.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}

// tooManyRequests, 429 yanıtı + Retry-After header'ı döner.
func tooManyRequests(w http.ResponseWriter, retryAfter int, message string) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
	pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
		fmt.Sprintf("%s, please try again in %s", message, ratelimit.FormatRetryMessage(retryAfter)))
}

// AdminContextKey, context'te admin bilgisi taşımak için kullanılan key.
//
// context.Value() any tip kabul eder — string key çakışmaya neden olabilir.
// Özel bir tip namespace collision'ı önler.
type contextKey string

const AdminContextKey contextKey = "admin"
