// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
//
// Endpoint'ler iki gruba ayrılır:
//   - Public: müşteri sitesinin kullandığı okuma endpoint'leri + form
//     gönderimleri + auth akışı. Token gerekmez.
//   - Admin: /api/admin/* altındaki panel endpoint'leri. Hepsi
//     authMiddleware.Require ile sarılır — geçerli access token ister.
package main

import (
	"net/http"
	"strings"

	"github.com/seline/velora/middleware"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authMW *middleware.AuthMiddleware,
	uploadDir string,
) {
	// auth, admin endpoint'lerini access token doğrulamasıyla sarar.
	auth := func(fn http.HandlerFunc) http.Handler {
		return authMW.Require(fn)
	}

	// ── Auth ──
	// register/login/refresh/forgot/reset token GEREKTIRMEZ.
	// refresh, Authorization header'ında refresh token bekler — burada
	// access token doğrulaması yapılmaz, handler token'ı kendisi çözer.
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", h.Auth.ResetPassword)
	mux.Handle("POST /api/auth/logout", auth(h.Auth.Logout))
	mux.Handle("GET /api/auth/me", auth(h.Auth.Me))
	mux.Handle("POST /api/auth/change-password", auth(h.Auth.ChangePassword))

	// ── Public site ──
	mux.HandleFunc("GET /api/treatments", h.Treatment.GetActive)
	mux.HandleFunc("GET /api/gallery", h.Gallery.GetAll)
	mux.HandleFunc("GET /api/banners", h.Banner.GetVisible)
	mux.HandleFunc("GET /api/business", h.Business.Get)
	mux.HandleFunc("POST /api/bookings", h.Booking.Create)
	mux.HandleFunc("POST /api/contact", h.Contact.Create)

	// ── Admin panel ──
	mux.Handle("GET /api/admin/treatments", auth(h.Treatment.GetAll))
	mux.Handle("POST /api/admin/treatments", auth(h.Treatment.Create))
	mux.Handle("PATCH /api/admin/treatments/{id}", auth(h.Treatment.Update))
	mux.Handle("DELETE /api/admin/treatments/{id}", auth(h.Treatment.Delete))

	mux.Handle("POST /api/admin/gallery", auth(h.Gallery.Create))
	mux.Handle("PATCH /api/admin/gallery/{id}", auth(h.Gallery.Update))
	mux.Handle("DELETE /api/admin/gallery/{id}", auth(h.Gallery.Delete))

	mux.Handle("GET /api/admin/banners", auth(h.Banner.GetAll))
	mux.Handle("POST /api/admin/banners", auth(h.Banner.Create))
	mux.Handle("PATCH /api/admin/banners/{id}", auth(h.Banner.Update))
	mux.Handle("DELETE /api/admin/banners/{id}", auth(h.Banner.Delete))

	mux.Handle("GET /api/admin/bookings", auth(h.Booking.GetAll))
	mux.Handle("GET /api/admin/bookings/{id}", auth(h.Booking.GetByID))
	mux.Handle("PATCH /api/admin/bookings/{id}/status", auth(h.Booking.UpdateStatus))
	mux.Handle("DELETE /api/admin/bookings/{id}", auth(h.Booking.Delete))

	mux.Handle("GET /api/admin/contact", auth(h.Contact.GetAll))
	mux.Handle("PATCH /api/admin/contact/{id}/read", auth(h.Contact.MarkRead))
	mux.Handle("DELETE /api/admin/contact/{id}", auth(h.Contact.Delete))

	mux.Handle("PUT /api/admin/business", auth(h.Business.Update))
	mux.Handle("GET /api/admin/stats", auth(h.Stats.GetDashboard))
	mux.Handle("POST /api/admin/uploads", auth(h.Upload.Upload))

	// ── Static file serving — yüklenen görseller ──
	//
	// http.StripPrefix URL'den "/api/uploads/" kısmını çıkarır,
	// http.FileServer kalan path'i upload dizininde arar.
	// Sadece düz dosya isimleri kabul edilir — subdirectory yok,
	// path traversal denemeleri 404 alır.
	uploadsHandler := http.StripPrefix("/api/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(uploadDir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /api/uploads/", uploadsHandler)

	// ── WebSocket — admin dashboard canlı güncellemeleri ──
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header
	// gönderemez. Bu yüzden access token URL query parameter olarak
	// gönderilir: ws://server/api/admin/ws?token=JWT
	// WS handler kendi içinde token doğrulaması yapar.
	mux.HandleFunc("GET /api/admin/ws", h.WS.HandleConnection)
}
