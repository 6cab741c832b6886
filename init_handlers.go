// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"time"

	"github.com/seline/velora/handlers"
	"github.com/seline/velora/pkg/ratelimit"
	"github.com/seline/velora/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Treatment *handlers.TreatmentHandler
	Gallery   *handlers.GalleryHandler
	Banner    *handlers.BannerHandler
	Booking   *handlers.BookingHandler
	Contact   *handlers.ContactHandler
	Business  *handlers.BusinessHandler
	Stats     *handlers.StatsHandler
	Upload    *handlers.UploadHandler
	WS        *ws.Handler
}

// initHandlers, handler'ları ve public endpoint rate limiter'larını oluşturur.
//
// Limit değerleri endpoint'in istismar profiline göre seçildi:
//   - register: IP başına saatte 3 — hesap şişirme pahalı olsun
//   - login: IP başına 15 dakikada 5 — brute-force'u anlamsızlaştırır
//   - booking/contact: kısa pencerede birkaç gönderim + cooldown —
//     formlar bot hedefidir ama gerçek müşteri de arka arkaya deneyebilir
func initHandlers(svcs *Services, hub *ws.Hub) *Handlers {
	loginLimiter := ratelimit.New(5, 15*time.Minute)
	registerLimiter := ratelimit.New(3, time.Hour)
	bookingLimiter := ratelimit.NewSubmissionLimiter(3, 10*time.Minute, 30*time.Second)
	contactLimiter := ratelimit.NewSubmissionLimiter(3, 10*time.Minute, 30*time.Second)

	return &Handlers{
		Auth:      handlers.NewAuthHandler(svcs.Auth, loginLimiter, registerLimiter),
		Treatment: handlers.NewTreatmentHandler(svcs.Treatment),
		Gallery:   handlers.NewGalleryHandler(svcs.Gallery),
		Banner:    handlers.NewBannerHandler(svcs.Banner),
		Booking:   handlers.NewBookingHandler(svcs.Booking, bookingLimiter),
		Contact:   handlers.NewContactHandler(svcs.Contact, contactLimiter),
		Business:  handlers.NewBusinessHandler(svcs.Business),
		Stats:     handlers.NewStatsHandler(svcs.Stats),
		Upload:    handlers.NewUploadHandler(svcs.Upload),
		WS:        ws.NewHandler(hub, svcs.Auth),
	}
}
