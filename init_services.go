// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
package main

import (
	"log"

	"github.com/seline/velora/config"
	"github.com/seline/velora/pkg/crypto"
	"github.com/seline/velora/pkg/email"
	"github.com/seline/velora/pkg/passhash"
	"github.com/seline/velora/services"
	"github.com/seline/velora/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth      services.AuthService
	Treatment services.TreatmentService
	Gallery   services.GalleryService
	Banner    services.BannerService
	Booking   services.BookingService
	Contact   services.ContactService
	Business  services.BusinessService
	Upload    services.UploadService
	Stats     services.StatsService
}

// initServices, tüm service'leri oluşturur ve birbirine bağlar.
//
// mailer seçimi: RESEND_API_KEY tanımlıysa gerçek Resend client,
// değilse log'a yazan development fallback kullanılır — lokal ortamda
// API key zorunlu olmasın diye.
func initServices(cfg *config.Config, repos *Repositories, hub *ws.Hub) (*Services, error) {
	var mailer email.Sender
	if cfg.Email.ResendAPIKey != "" {
		mailer = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
	} else {
		log.Println("[main] RESEND_API_KEY not set, emails will be logged instead of sent")
		mailer = email.NewLogSender()
	}

	// Rezervasyonlardaki müşteri telefonları DB'de AES-256-GCM ile şifrelenir.
	encryptionKey, err := crypto.DeriveKey(cfg.Security.EncryptionKey)
	if err != nil {
		return nil, err
	}

	hasher := passhash.New(passhash.DefaultParams())

	uploadService, err := services.NewUploadService(cfg.Upload.Dir, cfg.Upload.MaxSize)
	if err != nil {
		return nil, err
	}

	return &Services{
		Auth: services.NewAuthService(
			repos.Admin,
			repos.Session,
			repos.ResetToken,
			hasher,
			mailer,
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessTokenExpiry,
			cfg.JWT.RefreshTokenExpiry,
		),
		Treatment: services.NewTreatmentService(repos.Treatment),
		Gallery:   services.NewGalleryService(repos.Gallery, cfg.Upload.Dir),
		Banner:    services.NewBannerService(repos.Banner),
		Booking:   services.NewBookingService(repos.Booking, repos.Treatment, hub, mailer, encryptionKey),
		Contact:   services.NewContactService(repos.Contact, hub, mailer, cfg.Email.SalonEmail),
		Business:  services.NewBusinessService(repos.Business),
		Upload:    uploadService,
		Stats:     services.NewStatsService(repos.Booking, repos.Contact, repos.Treatment, repos.Gallery),
	}, nil
}
