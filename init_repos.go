// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository bir SQL.DB bağlantısı alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/seline/velora/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı değişkenler yerine tek struct kullanmak fonksiyon
// imzalarını temiz tutar; yeni bir repository eklendiğinde sadece bu struct
// ve initRepositories güncellenir.
type Repositories struct {
	Admin      repository.AdminRepository
	Session    repository.SessionRepository
	ResetToken repository.PasswordResetRepository
	Treatment  repository.TreatmentRepository
	Gallery    repository.GalleryRepository
	Banner     repository.BannerRepository
	Booking    repository.BookingRepository
	Contact    repository.ContactRepository
	Business   repository.BusinessRepository
}

// initRepositories, tüm repository'leri DB bağlantısı ile oluşturur.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		Admin:      repository.NewSQLiteAdminRepo(conn),
		Session:    repository.NewSQLiteSessionRepo(conn),
		ResetToken: repository.NewSQLiteResetTokenRepo(conn),
		Treatment:  repository.NewSQLiteTreatmentRepo(conn),
		Gallery:    repository.NewSQLiteGalleryRepo(conn),
		Banner:     repository.NewSQLiteBannerRepo(conn),
		Booking:    repository.NewSQLiteBookingRepo(conn),
		Contact:    repository.NewSQLiteContactRepo(conn),
		Business:   repository.NewSQLiteBusinessRepo(conn),
	}
}
