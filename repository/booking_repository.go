package repository

import (
	"context"
	"time"

	"github.com/seline/velora/models"
)

// BookingFilter, randevu listeleme filtreleri. Zero value = filtre yok.
type BookingFilter struct {
	Status models.BookingStatus
	From   time.Time
	To     time.Time
}

// BookingRepository, müşteri randevuları için interface.
//
// customer_phone kolonu şifreli saklanır — repository şifreleme BİLMEZ,
// verilen string'i olduğu gibi yazar/okur. Şifreleme service katmanında.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetAll, filtreye uyan randevuları slot zamanına göre döner.
	GetAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	Delete(ctx context.Context, id string) error
	// CountByStatus, dashboard istatistiği için durum bazında sayar.
	CountByStatus(ctx context.Context, status models.BookingStatus) (int, error)
	// CountUpcoming, şu andan sonraki confirmed randevuları sayar.
	CountUpcoming(ctx context.Context) (int, error)
	// HasConflict, verilen slot çevresinde çakışan aktif randevu var mı
	// kontrol eder (pending/confirmed, ± süre penceresi).
	HasConflict(ctx context.Context, slotAt time.Time, window time.Duration) (bool, error)
}
