// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: veritabanı işlemlerini (CRUD) soyutlayan tasarım
// kalıbı. Service katmanı doğrudan SQL yazmaz — repository interface'i
// üzerinden çalışır.
//
// Neden interface?
// 1. Test: mock repository ile DB olmadan test edilebilir
// 2. Esneklik: SQLite'tan PostgreSQL'e geçiş sadece yeni implementasyon ister
// 3. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
//
// Go'da interface implicit'tir — struct tüm method'ları implement ediyorsa
// otomatik olarak interface'i sağlar.
package repository

import (
	"context"

	"github.com/seline/velora/models"
)

// AdminRepository, admin hesabı veritabanı işlemleri için interface.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	// GetByEmail, email'e göre admin bulur (case-insensitive, kolon NOCASE).
	// Bulunamazsa pkg.ErrNotFound döner.
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	// UpdatePassword, admin'in şifre hash'ini günceller.
	// ChangePassword ve ResetPassword tarafından çağrılır — argon2id hash alır.
	UpdatePassword(ctx context.Context, adminID, newPasswordHash string) error
	Count(ctx context.Context) (int, error)
}
