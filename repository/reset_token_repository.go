// Package repository — PasswordResetRepository interface tanımı.
package repository

import (
	"context"

	"github.com/seline/velora/models"
)

// PasswordResetRepository, şifre sıfırlama token'ları için interface.
type PasswordResetRepository interface {
	// Create, yeni bir reset token kaydı oluşturur.
	Create(ctx context.Context, token *models.PasswordResetToken) error

	// GetByTokenHash, SHA256 hash'e göre token kaydını bulur.
	// Bulunamazsa pkg.ErrNotFound döner.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.PasswordResetToken, error)

	// MarkUsed, token'ı kullanılmış olarak işaretler (tek kullanımlık).
	MarkUsed(ctx context.Context, id string) error

	// DeleteByAdminID, bir admin'in TÜM reset token'larını siler.
	// Yeni token oluşturmadan önce eskileri temizlemek için.
	DeleteByAdminID(ctx context.Context, adminID string) error

	// DeleteExpired, süresi dolmuş token'ları temizler. Her reset
	// isteğinde fırsat temizliği olarak çağrılır — cron job gerekmez.
	DeleteExpired(ctx context.Context) error
}
