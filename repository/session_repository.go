package repository

import (
	"context"

	"github.com/seline/velora/models"
)

// SessionRepository, refresh token oturumları için interface.
//
// Admin başına tek satır vardır — Upsert yeni login/refresh'te mevcut
// satırın üzerine yazar, böylece eski refresh token kalıcı olarak
// geçersizleşir (rotation).
type SessionRepository interface {
	// Upsert, admin'in oturum satırını oluşturur veya üzerine yazar.
	Upsert(ctx context.Context, session *models.Session) error

	// GetByAdminID, admin'in aktif oturumunu döner.
	// Oturum yoksa pkg.ErrNotFound döner.
	GetByAdminID(ctx context.Context, adminID string) (*models.Session, error)

	// DeleteByAdminID, admin'in oturumunu siler (logout).
	// Oturum zaten yoksa hata DÖNMEZ — logout idempotent'tir.
	DeleteByAdminID(ctx context.Context, adminID string) error

	// DeleteExpired, süresi dolmuş oturumları temizler.
	DeleteExpired(ctx context.Context) error
}
