package repository

import (
	"context"

	"github.com/seline/velora/models"
)

// BannerRepository, ana sayfa banner'ları için interface.
type BannerRepository interface {
	Create(ctx context.Context, b *models.Banner) error
	GetByID(ctx context.Context, id string) (*models.Banner, error)
	// GetAll, tüm banner'ları döner (admin panel).
	GetAll(ctx context.Context) ([]models.Banner, error)
	// GetVisible, aktif VE zaman penceresi içindeki banner'ları döner (public).
	GetVisible(ctx context.Context) ([]models.Banner, error)
	Update(ctx context.Context, b *models.Banner) error
	Delete(ctx context.Context, id string) error
}
