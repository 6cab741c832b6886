package repository

import (
	"context"

	"github.com/seline/velora/models"
)

// GalleryRepository, galeri görselleri için interface.
type GalleryRepository interface {
	Create(ctx context.Context, item *models.GalleryItem) error
	GetByID(ctx context.Context, id string) (*models.GalleryItem, error)
	// GetAll, görselleri sort_order sonra yeniden-eskiye sırayla döner.
	// category boş değilse filtre uygulanır.
	GetAll(ctx context.Context, category string) ([]models.GalleryItem, error)
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
