package repository

import (
	"context"

	"github.com/seline/velora/models"
)

// TreatmentRepository, salon hizmetleri için interface.
type TreatmentRepository interface {
	Create(ctx context.Context, t *models.Treatment) error
	GetByID(ctx context.Context, id string) (*models.Treatment, error)
	// GetAll, tüm hizmetleri döner (admin panel — pasifler dahil).
	GetAll(ctx context.Context) ([]models.Treatment, error)
	// GetActive, sadece aktif hizmetleri sort_order sırasıyla döner (public site).
	GetActive(ctx context.Context) ([]models.Treatment, error)
	Update(ctx context.Context, t *models.Treatment) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
