package repository

import (
	"context"

	"github.com/seline/velora/models"
)

// BusinessRepository, singleton işletme bilgisi için interface.
// Satır migration'da seed edilir — Create yok, sadece Get ve Update.
type BusinessRepository interface {
	Get(ctx context.Context) (*models.BusinessInfo, error)
	Update(ctx context.Context, info *models.BusinessInfo) error
}
