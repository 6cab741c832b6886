package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seline/velora/database"
	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
)

// sqliteBusinessRepo, BusinessRepository'nin SQLite implementasyonu.
type sqliteBusinessRepo struct {
	db database.TxQuerier
}

// NewSQLiteBusinessRepo, constructor.
func NewSQLiteBusinessRepo(db database.TxQuerier) BusinessRepository {
	return &sqliteBusinessRepo{db: db}
}

func (r *sqliteBusinessRepo) Get(ctx context.Context) (*models.BusinessInfo, error) {
	query := `
		SELECT name, address, phone, email, instagram, opening_hours, about, updated_at
		FROM business_info WHERE id = 1`

	info := &models.BusinessInfo{}
	var rawHours string
	err := r.db.QueryRowContext(ctx, query).Scan(
		&info.Name, &info.Address, &info.Phone, &info.Email,
		&info.Instagram, &rawHours, &info.About, &info.UpdatedAt,
	)

	// Satır migration'da seed edilir — yokluğu kurulum hatasıdır.
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get business info: %w", err)
	}

	info.OpeningHours, err = models.UnmarshalOpeningHours(rawHours)
	if err != nil {
		return nil, err
	}

	return info, nil
}

func (r *sqliteBusinessRepo) Update(ctx context.Context, info *models.BusinessInfo) error {
	rawHours, err := models.MarshalOpeningHours(info.OpeningHours)
	if err != nil {
		return err
	}

	query := `
		UPDATE business_info SET
			name = ?, address = ?, phone = ?, email = ?,
			instagram = ?, opening_hours = ?, about = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
		RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query,
		info.Name, info.Address, info.Phone, info.Email,
		info.Instagram, rawHours, info.About,
	).Scan(&info.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return pkg.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update business info: %w", err)
	}

	return nil
}
