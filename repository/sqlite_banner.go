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

// sqliteBannerRepo, BannerRepository'nin SQLite implementasyonu.
type sqliteBannerRepo struct {
	db database.TxQuerier
}

// NewSQLiteBannerRepo, constructor.
func NewSQLiteBannerRepo(db database.TxQuerier) BannerRepository {
	return &sqliteBannerRepo{db: db}
}

func (r *sqliteBannerRepo) Create(ctx context.Context, b *models.Banner) error {
	query := `
		INSERT INTO banners (id, title, subtitle, image_url, link_url, is_active, sort_order, starts_at, ends_at)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		b.Title, b.Subtitle, b.ImageURL, b.LinkURL,
		b.IsActive, b.SortOrder, b.StartsAt, b.EndsAt,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}

	return nil
}

func (r *sqliteBannerRepo) GetByID(ctx context.Context, id string) (*models.Banner, error) {
	query := `
		SELECT id, title, subtitle, image_url, link_url, is_active, sort_order, starts_at, ends_at, created_at, updated_at
		FROM banners WHERE id = ?`

	b := &models.Banner{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL,
		&b.IsActive, &b.SortOrder, &b.StartsAt, &b.EndsAt,
		&b.CreatedAt, &b.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}

	return b, nil
}

func (r *sqliteBannerRepo) GetAll(ctx context.Context) ([]models.Banner, error) {
	query := `
		SELECT id, title, subtitle, image_url, link_url, is_active, sort_order, starts_at, ends_at, created_at, updated_at
		FROM banners ORDER BY sort_order, created_at DESC`

	return r.queryBanners(ctx, query)
}

func (r *sqliteBannerRepo) GetVisible(ctx context.Context) ([]models.Banner, error) {
	// starts_at/ends_at NULL ise zaman kısıtı yok sayılır.
	query := `
		SELECT id, title, subtitle, image_url, link_url, is_active, sort_order, starts_at, ends_at, created_at, updated_at
		FROM banners
		WHERE is_active = 1
		  AND (starts_at IS NULL OR starts_at <= CURRENT_TIMESTAMP)
		  AND (ends_at IS NULL OR ends_at >= CURRENT_TIMESTAMP)
		ORDER BY sort_order`

	return r.queryBanners(ctx, query)
}

func (r *sqliteBannerRepo) queryBanners(ctx context.Context, query string, args ...any) ([]models.Banner, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query banners: %w", err)
	}
	defer rows.Close()

	banners := []models.Banner{}
	for rows.Next() {
		var b models.Banner
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Subtitle, &b.ImageURL, &b.LinkURL,
			&b.IsActive, &b.SortOrder, &b.StartsAt, &b.EndsAt,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, b)
	}

	return banners, rows.Err()
}

func (r *sqliteBannerRepo) Update(ctx context.Context, b *models.Banner) error {
	query := `
		UPDATE banners SET
			title = ?, subtitle = ?, image_url = ?, link_url = ?,
			is_active = ?, sort_order = ?, starts_at = ?, ends_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		b.Title, b.Subtitle, b.ImageURL, b.LinkURL,
		b.IsActive, b.SortOrder, b.StartsAt, b.EndsAt,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteBannerRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
