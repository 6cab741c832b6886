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

// sqliteGalleryRepo, GalleryRepository'nin SQLite implementasyonu.
type sqliteGalleryRepo struct {
	db database.TxQuerier
}

// NewSQLiteGalleryRepo, constructor.
func NewSQLiteGalleryRepo(db database.TxQuerier) GalleryRepository {
	return &sqliteGalleryRepo{db: db}
}

func (r *sqliteGalleryRepo) Create(ctx context.Context, item *models.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (id, image_url, caption, category, sort_order)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		item.ImageURL, item.Caption, item.Category, item.SortOrder,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create gallery item: %w", err)
	}

	return nil
}

func (r *sqliteGalleryRepo) GetByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	query := `
		SELECT id, image_url, caption, category, sort_order, created_at
		FROM gallery_items WHERE id = ?`

	item := &models.GalleryItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.ImageURL, &item.Caption,
		&item.Category, &item.SortOrder, &item.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery item: %w", err)
	}

	return item, nil
}

func (r *sqliteGalleryRepo) GetAll(ctx context.Context, category string) ([]models.GalleryItem, error) {
	query := `
		SELECT id, image_url, caption, category, sort_order, created_at
		FROM gallery_items`
	var args []any

	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY sort_order, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query gallery items: %w", err)
	}
	defer rows.Close()

	items := []models.GalleryItem{}
	for rows.Next() {
		var item models.GalleryItem
		if err := rows.Scan(
			&item.ID, &item.ImageURL, &item.Caption,
			&item.Category, &item.SortOrder, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan gallery item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *sqliteGalleryRepo) Update(ctx context.Context, item *models.GalleryItem) error {
	query := `
		UPDATE gallery_items SET caption = ?, category = ?, sort_order = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		item.Caption, item.Category, item.SortOrder, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update gallery item: %w", err)
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

func (r *sqliteGalleryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item: %w", err)
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

func (r *sqliteGalleryRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gallery_items`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count gallery items: %w", err)
	}
	return count, nil
}
