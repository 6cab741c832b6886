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

// sqliteTreatmentRepo, TreatmentRepository'nin SQLite implementasyonu.
type sqliteTreatmentRepo struct {
	db database.TxQuerier
}

// NewSQLiteTreatmentRepo, constructor.
func NewSQLiteTreatmentRepo(db database.TxQuerier) TreatmentRepository {
	return &sqliteTreatmentRepo{db: db}
}

func (r *sqliteTreatmentRepo) Create(ctx context.Context, t *models.Treatment) error {
	query := `
		INSERT INTO treatments (id, name, description, category, price_cents, duration_minutes, image_url, is_active, sort_order)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Description, t.Category,
		t.PriceCents, t.DurationMinutes, t.ImageURL,
		t.IsActive, t.SortOrder,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create treatment: %w", err)
	}

	return nil
}

func (r *sqliteTreatmentRepo) GetByID(ctx context.Context, id string) (*models.Treatment, error) {
	query := `
		SELECT id, name, description, category, price_cents, duration_minutes, image_url, is_active, sort_order, created_at, updated_at
		FROM treatments WHERE id = ?`

	t := &models.Treatment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Description, &t.Category,
		&t.PriceCents, &t.DurationMinutes, &t.ImageURL,
		&t.IsActive, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}

	return t, nil
}

func (r *sqliteTreatmentRepo) GetAll(ctx context.Context) ([]models.Treatment, error) {
	query := `
		SELECT id, name, description, category, price_cents, duration_minutes, image_url, is_active, sort_order, created_at, updated_at
		FROM treatments ORDER BY sort_order, name`

	return r.queryTreatments(ctx, query)
}

func (r *sqliteTreatmentRepo) GetActive(ctx context.Context) ([]models.Treatment, error) {
	query := `
		SELECT id, name, description, category, price_cents, duration_minutes, image_url, is_active, sort_order, created_at, updated_at
		FROM treatments WHERE is_active = 1 ORDER BY sort_order, name`

	return r.queryTreatments(ctx, query)
}

func (r *sqliteTreatmentRepo) queryTreatments(ctx context.Context, query string, args ...any) ([]models.Treatment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query treatments: %w", err)
	}
	defer rows.Close()

	// Boş slice ile başla — hiç satır yoksa JSON'da null yerine [] döner.
	treatments := []models.Treatment{}
	for rows.Next() {
		var t models.Treatment
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Description, &t.Category,
			&t.PriceCents, &t.DurationMinutes, &t.ImageURL,
			&t.IsActive, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan treatment: %w", err)
		}
		treatments = append(treatments, t)
	}

	return treatments, rows.Err()
}

func (r *sqliteTreatmentRepo) Update(ctx context.Context, t *models.Treatment) error {
	query := `
		UPDATE treatments SET
			name = ?, description = ?, category = ?, price_cents = ?,
			duration_minutes = ?, image_url = ?, is_active = ?, sort_order = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.Description, t.Category, t.PriceCents,
		t.DurationMinutes, t.ImageURL, t.IsActive, t.SortOrder,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update treatment: %w", err)
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

func (r *sqliteTreatmentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete treatment: %w", err)
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

func (r *sqliteTreatmentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM treatments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count treatments: %w", err)
	}
	return count, nil
}
