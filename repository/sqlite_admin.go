package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/seline/velora/database"
	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
)

// sqliteAdminRepo, AdminRepository interface'inin SQLite implementasyonu.
//
// db field'ı database.TxQuerier — hem *sql.DB hem *sql.Tx geçilebilir,
// aynı repository transaction içinde de kullanılır.
type sqliteAdminRepo struct {
	db database.TxQuerier
}

// NewSQLiteAdminRepo, constructor. Interface döner — Dependency Inversion.
func NewSQLiteAdminRepo(db database.TxQuerier) AdminRepository {
	return &sqliteAdminRepo{db: db}
}

func (r *sqliteAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, email, name, password_hash)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, is_active, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		admin.Email,
		admin.Name,
		admin.PasswordHash,
	).Scan(&admin.ID, &admin.IsActive, &admin.CreatedAt, &admin.UpdatedAt)

	if err != nil {
		// UNIQUE constraint violation → email zaten kayıtlı
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (r *sqliteAdminRepo) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	query := `
		SELECT id, email, name, password_hash, is_active, created_at, updated_at
		FROM admins WHERE id = ?`

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash,
		&admin.IsActive, &admin.CreatedAt, &admin.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by id: %w", err)
	}

	return admin, nil
}

func (r *sqliteAdminRepo) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, email, name, password_hash, is_active, created_at, updated_at
		FROM admins WHERE email = ?`

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash,
		&admin.IsActive, &admin.CreatedAt, &admin.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return admin, nil
}

func (r *sqliteAdminRepo) UpdatePassword(ctx context.Context, adminID, newPasswordHash string) error {
	query := `
		UPDATE admins SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, newPasswordHash, adminID)
	if err != nil {
		return fmt.Errorf("failed to update admin password: %w", err)
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

func (r *sqliteAdminRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

// isUniqueViolation, hatanın UNIQUE constraint ihlali olup olmadığını
// kontrol eder. modernc.org/sqlite hata kodunu mesaja gömer —
// string match pratik ve yeterli.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
