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

// sqliteSessionRepo, SessionRepository interface'inin SQLite implementasyonu.
type sqliteSessionRepo struct {
	db database.TxQuerier
}

// NewSQLiteSessionRepo, constructor.
func NewSQLiteSessionRepo(db database.TxQuerier) SessionRepository {
	return &sqliteSessionRepo{db: db}
}

func (r *sqliteSessionRepo) Upsert(ctx context.Context, session *models.Session) error {
	// ON CONFLICT(admin_id): admin'in mevcut oturumu varsa hash ve süre
	// güncellenir — eski refresh token bu noktada kalıcı olarak ölür.
	query := `
		INSERT INTO sessions (id, admin_id, token_hash, expires_at)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		ON CONFLICT(admin_id) DO UPDATE SET
			token_hash = excluded.token_hash,
			expires_at = excluded.expires_at,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		session.AdminID,
		session.TokenHash,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	return nil
}

func (r *sqliteSessionRepo) GetByAdminID(ctx context.Context, adminID string) (*models.Session, error) {
	query := `
		SELECT id, admin_id, token_hash, expires_at, created_at, updated_at
		FROM sessions WHERE admin_id = ?`

	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, adminID).Scan(
		&session.ID, &session.AdminID, &session.TokenHash,
		&session.ExpiresAt, &session.CreatedAt, &session.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by admin id: %w", err)
	}

	return session, nil
}

func (r *sqliteSessionRepo) DeleteByAdminID(ctx context.Context, adminID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE admin_id = ?`, adminID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *sqliteSessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
