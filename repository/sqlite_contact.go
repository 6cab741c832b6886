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

// sqliteContactRepo, ContactRepository'nin SQLite implementasyonu.
type sqliteContactRepo struct {
	db database.TxQuerier
}

// NewSQLiteContactRepo, constructor.
func NewSQLiteContactRepo(db database.TxQuerier) ContactRepository {
	return &sqliteContactRepo{db: db}
}

func (r *sqliteContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, message)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		msg.Name, msg.Email, msg.Message,
	).Scan(&msg.ID, &msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

func (r *sqliteContactRepo) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	query := `
		SELECT id, name, email, message, is_read, created_at
		FROM contact_messages WHERE id = ?`

	msg := &models.ContactMessage{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Message,
		&msg.IsRead, &msg.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}

	return msg, nil
}

func (r *sqliteContactRepo) GetAll(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	query := `
		SELECT id, name, email, message, is_read, created_at
		FROM contact_messages`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var msg models.ContactMessage
		if err := rows.Scan(
			&msg.ID, &msg.Name, &msg.Email, &msg.Message,
			&msg.IsRead, &msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (r *sqliteContactRepo) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE contact_messages SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark contact message read: %w", err)
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

func (r *sqliteContactRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
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

func (r *sqliteContactRepo) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE is_read = 0`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}
