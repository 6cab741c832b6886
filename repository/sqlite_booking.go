package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/seline/velora/database"
	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
)

// sqliteBookingRepo, BookingRepository'nin SQLite implementasyonu.
type sqliteBookingRepo struct {
	db database.TxQuerier
}

// NewSQLiteBookingRepo, constructor.
func NewSQLiteBookingRepo(db database.TxQuerier) BookingRepository {
	return &sqliteBookingRepo{db: db}
}

// bookingSelect, LEFT JOIN ile hizmet adını da getirir — hizmet silinmişse
// treatment_id NULL, isim boş string döner (COALESCE).
const bookingSelect = `
	SELECT b.id, b.customer_name, b.customer_email, b.customer_phone,
	       b.treatment_id, COALESCE(t.name, ''), b.slot_at, b.status,
	       b.notes, b.created_at, b.updated_at
	FROM bookings b
	LEFT JOIN treatments t ON t.id = b.treatment_id`

func (r *sqliteBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (id, customer_name, customer_email, customer_phone, treatment_id, slot_at, status, notes)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.TreatmentID, b.SlotAt, b.Status, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *sqliteBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b := &models.Booking{}
	err := r.db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id).Scan(
		&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.TreatmentID, &b.TreatmentName, &b.SlotAt, &b.Status,
		&b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return b, nil
}

func (r *sqliteBookingRepo) GetAll(ctx context.Context, filter BookingFilter) ([]models.Booking, error) {
	query := bookingSelect + ` WHERE 1=1`
	var args []any

	if filter.Status != "" {
		query += ` AND b.status = ?`
		args = append(args, filter.Status)
	}
	if !filter.From.IsZero() {
		query += ` AND b.slot_at >= ?`
		args = append(args, filter.From)
	}
	if !filter.To.IsZero() {
		query += ` AND b.slot_at <= ?`
		args = append(args, filter.To)
	}
	query += ` ORDER BY b.slot_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
			&b.TreatmentID, &b.TreatmentName, &b.SlotAt, &b.Status,
			&b.Notes, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

func (r *sqliteBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	query := `
		UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
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

func (r *sqliteBookingRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
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

func (r *sqliteBookingRepo) CountByStatus(ctx context.Context, status models.BookingStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = ?`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	return count, nil
}

func (r *sqliteBookingRepo) CountUpcoming(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = 'confirmed' AND slot_at > CURRENT_TIMESTAMP`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming bookings: %w", err)
	}
	return count, nil
}

func (r *sqliteBookingRepo) HasConflict(ctx context.Context, slotAt time.Time, window time.Duration) (bool, error) {
	// cancelled/completed randevular slot işgal etmez.
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE status IN ('pending', 'confirmed')
		  AND slot_at > ? AND slot_at < ?`,
		slotAt.Add(-window), slotAt.Add(window),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check booking conflict: %w", err)
	}
	return count > 0, nil
}
