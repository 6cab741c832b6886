package repository

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seline/velora/database"
	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db.Conn
}

func createTestAdmin(t *testing.T, conn *sql.DB) *models.Admin {
	t.Helper()

	repo := NewSQLiteAdminRepo(conn)
	admin := &models.Admin{
		Email:        "owner@veloranails.com",
		PasswordHash: "$argon2id$fake-hash-for-tests",
	}
	require.NoError(t, repo.Create(context.Background(), admin))
	return admin
}

// Rotation'ın DB ayağı: UNIQUE(admin_id) + upsert — admin başına EN FAZLA
// bir oturum satırı olur, her upsert eski hash'in üzerine yazar.
func TestSessionUpsertReplacesHash(t *testing.T) {
	conn := newTestDB(t)
	admin := createTestAdmin(t, conn)
	repo := NewSQLiteSessionRepo(conn)
	ctx := context.Background()

	first := &models.Session{
		AdminID:   admin.ID,
		TokenHash: "hash-one",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Upsert(ctx, first))
	require.NotEmpty(t, first.ID)

	second := &models.Session{
		AdminID:   admin.ID,
		TokenHash: "hash-two",
		ExpiresAt: time.Now().Add(2 * time.Hour),
	}
	require.NoError(t, repo.Upsert(ctx, second))

	// Satır güncellendi, yenisi eklenmedi.
	require.Equal(t, first.ID, second.ID)

	stored, err := repo.GetByAdminID(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, "hash-two", stored.TokenHash)

	var count int
	require.NoError(t, conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE admin_id = ?`, admin.ID).Scan(&count))
	require.Equal(t, 1, count)
}

func TestSessionGetByAdminIDNotFound(t *testing.T) {
	conn := newTestDB(t)
	repo := NewSQLiteSessionRepo(conn)

	_, err := repo.GetByAdminID(context.Background(), "unknown-admin")
	require.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestSessionDeleteByAdminID(t *testing.T) {
	conn := newTestDB(t)
	admin := createTestAdmin(t, conn)
	repo := NewSQLiteSessionRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Session{
		AdminID:   admin.ID,
		TokenHash: "hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, repo.DeleteByAdminID(ctx, admin.ID))
	_, err := repo.GetByAdminID(ctx, admin.ID)
	require.ErrorIs(t, err, pkg.ErrNotFound)

	// Satır yokken silmek de hata değildir.
	require.NoError(t, repo.DeleteByAdminID(ctx, admin.ID))
}

// Admin silinince oturumu da gitmeli (ON DELETE CASCADE).
func TestSessionCascadeOnAdminDelete(t *testing.T) {
	conn := newTestDB(t)
	admin := createTestAdmin(t, conn)
	repo := NewSQLiteSessionRepo(conn)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Session{
		AdminID:   admin.ID,
		TokenHash: "hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	_, err := conn.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, admin.ID)
	require.NoError(t, err)

	_, err = repo.GetByAdminID(ctx, admin.ID)
	require.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestAdminDuplicateEmailCaseInsensitive(t *testing.T) {
	conn := newTestDB(t)
	createTestAdmin(t, conn)
	repo := NewSQLiteAdminRepo(conn)

	err := repo.Create(context.Background(), &models.Admin{
		Email:        "OWNER@VELORANAILS.COM",
		PasswordHash: "another-hash",
	})
	require.ErrorIs(t, err, pkg.ErrAlreadyExists)
}
