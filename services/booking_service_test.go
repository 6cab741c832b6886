package services

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seline/velora/database"
	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/pkg/crypto"
	"github.com/seline/velora/repository"
	"github.com/seline/velora/ws"
)

// fakeHub, broadcast edilen event'leri hafızada toplar.
type fakeHub struct {
	mu     sync.Mutex
	events []ws.Event
}

func (f *fakeHub) BroadcastToAll(event ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeHub) ConnectedAdminIDs() []string { return nil }

func (f *fakeHub) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, len(f.events))
	for i, e := range f.events {
		ops[i] = e.Op
	}
	return ops
}

const bookingTestHexKey = "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"

type bookingFixture struct {
	svc  BookingService
	hub  *fakeHub
	conn *sql.DB
	key  []byte

	treatmentID string
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	key, err := crypto.DeriveKey(bookingTestHexKey)
	require.NoError(t, err)

	treatmentRepo := repository.NewSQLiteTreatmentRepo(db.Conn)
	treatment := &models.Treatment{
		Name:            "Gel Manicure",
		Description:     "Classic gel manicure",
		PriceCents:      4500,
		DurationMinutes: 60,
		IsActive:        true,
	}
	require.NoError(t, treatmentRepo.Create(context.Background(), treatment))

	hub := &fakeHub{}
	svc := NewBookingService(
		repository.NewSQLiteBookingRepo(db.Conn),
		treatmentRepo,
		hub,
		&fakeMailer{},
		key,
	)

	return &bookingFixture{
		svc:         svc,
		hub:         hub,
		conn:        db.Conn,
		key:         key,
		treatmentID: treatment.ID,
	}
}

func (f *bookingFixture) createBooking(t *testing.T, slot time.Time) *models.Booking {
	t.Helper()
	booking, err := f.svc.Create(context.Background(), &models.CreateBookingRequest{
		CustomerName:  "Ayşe Yılmaz",
		CustomerEmail: "ayse@example.com",
		CustomerPhone: "+90 532 123 45 67",
		TreatmentID:   f.treatmentID,
		SlotAt:        slot,
	})
	require.NoError(t, err)
	return booking
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)
	slot := time.Now().Add(48 * time.Hour)

	booking := f.createBooking(t, slot)

	require.NotEmpty(t, booking.ID)
	require.Equal(t, models.BookingStatusPending, booking.Status)
	require.Equal(t, "Gel Manicure", booking.TreatmentName)
	require.Equal(t, "+90 532 123 45 67", booking.CustomerPhone,
		"caller must see the plaintext phone")
	require.Equal(t, []string{ws.OpBookingCreate}, f.hub.ops())
}

// Telefon DB'de ASLA plaintext durmamalı.
func TestCreateBookingEncryptsPhone(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t, time.Now().Add(48*time.Hour))

	var stored string
	err := f.conn.QueryRowContext(context.Background(),
		`SELECT customer_phone FROM bookings WHERE id = ?`, booking.ID).Scan(&stored)
	require.NoError(t, err)

	require.NotEqual(t, "+90 532 123 45 67", stored)
	require.NotContains(t, stored, "532")

	// Saklanan değer doğru anahtarla çözülebilmeli.
	plain, err := crypto.Decrypt(stored, f.key)
	require.NoError(t, err)
	require.Equal(t, "+90 532 123 45 67", plain)
}

func TestCreateBookingUnknownTreatment(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.Create(context.Background(), &models.CreateBookingRequest{
		CustomerName:  "Ayşe Yılmaz",
		CustomerEmail: "ayse@example.com",
		CustomerPhone: "+90 532 123 45 67",
		TreatmentID:   "no-such-treatment",
		SlotAt:        time.Now().Add(48 * time.Hour),
	})
	require.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestCreateBookingSlotConflict(t *testing.T) {
	f := newBookingFixture(t)
	slot := time.Now().Add(48 * time.Hour)
	f.createBooking(t, slot)

	// Aynı slot — hizmet süresi penceresi içinde çakışır.
	_, err := f.svc.Create(context.Background(), &models.CreateBookingRequest{
		CustomerName:  "Fatma Demir",
		CustomerEmail: "fatma@example.com",
		CustomerPhone: "+90 533 987 65 43",
		TreatmentID:   f.treatmentID,
		SlotAt:        slot.Add(30 * time.Minute), // 60dk'lık hizmetin içinde
	})
	require.ErrorIs(t, err, pkg.ErrAlreadyExists)

	// Pencere dışındaki slot serbest.
	_, err = f.svc.Create(context.Background(), &models.CreateBookingRequest{
		CustomerName:  "Fatma Demir",
		CustomerEmail: "fatma@example.com",
		CustomerPhone: "+90 533 987 65 43",
		TreatmentID:   f.treatmentID,
		SlotAt:        slot.Add(2 * time.Hour),
	})
	require.NoError(t, err)
}

// İptal edilen randevu slotu yeniden açmalı.
func TestCancelledBookingFreesSlot(t *testing.T) {
	f := newBookingFixture(t)
	slot := time.Now().Add(48 * time.Hour)
	booking := f.createBooking(t, slot)

	_, err := f.svc.UpdateStatus(context.Background(), booking.ID,
		&models.UpdateBookingStatusRequest{Status: models.BookingStatusCancelled})
	require.NoError(t, err)

	f.createBooking(t, slot)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	booking := f.createBooking(t, time.Now().Add(48*time.Hour))

	// pending → completed izinsiz.
	_, err := f.svc.UpdateStatus(ctx, booking.ID,
		&models.UpdateBookingStatusRequest{Status: models.BookingStatusCompleted})
	require.ErrorIs(t, err, pkg.ErrBadRequest)

	// pending → confirmed → completed.
	updated, err := f.svc.UpdateStatus(ctx, booking.ID,
		&models.UpdateBookingStatusRequest{Status: models.BookingStatusConfirmed})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusConfirmed, updated.Status)

	updated, err = f.svc.UpdateStatus(ctx, booking.ID,
		&models.UpdateBookingStatusRequest{Status: models.BookingStatusCompleted})
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusCompleted, updated.Status)

	// Terminal durumdan çıkış yok.
	_, err = f.svc.UpdateStatus(ctx, booking.ID,
		&models.UpdateBookingStatusRequest{Status: models.BookingStatusPending})
	require.ErrorIs(t, err, pkg.ErrBadRequest)
}

func TestConfirmSendsEmail(t *testing.T) {
	migrations, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	key, err := crypto.DeriveKey(bookingTestHexKey)
	require.NoError(t, err)

	treatmentRepo := repository.NewSQLiteTreatmentRepo(db.Conn)
	treatment := &models.Treatment{Name: "Pedicure", PriceCents: 3500, DurationMinutes: 45, IsActive: true}
	require.NoError(t, treatmentRepo.Create(context.Background(), treatment))

	mailer := &fakeMailer{}
	svc := NewBookingService(
		repository.NewSQLiteBookingRepo(db.Conn), treatmentRepo, &fakeHub{}, mailer, key)

	ctx := context.Background()
	booking, err := svc.Create(ctx, &models.CreateBookingRequest{
		CustomerName:  "Ayşe Yılmaz",
		CustomerEmail: "ayse@example.com",
		CustomerPhone: "+90 532 123 45 67",
		TreatmentID:   treatment.ID,
		SlotAt:        time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, booking.ID,
		&models.UpdateBookingStatusRequest{Status: models.BookingStatusConfirmed})
	require.NoError(t, err)

	require.Equal(t, []string{"ayse@example.com"}, mailer.confirmationEmails)
}

func TestGetAllFilters(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	early := f.createBooking(t, time.Now().Add(24*time.Hour))
	late := f.createBooking(t, time.Now().Add(96*time.Hour))

	_, err := f.svc.UpdateStatus(ctx, early.ID,
		&models.UpdateBookingStatusRequest{Status: models.BookingStatusConfirmed})
	require.NoError(t, err)

	// Status filtresi.
	confirmed, err := f.svc.GetAll(ctx, repository.BookingFilter{Status: models.BookingStatusConfirmed})
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	require.Equal(t, early.ID, confirmed[0].ID)

	// Zaman aralığı filtresi.
	upcoming, err := f.svc.GetAll(ctx, repository.BookingFilter{From: time.Now().Add(72 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	require.Equal(t, late.ID, upcoming[0].ID)

	// Filtresiz — hepsi, telefonlar çözülmüş.
	all, err := f.svc.GetAll(ctx, repository.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, b := range all {
		require.Equal(t, "+90 532 123 45 67", b.CustomerPhone)
	}
}

func TestDeleteBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	booking := f.createBooking(t, time.Now().Add(48*time.Hour))

	require.NoError(t, f.svc.Delete(ctx, booking.ID))

	_, err := f.svc.GetByID(ctx, booking.ID)
	require.ErrorIs(t, err, pkg.ErrNotFound)

	require.Contains(t, f.hub.ops(), ws.OpBookingDelete)
}
