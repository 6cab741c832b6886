package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/pkg/crypto"
	"github.com/seline/velora/pkg/email"
	"github.com/seline/velora/repository"
	"github.com/seline/velora/ws"
)

// BookingService, randevu iş mantığı interface'i.
//
// Telefon numarası DB'ye AES-GCM ile şifreli yazılır; service dışına
// çıkan her Booking çözülmüş (plaintext) telefon taşır.
type BookingService interface {
	// Create, public siteden gelen randevu isteğini işler.
	Create(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetAll(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error)
	// UpdateStatus, durum geçişini uygular. İzinsiz geçiş (ör. completed
	// → pending) ErrBadRequest döner. Confirmed'e geçişte müşteriye
	// onay emaili gönderilir.
	UpdateStatus(ctx context.Context, id string, req *models.UpdateBookingStatusRequest) (*models.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo          repository.BookingRepository
	treatmentRepo repository.TreatmentRepository
	hub           ws.EventPublisher
	mailer        email.Sender
	encryptionKey []byte
}

// NewBookingService, constructor.
func NewBookingService(
	repo repository.BookingRepository,
	treatmentRepo repository.TreatmentRepository,
	hub ws.EventPublisher,
	mailer email.Sender,
	encryptionKey []byte,
) BookingService {
	return &bookingService{
		repo:          repo,
		treatmentRepo: treatmentRepo,
		hub:           hub,
		mailer:        mailer,
		encryptionKey: encryptionKey,
	}
}

func (s *bookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	treatment, err := s.treatmentRepo.GetByID(ctx, req.TreatmentID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown treatment", pkg.ErrBadRequest)
		}
		return nil, err
	}
	if !treatment.IsActive {
		return nil, fmt.Errorf("%w: treatment is not available", pkg.ErrBadRequest)
	}

	// Slot çakışması: hizmet süresi kadar pencere içinde başka aktif
	// randevu varsa reddet.
	window := time.Duration(treatment.DurationMinutes) * time.Minute
	conflict, err := s.repo.HasConflict(ctx, req.SlotAt, window)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, fmt.Errorf("%w: time slot is not available", pkg.ErrAlreadyExists)
	}

	encryptedPhone, err := crypto.Encrypt(req.CustomerPhone, s.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt phone: %w", err)
	}

	booking := &models.Booking{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: encryptedPhone,
		TreatmentID:   &req.TreatmentID,
		TreatmentName: treatment.Name,
		SlotAt:        req.SlotAt,
		Status:        models.BookingStatusPending,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// Dışarı plaintext döner — şifreli hali sadece DB'de yaşar.
	booking.CustomerPhone = req.CustomerPhone

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpBookingCreate, Data: booking})

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.decryptPhone(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, filter repository.BookingFilter) ([]models.Booking, error) {
	bookings, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if err := s.decryptPhone(&bookings[i]); err != nil {
			return nil, err
		}
	}
	return bookings, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, id string, req *models.UpdateBookingStatusRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !models.ValidTransition(booking.Status, req.Status) {
		return nil, fmt.Errorf("%w: cannot change status from %s to %s",
			pkg.ErrBadRequest, booking.Status, req.Status)
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}
	booking.Status = req.Status

	if err := s.decryptPhone(booking); err != nil {
		return nil, err
	}

	// Onay emaili best-effort: gönderilemezse randevu yine confirmed'dir,
	// hata sadece loglanır.
	if req.Status == models.BookingStatusConfirmed {
		slot := booking.SlotAt.Format("Monday, 2 January 2006 at 15:04")
		if err := s.mailer.SendBookingConfirmation(ctx,
			booking.CustomerEmail, booking.CustomerName, booking.TreatmentName, slot); err != nil {
			log.Printf("[booking] failed to send confirmation email: %v", err)
		}
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpBookingUpdate, Data: booking})

	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpBookingDelete, Data: map[string]string{"id": id}})

	return nil
}

// decryptPhone, DB'den gelen şifreli telefonu yerinde çözer.
func (s *bookingService) decryptPhone(b *models.Booking) error {
	plain, err := crypto.Decrypt(b.CustomerPhone, s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to decrypt phone for booking %s: %w", b.ID, err)
	}
	b.CustomerPhone = plain
	return nil
}
