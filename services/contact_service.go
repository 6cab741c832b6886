package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/pkg/email"
	"github.com/seline/velora/repository"
	"github.com/seline/velora/ws"
)

// ContactService, iletişim formu iş mantığı interface'i.
type ContactService interface {
	// Create, public formdan gelen mesajı kaydeder, dashboard'a broadcast
	// eder ve salon inbox'ına bildirim emaili gönderir.
	Create(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error)
	GetAll(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (*models.ContactMessage, error)
	Delete(ctx context.Context, id string) error
}

type contactService struct {
	repo       repository.ContactRepository
	hub        ws.EventPublisher
	mailer     email.Sender
	salonEmail string
}

// NewContactService, constructor.
// salonEmail boşsa bildirim emaili atlanır (lokal geliştirme).
func NewContactService(
	repo repository.ContactRepository,
	hub ws.EventPublisher,
	mailer email.Sender,
	salonEmail string,
) ContactService {
	return &contactService{
		repo:       repo,
		hub:        hub,
		mailer:     mailer,
		salonEmail: salonEmail,
	}
}

func (s *contactService) Create(ctx context.Context, req *models.CreateContactMessageRequest) (*models.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpContactCreate, Data: msg})

	// Bildirim best-effort — mesaj zaten DB'de, email hatası müşteriye yansımaz.
	if s.salonEmail != "" {
		if err := s.mailer.SendContactNotification(ctx, s.salonEmail, msg.Name, msg.Email, msg.Message); err != nil {
			log.Printf("[contact] failed to send notification email: %v", err)
		}
	}

	return msg, nil
}

func (s *contactService) GetAll(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	return s.repo.GetAll(ctx, unreadOnly)
}

func (s *contactService) MarkRead(ctx context.Context, id string) (*models.ContactMessage, error) {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}

	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		// MarkRead başarılıydı — kayıt arada silinmiş olmalı.
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, err
		}
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpContactUpdate, Data: msg})

	return msg, nil
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
