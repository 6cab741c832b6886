package repository

import (
	"context"

	"github.com/seline/velora/models"
)

// ContactRepository, iletişim formu mesajları için interface.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	// GetAll, mesajları yeniden eskiye sırayla döner.
	// unreadOnly true ise sadece okunmamışlar döner.
	GetAll(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
}
