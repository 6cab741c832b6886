package services

import (
	"context"

	"github.com/seline/velora/models"
	"github.com/seline/velora/repository"
)

// DashboardStats, admin dashboard'un özet sayıları.
type DashboardStats struct {
	PendingBookings  int `json:"pending_bookings"`
	UpcomingBookings int `json:"upcoming_bookings"`
	UnreadMessages   int `json:"unread_messages"`
	TotalTreatments  int `json:"total_treatments"`
	GalleryItems     int `json:"gallery_items"`
}

// StatsService, dashboard istatistikleri interface'i.
type StatsService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	bookingRepo   repository.BookingRepository
	contactRepo   repository.ContactRepository
	treatmentRepo repository.TreatmentRepository
	galleryRepo   repository.GalleryRepository
}

// NewStatsService, constructor.
func NewStatsService(
	bookingRepo repository.BookingRepository,
	contactRepo repository.ContactRepository,
	treatmentRepo repository.TreatmentRepository,
	galleryRepo repository.GalleryRepository,
) StatsService {
	return &statsService{
		bookingRepo:   bookingRepo,
		contactRepo:   contactRepo,
		treatmentRepo: treatmentRepo,
		galleryRepo:   galleryRepo,
	}
}

func (s *statsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	pending, err := s.bookingRepo.CountByStatus(ctx, models.BookingStatusPending)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.bookingRepo.CountUpcoming(ctx)
	if err != nil {
		return nil, err
	}

	unread, err := s.contactRepo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}

	treatments, err := s.treatmentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	gallery, err := s.galleryRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		PendingBookings:  pending,
		UpcomingBookings: upcoming,
		UnreadMessages:   unread,
		TotalTreatments:  treatments,
		GalleryItems:     gallery,
	}, nil
}
