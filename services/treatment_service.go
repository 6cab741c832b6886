package services

import (
	"context"
	"fmt"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/repository"
)

// TreatmentService, hizmet kataloğu iş mantığı interface'i.
type TreatmentService interface {
	Create(ctx context.Context, req *models.CreateTreatmentRequest) (*models.Treatment, error)
	GetByID(ctx context.Context, id string) (*models.Treatment, error)
	// GetAll: admin panel — pasif hizmetler dahil.
	GetAll(ctx context.Context) ([]models.Treatment, error)
	// GetActive: public site — sadece aktifler.
	GetActive(ctx context.Context) ([]models.Treatment, error)
	Update(ctx context.Context, id string, req *models.UpdateTreatmentRequest) (*models.Treatment, error)
	Delete(ctx context.Context, id string) error
}

type treatmentService struct {
	repo repository.TreatmentRepository
}

// NewTreatmentService, constructor.
func NewTreatmentService(repo repository.TreatmentRepository) TreatmentService {
	return &treatmentService{repo: repo}
}

func (s *treatmentService) Create(ctx context.Context, req *models.CreateTreatmentRequest) (*models.Treatment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	t := &models.Treatment{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		PriceCents:      req.PriceCents,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
		IsActive:        true, // yeni hizmet aktif başlar
		SortOrder:       req.SortOrder,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *treatmentService) GetByID(ctx context.Context, id string) (*models.Treatment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *treatmentService) GetAll(ctx context.Context) ([]models.Treatment, error) {
	return s.repo.GetAll(ctx)
}

func (s *treatmentService) GetActive(ctx context.Context) ([]models.Treatment, error) {
	return s.repo.GetActive(ctx)
}

func (s *treatmentService) Update(ctx context.Context, id string, req *models.UpdateTreatmentRequest) (*models.Treatment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Mevcut kaydı çek, sadece gönderilen alanları değiştir (partial update).
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.PriceCents != nil {
		t.PriceCents = *req.PriceCents
	}
	if req.DurationMinutes != nil {
		t.DurationMinutes = *req.DurationMinutes
	}
	if req.ImageURL != nil {
		t.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		t.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *treatmentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
