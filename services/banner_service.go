package services

import (
	"context"
	"fmt"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/repository"
)

// BannerService, ana sayfa banner iş mantığı interface'i.
type BannerService interface {
	Create(ctx context.Context, req *models.CreateBannerRequest) (*models.Banner, error)
	// GetAll: admin panel — pasif ve süresi geçmiş banner'lar dahil.
	GetAll(ctx context.Context) ([]models.Banner, error)
	// GetVisible: public site — aktif ve zaman penceresi içindekiler.
	GetVisible(ctx context.Context) ([]models.Banner, error)
	Update(ctx context.Context, id string, req *models.UpdateBannerRequest) (*models.Banner, error)
	Delete(ctx context.Context, id string) error
}

type bannerService struct {
	repo repository.BannerRepository
}

// NewBannerService, constructor.
func NewBannerService(repo repository.BannerRepository) BannerService {
	return &bannerService{repo: repo}
}

func (s *bannerService) Create(ctx context.Context, req *models.CreateBannerRequest) (*models.Banner, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	b := &models.Banner{
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		IsActive:  true,
		SortOrder: req.SortOrder,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *bannerService) GetAll(ctx context.Context) ([]models.Banner, error) {
	return s.repo.GetAll(ctx)
}

func (s *bannerService) GetVisible(ctx context.Context) ([]models.Banner, error) {
	return s.repo.GetVisible(ctx)
}

func (s *bannerService) Update(ctx context.Context, id string, req *models.UpdateBannerRequest) (*models.Banner, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Subtitle != nil {
		b.Subtitle = *req.Subtitle
	}
	if req.ImageURL != nil {
		b.ImageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		b.LinkURL = *req.LinkURL
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		b.SortOrder = *req.SortOrder
	}
	if req.StartsAt != nil {
		b.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		b.EndsAt = req.EndsAt
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *bannerService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
