package services

import (
	"context"
	"fmt"
	"time"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/pkg/cache"
	"github.com/seline/velora/repository"
)

// businessCacheTTL: işletme bilgisi nadiren değişir ama her sayfa
// yüklemesinde okunur — kısa bir TTL cache DB'ye gitmeyi keser.
const businessCacheTTL = 5 * time.Minute

// businessCacheKey, singleton kayıt için tek cache anahtarı.
const businessCacheKey = "business_info"

// BusinessService, işletme bilgisi iş mantığı interface'i.
type BusinessService interface {
	Get(ctx context.Context) (*models.BusinessInfo, error)
	Update(ctx context.Context, req *models.UpdateBusinessInfoRequest) (*models.BusinessInfo, error)
}

type businessService struct {
	repo  repository.BusinessRepository
	cache *cache.TTLCache[string, *models.BusinessInfo]
}

// NewBusinessService, constructor.
func NewBusinessService(repo repository.BusinessRepository) BusinessService {
	return &businessService{
		repo:  repo,
		cache: cache.New[string, *models.BusinessInfo](businessCacheTTL, time.Minute),
	}
}

func (s *businessService) Get(ctx context.Context) (*models.BusinessInfo, error) {
	if info, ok := s.cache.Get(businessCacheKey); ok {
		return info, nil
	}

	info, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(businessCacheKey, info)
	return info, nil
}

func (s *businessService) Update(ctx context.Context, req *models.UpdateBusinessInfoRequest) (*models.BusinessInfo, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Cache'i atla — güncelleme her zaman DB'deki güncel satır üzerinden.
	info, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		info.Name = *req.Name
	}
	if req.Address != nil {
		info.Address = *req.Address
	}
	if req.Phone != nil {
		info.Phone = *req.Phone
	}
	if req.Email != nil {
		info.Email = *req.Email
	}
	if req.Instagram != nil {
		info.Instagram = *req.Instagram
	}
	if req.OpeningHours != nil {
		info.OpeningHours = *req.OpeningHours
	}
	if req.About != nil {
		info.About = *req.About
	}

	if err := s.repo.Update(ctx, info); err != nil {
		return nil, err
	}

	// Yazma sonrası cache tazelenir — eski kopya dolaşmaz.
	s.cache.Set(businessCacheKey, info)

	return info, nil
}
