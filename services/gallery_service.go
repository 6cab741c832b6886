package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/seline/velora/models"
	"github.com/seline/velora/pkg"
	"github.com/seline/velora/repository"
)

// GalleryService, galeri iş mantığı interface'i.
type GalleryService interface {
	Create(ctx context.Context, req *models.CreateGalleryItemRequest) (*models.GalleryItem, error)
	GetAll(ctx context.Context, category string) ([]models.GalleryItem, error)
	Update(ctx context.Context, id string, req *models.UpdateGalleryItemRequest) (*models.GalleryItem, error)
	// Delete, DB kaydıyla birlikte diskteki görsel dosyasını da siler.
	Delete(ctx context.Context, id string) error
}

type galleryService struct {
	repo      repository.GalleryRepository
	uploadDir string
}

// NewGalleryService, constructor.
func NewGalleryService(repo repository.GalleryRepository, uploadDir string) GalleryService {
	return &galleryService{repo: repo, uploadDir: uploadDir}
}

func (s *galleryService) Create(ctx context.Context, req *models.CreateGalleryItemRequest) (*models.GalleryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	item := &models.GalleryItem{
		ImageURL:  req.ImageURL,
		Caption:   req.Caption,
		Category:  req.Category,
		SortOrder: req.SortOrder,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *galleryService) GetAll(ctx context.Context, category string) ([]models.GalleryItem, error) {
	return s.repo.GetAll(ctx, category)
}

func (s *galleryService) Update(ctx context.Context, id string, req *models.UpdateGalleryItemRequest) (*models.GalleryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Caption != nil {
		item.Caption = *req.Caption
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Disk temizliği best-effort: DB kaydı gitti, dosya silinemezse
	// sadece loglanır — yetim dosya hata sebebi değildir.
	if name, ok := uploadFilename(item.ImageURL); ok {
		if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil && !os.IsNotExist(err) {
			log.Printf("[gallery] failed to remove image file %s: %v", name, err)
		}
	}

	return nil
}

// uploadFilename, "/api/uploads/abc.jpg" URL'inden dosya adını çıkarır.
// Upload dizini dışını gösteren URL'lerde (harici görsel) false döner.
func uploadFilename(imageURL string) (string, bool) {
	const prefix = "/api/uploads/"
	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}
	name := filepath.Base(strings.TrimPrefix(imageURL, prefix))
	if name == "" || name == "." || name == ".." {
		return "", false
	}
	return name, true
}
