package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/seline/velora/pkg"
)

// UploadService, görsel yükleme iş mantığı interface'i.
// Galeri, hizmet ve banner görselleri buradan geçer.
type UploadService interface {
	// Upload, dosyayı doğrular, diske kaydeder ve public URL'ini döner.
	Upload(file multipart.File, header *multipart.FileHeader) (string, error)
}

type uploadService struct {
	uploadDir string
	maxSize   int64
}

// NewUploadService, constructor. Upload dizinini yoksa oluşturur.
func NewUploadService(uploadDir string, maxSize int64) (UploadService, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &uploadService{uploadDir: uploadDir, maxSize: maxSize}, nil
}

// allowedImageTypes, yüklemeye izin verilen görsel türleri.
// Salon içeriği sadece görseldir — video/PDF kabul edilmez.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (s *uploadService) Upload(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSize {
		return "", fmt.Errorf("%w: file too large (max %dMB)", pkg.ErrBadRequest, s.maxSize/(1024*1024))
	}

	contentType := header.Header.Get("Content-Type")
	mimeBase := strings.TrimSpace(strings.Split(contentType, ";")[0])

	ext, ok := allowedImageTypes[mimeBase]
	if !ok {
		return "", fmt.Errorf("%w: file type not allowed: %s", pkg.ErrBadRequest, mimeBase)
	}

	// Dosya adı tamamen server üretimi — orijinal ad hiç kullanılmaz,
	// path traversal ve çakışma derdi baştan yok.
	diskFilename := uuid.New().String() + ext

	destPath := filepath.Join(s.uploadDir, diskFilename)
	destFile, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, file); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/api/uploads/" + diskFilename, nil
}
