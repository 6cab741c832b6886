package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// GalleryItem, vitrin galerisindeki bir görseli temsil eder.
type GalleryItem struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	Category  string    `json:"category"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateGalleryItemRequest, galeriye görsel ekleme isteği.
// ImageURL upload endpoint'inden dönen path'tir.
type CreateGalleryItemRequest struct {
	ImageURL  string `json:"image_url"`
	Caption   string `json:"caption"`
	Category  string `json:"category"`
	SortOrder int    `json:"sort_order"`
}

// Validate, CreateGalleryItemRequest geçerlilik kontrolü.
func (r *CreateGalleryItemRequest) Validate() error {
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	if r.ImageURL == "" {
		return fmt.Errorf("image_url is required")
	}
	if utf8.RuneCountInString(r.Caption) > 200 {
		return fmt.Errorf("caption must be at most 200 characters")
	}
	return nil
}

// UpdateGalleryItemRequest, görsel güncellemesi — partial update.
type UpdateGalleryItemRequest struct {
	Caption   *string `json:"caption"`
	Category  *string `json:"category"`
	SortOrder *int    `json:"sort_order"`
}

// Validate, UpdateGalleryItemRequest geçerlilik kontrolü.
func (r *UpdateGalleryItemRequest) Validate() error {
	if r.Caption != nil && utf8.RuneCountInString(*r.Caption) > 200 {
		return fmt.Errorf("caption must be at most 200 characters")
	}
	return nil
}
