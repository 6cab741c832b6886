package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Treatment, salonun sunduğu bir hizmeti temsil eder (manikür, pedikür,
// nail art, ...).
//
// PriceCents: fiyat kuruş cinsinden INTEGER saklanır — float para için
// yuvarlama hatası yapar. Frontend 2450 → "24,50 €" formatlar.
type Treatment struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	PriceCents      int64     `json:"price_cents"`
	DurationMinutes int       `json:"duration_minutes"`
	ImageURL        string    `json:"image_url"`
	IsActive        bool      `json:"is_active"`
	SortOrder       int       `json:"sort_order"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateTreatmentRequest, admin panelden yeni hizmet ekleme isteği.
type CreateTreatmentRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	PriceCents      int64  `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
	ImageURL        string `json:"image_url"`
	SortOrder       int    `json:"sort_order"`
}

// Validate, CreateTreatmentRequest geçerlilik kontrolü.
func (r *CreateTreatmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 100 {
		return fmt.Errorf("name must be between 2 and 100 characters")
	}
	if r.PriceCents < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if r.DurationMinutes <= 0 || r.DurationMinutes > 480 {
		return fmt.Errorf("duration must be between 1 and 480 minutes")
	}
	if utf8.RuneCountInString(r.Description) > 2000 {
		return fmt.Errorf("description must be at most 2000 characters")
	}
	return nil
}

// UpdateTreatmentRequest, hizmet güncellemesi — partial update.
// *pointer field'lar: nil = alanı değiştirme, değer = yeni değer.
type UpdateTreatmentRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	PriceCents      *int64  `json:"price_cents"`
	DurationMinutes *int    `json:"duration_minutes"`
	ImageURL        *string `json:"image_url"`
	IsActive        *bool   `json:"is_active"`
	SortOrder       *int    `json:"sort_order"`
}

// Validate, UpdateTreatmentRequest geçerlilik kontrolü — sadece
// gönderilen (non-nil) alanlar kontrol edilir.
func (r *UpdateTreatmentRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 2 || nameLen > 100 {
			return fmt.Errorf("name must be between 2 and 100 characters")
		}
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if r.DurationMinutes != nil && (*r.DurationMinutes <= 0 || *r.DurationMinutes > 480) {
		return fmt.Errorf("duration must be between 1 and 480 minutes")
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > 2000 {
		return fmt.Errorf("description must be at most 2000 characters")
	}
	return nil
}
