package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Banner, ana sayfa üst şeridinde dönen bir kampanya görselini temsil eder.
//
// StartsAt/EndsAt nullable: nil = zaman kısıtı yok. Public endpoint sadece
// is_active VE zaman penceresi içindeki banner'ları döner.
type Banner struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	ImageURL  string     `json:"image_url"`
	LinkURL   string     `json:"link_url"`
	IsActive  bool       `json:"is_active"`
	SortOrder int        `json:"sort_order"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateBannerRequest, admin panelden banner ekleme isteği.
type CreateBannerRequest struct {
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	ImageURL  string     `json:"image_url"`
	LinkURL   string     `json:"link_url"`
	SortOrder int        `json:"sort_order"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// Validate, CreateBannerRequest geçerlilik kontrolü.
func (r *CreateBannerRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	titleLen := utf8.RuneCountInString(r.Title)
	if titleLen < 1 || titleLen > 120 {
		return fmt.Errorf("title must be between 1 and 120 characters")
	}
	if r.StartsAt != nil && r.EndsAt != nil && r.EndsAt.Before(*r.StartsAt) {
		return fmt.Errorf("ends_at must be after starts_at")
	}
	return nil
}

// UpdateBannerRequest, banner güncellemesi — partial update.
type UpdateBannerRequest struct {
	Title     *string    `json:"title"`
	Subtitle  *string    `json:"subtitle"`
	ImageURL  *string    `json:"image_url"`
	LinkURL   *string    `json:"link_url"`
	IsActive  *bool      `json:"is_active"`
	SortOrder *int       `json:"sort_order"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
}

// Validate, UpdateBannerRequest geçerlilik kontrolü.
func (r *UpdateBannerRequest) Validate() error {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		titleLen := utf8.RuneCountInString(*r.Title)
		if titleLen < 1 || titleLen > 120 {
			return fmt.Errorf("title must be between 1 and 120 characters")
		}
	}
	if r.StartsAt != nil && r.EndsAt != nil && r.EndsAt.Before(*r.StartsAt) {
		return fmt.Errorf("ends_at must be after starts_at")
	}
	return nil
}
