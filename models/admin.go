// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda API'den
// gelen/giden verilerin şeklini belirler. `json:"email"` tag'leri JSON
// serialize/deserialize davranışını kontrol eder.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Admin, panele giriş yapabilen bir yönetici hesabını temsil eder.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // json:"-" → API response'a DAHİL ETME (güvenlik!)
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// emailRegex, basit email format kontrolü. RFC 5322'nin tamamını kovalamaya
// gerek yok — gerçek doğrulama email'in kendisine ulaşmaktır.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterRequest, admin kaydı için frontend'den gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate, RegisterRequest geçerlilik kontrolü.
// Email normalize edilir (trim + lowercase) — "A@b.com" ve "a@b.com"
// aynı hesaba denk gelir.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(r.Name) > 100 {
		return fmt.Errorf("name must be at most 100 characters")
	}
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}
	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(r.Password) > 256 {
		return fmt.Errorf("password must be at most 256 characters")
	}
	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest geçerlilik kontrolü.
// Format hatası da generic auth hatası gibi davranılır — burada sadece
// boş alan kontrolü yapılır, "bu email kayıtlı değil" tarzı detay ASLA sızmaz.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ChangePasswordRequest, oturum açmış admin'in şifre değiştirme isteği.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate, ChangePasswordRequest geçerlilik kontrolü.
func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return fmt.Errorf("current password is required")
	}
	if utf8.RuneCountInString(r.NewPassword) < 8 {
		return fmt.Errorf("new password must be at least 8 characters")
	}
	return nil
}
